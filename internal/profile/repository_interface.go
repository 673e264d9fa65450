package profile

import "context"

type Reader interface {
	Get(ctx context.Context, id string) (*Profile, error)
	GetContact(ctx context.Context, id string) (*Profile, error)
}
