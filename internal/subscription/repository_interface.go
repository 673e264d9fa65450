package subscription

import "context"

type Reader interface {
	GetActive(ctx context.Context, userID string) (*Subscription, error)
}
