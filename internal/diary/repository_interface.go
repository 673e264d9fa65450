package diary

import "context"

type Writer interface {
	Insert(ctx context.Context, userID string, entry NewEntry) (*Entry, error)
}
