package subscription

import (
	"context"
	"errors"

	"pelada/internal/backend"
	"pelada/internal/collection"
)

// Hook holds the signed-in user's subscription. Users without an active
// row are on the free plan.
type Hook struct {
	*collection.Resource[Subscription]
}

func NewHook(client *backend.Client) *Hook {
	return NewHookWithReader(client, NewRepository(client))
}

func NewHookWithReader(client *backend.Client, reader Reader) *Hook {
	opts := collection.Options{
		NeedsDriver: true,
		Available:   collection.Availability(client, backend.TableUserSubscriptions),
	}
	return &Hook{
		Resource: collection.NewResource(backend.TableUserSubscriptions, opts, func(ctx context.Context, userID string) (Subscription, error) {
			sub, err := reader.GetActive(ctx, userID)
			if errors.Is(err, backend.ErrNotFound) {
				return Free(userID), nil
			}
			if err != nil {
				return Subscription{}, err
			}
			return *sub, nil
		}),
	}
}

func (h *Hook) Subscription() Subscription {
	snap := h.Snapshot()
	if snap.Value.Plan == "" {
		return Free(snap.Driver)
	}
	return snap.Value
}

func (h *Hook) IsPremium() bool {
	return h.Subscription().IsPremium()
}
