package profile

import (
	"context"
	"errors"

	"pelada/internal/backend"
	"pelada/internal/collection"
)

// Hook holds the signed-in user's profile.
type Hook struct {
	*collection.Resource[*Profile]
}

func NewHook(client *backend.Client) *Hook {
	repo := NewRepository(client)
	opts := collection.Options{
		NeedsDriver: true,
		Available:   collection.Availability(client, backend.TableProfiles),
	}
	return &Hook{
		Resource: collection.NewResource(backend.TableProfiles, opts, func(ctx context.Context, userID string) (*Profile, error) {
			p, err := repo.Get(ctx, userID)
			if errors.Is(err, backend.ErrNotFound) {
				return nil, nil
			}
			return p, err
		}),
	}
}

// Profile is nil until loaded or when the user has no profile row.
func (h *Hook) Profile() *Profile {
	return h.Snapshot().Value
}
