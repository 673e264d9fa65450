package subscription

import (
	"context"
	"fmt"

	"pelada/internal/backend"
)

type Repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) *Repository {
	return &Repository{client: client}
}

// GetActive returns the user's active subscription, or backend.ErrNotFound.
func (r *Repository) GetActive(ctx context.Context, userID string) (*Subscription, error) {
	table, err := r.client.Table(backend.TableUserSubscriptions)
	if err != nil {
		return nil, err
	}

	q := backend.NewQuery().Eq("user_id", userID).Eq("status", StatusActive)
	var sub Subscription
	if err := table.SelectOne(ctx, q, &sub); err != nil {
		return nil, fmt.Errorf("get active subscription: %w", err)
	}
	return &sub, nil
}
