package diary

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

// Insert creates the entry and returns the row as stored by the backend.
func (r *Repository) Insert(ctx context.Context, userID string, entry NewEntry) (*Entry, error) {
	table, err := r.client.Table(backend.TableGameDiary)
	if err != nil {
		return nil, err
	}

	values, err := entry.values(userID)
	if err != nil {
		return nil, err
	}

	var created Entry
	if err := table.Insert(ctx, values, &created); err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	return &created, nil
}
