package profile

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

func (r *Repository) get(ctx context.Context, q backend.Query) (*Profile, error) {
	table, err := r.client.Table(backend.TableProfiles)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := table.SelectOne(ctx, q, &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Get returns backend.ErrNotFound when the user has no profile row.
func (r *Repository) Get(ctx context.Context, id string) (*Profile, error) {
	return r.get(ctx, backend.NewQuery().Eq("id", id))
}

// GetContact reads only the name and contact columns.
func (r *Repository) GetContact(ctx context.Context, id string) (*Profile, error) {
	return r.get(ctx, backend.NewQuery().Select("id", "full_name", "username").Eq("id", id))
}
