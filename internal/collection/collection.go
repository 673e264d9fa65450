package collection

import (
	"context"

	"pelada/internal/backend"
)

// Spec declares a table-backed list: the table, the column that scopes it
// to the driver, extra equality filters, ordering and row limit.
type Spec struct {
	Name         string
	Table        string
	DriverColumn string
	Filters      []backend.Filter
	OrderBy      string
	Ascending    bool
	Limit        int
}

func (s Spec) Query(driver string) backend.Query {
	q := backend.NewQuery()
	for _, f := range s.Filters {
		q = q.Eq(f.Column, f.Value)
	}
	if s.DriverColumn != "" {
		q = q.Eq(s.DriverColumn, driver)
	}
	if s.OrderBy != "" {
		q = q.Order(s.OrderBy, s.Ascending)
	}
	if s.Limit > 0 {
		q = q.Limit(s.Limit)
	}
	return q
}

func (s Spec) name() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Table
}

// Availability reports whether reads of table can reach the backend,
// recording every short-circuited read.
func Availability(client *backend.Client, table string) func() bool {
	return func() bool {
		if client.Configured() {
			return true
		}
		_ = client.Gate().Unavailable("read:" + table)
		return false
	}
}

// TableFetcher reads the list described by spec through client.
func TableFetcher[T any](client *backend.Client, spec Spec) Fetcher[[]T] {
	return func(ctx context.Context, driver string) ([]T, error) {
		table, err := client.Table(spec.Table)
		if err != nil {
			return nil, err
		}
		var items []T
		if err := table.Select(ctx, spec.Query(driver), &items); err != nil {
			return nil, err
		}
		return items, nil
	}
}

// Collection is a Resource holding an ordered list.
type Collection[T any] struct {
	*Resource[[]T]
}

func New[T any](client *backend.Client, spec Spec) *Collection[T] {
	return NewWithFetcher(client, spec, TableFetcher[T](client, spec))
}

func NewWithFetcher[T any](client *backend.Client, spec Spec, fetch Fetcher[[]T]) *Collection[T] {
	opts := Options{
		NeedsDriver: spec.DriverColumn != "",
		Available:   Availability(client, spec.Table),
	}
	return &Collection[T]{
		Resource: NewResource(spec.name(), opts, fetch),
	}
}

// Items returns a copy of the current list; never nil.
func (c *Collection[T]) Items() []T {
	value := c.Snapshot().Value
	items := make([]T, len(value))
	copy(items, value)
	return items
}

// Prepend puts item at the head of the list if the collection still
// belongs to driver.
func (c *Collection[T]) Prepend(driver string, item T) bool {
	return c.Mutate(driver, func(items []T) []T {
		out := make([]T, 0, len(items)+1)
		out = append(out, item)
		return append(out, items...)
	})
}
