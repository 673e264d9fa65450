// Package backendtest provides an in-memory backend.Store for tests.
package backendtest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pelada/internal/backend"
)

const (
	testURL = "https://pelada-test.supabase.co"
	testKey = "test-anon-key-0123456789abcdef"
)

// MemoryStore keeps rows as JSON objects per table. Before runs ahead of
// every operation; a non-nil error from it fails the operation.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	calls  map[string]int

	Before func(ctx context.Context, op, table string) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: map[string][]map[string]any{},
		calls:  map[string]int{},
	}
}

// Client returns a configured backend client over s.
func (s *MemoryStore) Client() *backend.Client {
	return backend.NewClient(backend.NewGate(testURL, testKey), s)
}

// UnconfiguredClient returns a client whose gate rejects every call while
// still counting any that reach s.
func (s *MemoryStore) UnconfiguredClient() *backend.Client {
	return backend.NewClient(backend.NewGate("", ""), s)
}

// Seed appends rows to table after normalising them through JSON.
func (s *MemoryStore) Seed(table string, rows ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.tables[table] = append(s.tables[table], normalise(r))
	}
}

func (s *MemoryStore) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.tables[table]...)
}

// Calls reports how many operations reached table.
func (s *MemoryStore) Calls(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[table]
}

func (s *MemoryStore) Table(name string) backend.Table {
	return &memTable{store: s, name: name}
}

func normalise(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		panic(err)
	}
	return row
}

func copyRow(row map[string]any) map[string]any {
	c := make(map[string]any, len(row))
	for k, v := range row {
		c[k] = v
	}
	return c
}

func decode(v any, dest any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

type memTable struct {
	store *MemoryStore
	name  string
}

func (t *memTable) enter(ctx context.Context, op string) error {
	t.store.mu.Lock()
	t.store.calls[t.name]++
	before := t.store.Before
	t.store.mu.Unlock()
	if before != nil {
		return before(ctx, op, t.name)
	}
	return nil
}

func matches(row map[string]any, filters []backend.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(row[f.Column]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

func (t *memTable) query(q backend.Query) []map[string]any {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	var out []map[string]any
	for _, row := range t.store.tables[t.name] {
		if matches(row, q.Filters) {
			out = append(out, copyRow(row))
		}
	}
	for i := len(q.Orders) - 1; i >= 0; i-- {
		o := q.Orders[i]
		sort.SliceStable(out, func(a, b int) bool {
			x, y := fmt.Sprint(out[a][o.Column]), fmt.Sprint(out[b][o.Column])
			if o.Ascending {
				return x < y
			}
			return x > y
		})
	}
	if q.Max > 0 && len(out) > q.Max {
		out = out[:q.Max]
	}
	if len(q.Columns) > 0 {
		projected := make([]map[string]any, len(out))
		for i, row := range out {
			p := map[string]any{}
			for _, c := range q.Columns {
				p[c] = row[c]
			}
			projected[i] = p
		}
		out = projected
	}
	return out
}

func (t *memTable) Select(ctx context.Context, q backend.Query, dest any) error {
	if err := t.enter(ctx, "select"); err != nil {
		return err
	}
	rows := t.query(q)
	if rows == nil {
		rows = []map[string]any{}
	}
	return decode(rows, dest)
}

func (t *memTable) SelectOne(ctx context.Context, q backend.Query, dest any) error {
	if err := t.enter(ctx, "select_one"); err != nil {
		return err
	}
	rows := t.query(q)
	if len(rows) != 1 {
		return &backend.Error{StatusCode: 406, Code: "PGRST116", Message: "JSON object requested, multiple (or no) rows returned"}
	}
	return decode(rows[0], dest)
}

func (t *memTable) Insert(ctx context.Context, values map[string]any, dest any) error {
	if err := t.enter(ctx, "insert"); err != nil {
		return err
	}
	row := normalise(values)
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	}

	t.store.mu.Lock()
	t.store.tables[t.name] = append(t.store.tables[t.name], row)
	row = copyRow(row)
	t.store.mu.Unlock()

	if dest == nil {
		return nil
	}
	return decode(row, dest)
}

func (t *memTable) Update(ctx context.Context, q backend.Query, values map[string]any, dest any) error {
	if err := t.enter(ctx, "update"); err != nil {
		return err
	}
	patch := normalise(values)

	t.store.mu.Lock()
	var updated map[string]any
	for _, row := range t.store.tables[t.name] {
		if !matches(row, q.Filters) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
		if updated == nil {
			updated = copyRow(row)
		}
	}
	t.store.mu.Unlock()

	if updated == nil {
		return backend.ErrNotFound
	}
	if dest == nil {
		return nil
	}
	return decode(updated, dest)
}
