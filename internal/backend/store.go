package backend

import (
	"context"
	"fmt"
)

const (
	TableProfiles          = "profiles"
	TableGameDiary         = "game_diary"
	TableWorkouts          = "workouts"
	TableWarmupRoutines    = "warmup_routines"
	TableUserSubscriptions = "user_subscriptions"
)

var knownTables = map[string]bool{
	TableProfiles:          true,
	TableGameDiary:         true,
	TableWorkouts:          true,
	TableWarmupRoutines:    true,
	TableUserSubscriptions: true,
}

func KnownTable(name string) bool {
	return knownTables[name]
}

type Filter struct {
	Column string
	Value  any
}

type Order struct {
	Column    string
	Ascending bool
}

// Query describes a read or the row scope of an update. The zero value
// selects every column of every row.
type Query struct {
	Columns []string
	Filters []Filter
	Orders  []Order
	Max     int
}

func NewQuery() Query {
	return Query{}
}

func (q Query) Select(columns ...string) Query {
	q.Columns = append(append([]string(nil), q.Columns...), columns...)
	return q
}

func (q Query) Eq(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

func (q Query) Order(column string, ascending bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Column: column, Ascending: ascending})
	return q
}

func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

func (q Query) String() string {
	return fmt.Sprintf("select=%v filters=%v order=%v limit=%d", q.Columns, q.Filters, q.Orders, q.Max)
}

// Table is the data-access surface of one backend table. dest receives
// JSON-decoded rows: a pointer to a slice for Select, a pointer to a struct
// for the single-row verbs.
type Table interface {
	Select(ctx context.Context, q Query, dest any) error
	SelectOne(ctx context.Context, q Query, dest any) error
	Insert(ctx context.Context, values map[string]any, dest any) error
	Update(ctx context.Context, q Query, values map[string]any, dest any) error
}

// Store is a backend driver.
type Store interface {
	Table(name string) Table
}
