package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresStore runs the table verbs as SQL against a Postgres database
// holding the same schema as the hosted backend. Rows are scanned through
// db tags.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db.Unsafe()}
}

func (s *PostgresStore) Table(name string) Table {
	return &sqlTable{db: s.db, name: name}
}

type sqlTable struct {
	db   *sqlx.DB
	name string
}

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !identifier.MatchString(n) {
			return fmt.Errorf("invalid identifier %q", n)
		}
	}
	return nil
}

// whereClause renders the equality filters starting at placeholder $start.
func whereClause(filters []Filter, start int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if err := checkIdentifiers(f.Column); err != nil {
			return "", nil, err
		}
		parts = append(parts, fmt.Sprintf("%s = $%d", f.Column, start+i))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func (t *sqlTable) selectSQL(q Query) (string, []any, error) {
	columns := "*"
	if len(q.Columns) > 0 {
		if err := checkIdentifiers(q.Columns...); err != nil {
			return "", nil, err
		}
		columns = strings.Join(q.Columns, ", ")
	}

	where, args, err := whereClause(q.Filters, 1)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", columns, t.name, where)
	if len(q.Orders) > 0 {
		orders := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			if err := checkIdentifiers(o.Column); err != nil {
				return "", nil, err
			}
			dir := "DESC"
			if o.Ascending {
				dir = "ASC"
			}
			orders = append(orders, o.Column+" "+dir)
		}
		b.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}
	if q.Max > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Max)
	}
	return b.String(), args, nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t *sqlTable) Select(ctx context.Context, q Query, dest any) error {
	query, args, err := t.selectSQL(q)
	if err != nil {
		return err
	}
	if err := t.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("select %s: %w", t.name, err)
	}
	return nil
}

func (t *sqlTable) SelectOne(ctx context.Context, q Query, dest any) error {
	query, args, err := t.selectSQL(q)
	if err != nil {
		return err
	}
	err = t.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", t.name, err)
	}
	return nil
}

func (t *sqlTable) Insert(ctx context.Context, values map[string]any, dest any) error {
	if len(values) == 0 {
		return fmt.Errorf("insert %s: no values", t.name)
	}
	keys := sortedKeys(values)
	if err := checkIdentifiers(keys...); err != nil {
		return err
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		t.name, strings.Join(keys, ", "), strings.Join(placeholders, ", "))
	if err := t.db.GetContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

func (t *sqlTable) Update(ctx context.Context, q Query, values map[string]any, dest any) error {
	if len(values) == 0 {
		return fmt.Errorf("update %s: no values", t.name)
	}
	keys := sortedKeys(values)
	if err := checkIdentifiers(keys...); err != nil {
		return err
	}

	sets := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args[i] = values[k]
	}

	where, whereArgs, err := whereClause(q.Filters, len(keys)+1)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", t.name, strings.Join(sets, ", "), where)
	err = t.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	return nil
}
