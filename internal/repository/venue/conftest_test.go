package venue

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows implements pgx.Rows over in-memory row values.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Close()                                       {}
func (f *fakeRows) Err() error                                   { return f.err }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	return assignRow(f.rows[f.idx-1], dest)
}

// fakeRow implements pgx.Row for single-row queries.
type fakeRow struct {
	vals []any
	err  error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	return assignRow(f.vals, dest)
}

func assignRow(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: %d values for %d destinations", len(vals), len(dest))
	}
	for i, v := range vals {
		dv := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		vv := reflect.ValueOf(v)
		if dv.Kind() == reflect.Pointer && vv.Kind() != reflect.Pointer {
			p := reflect.New(dv.Type().Elem())
			p.Elem().Set(vv.Convert(dv.Type().Elem()))
			dv.Set(p)
			continue
		}
		dv.Set(vv.Convert(dv.Type()))
	}
	return nil
}

// fakeQuerier implements the repository's consumer interface.
type fakeQuerier struct {
	queryFn    func(sql string, args []any) (pgx.Rows, error)
	queryRowFn func(sql string, args []any) pgx.Row

	queries  []string
	lastArgs []any
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	f.lastArgs = args
	if f.queryFn != nil {
		return f.queryFn(sql, args)
	}
	return &fakeRows{}, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.lastArgs = args
	if f.queryRowFn != nil {
		return f.queryRowFn(sql, args)
	}
	return fakeRow{}
}

// venueRow builds the 14-column projection the venue queries select.
func venueRow(id int64, slug, name string, score, distance any) []any {
	return []any{
		id, slug, name, "Moda Cd. 21", "kadikoy",
		[]string{"kebap"}, 2, score, 120,
		40.99, 29.03,
		true, testCreatedAt,
		distance,
	}
}
