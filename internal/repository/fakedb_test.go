package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"agri-match/internal/database"
)

type execCall struct {
	query string
	args  []any
}

type fakeDB struct {
	execAffected int64
	execErr      error
	rows         [][]any
	queryErr     error
	rowErr       error

	calls []execCall
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	return f.execAffected, f.execErr
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.rows, idx: -1}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.rowErr != nil {
		return fakeRow{err: f.rowErr}
	}
	if len(f.rows) == 0 {
		return fakeRow{err: errors.New("no rows configured")}
	}
	return fakeRow{values: f.rows[0]}
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("not supported")
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}
func (r *fakeRows) Scan(dest ...any) error { return assign(r.rows[r.idx], dest) }

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: have %d values, %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(values[i]))
	}
	return nil
}
