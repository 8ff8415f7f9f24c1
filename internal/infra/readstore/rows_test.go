//go:build unit

package readstore_test

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// fakeRows replays fixed rows. Each Scan copies the row's values into the
// destinations, so the values must have the exact destination types.
type fakeRows struct {
	pgx.Rows
	data   [][]any
	cur    int
	err    error
	closed bool
}

func newFakeRows(data ...[]any) *fakeRows {
	return &fakeRows{data: data, cur: -1}
}

func (r *fakeRows) Next() bool {
	if r.closed || r.cur+1 >= len(r.data) {
		return false
	}
	r.cur++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.cur]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		value := reflect.ValueOf(row[i])
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan column %d: %s into %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }
