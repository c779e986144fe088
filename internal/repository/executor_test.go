package repository

import (
	"database/sql"

	"github.com/prizepacket/prizepacket/internal/model"
)

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeExecutor stands in for a *sqlx.DB or *sqlx.Tx. Exec reports a fixed
// rows-affected count and records every statement and argument list; Get
// either fails with getErr or copies the canned inventory item into dest.
type fakeExecutor struct {
	execRows int64
	execErr  error

	getErr  error
	getItem *model.InventoryItem

	queries []string
	args    [][]interface{}
}

func (f *fakeExecutor) Exec(query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.execErr != nil {
		return nil, f.execErr
	}
	return fakeResult{rows: f.execRows}, nil
}

func (f *fakeExecutor) Get(dest interface{}, query string, args ...interface{}) error {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.getErr != nil {
		return f.getErr
	}
	if item, ok := dest.(*model.InventoryItem); ok && f.getItem != nil {
		*item = *f.getItem
	}
	return nil
}

func (f *fakeExecutor) Select(dest interface{}, query string, args ...interface{}) error {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	return nil
}
