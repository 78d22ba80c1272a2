package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// Table is a statically declared table and the columns this service reads from it.
type Table struct {
	Name    string
	Columns []string
}

// RequiredTables lists the tables of the dataset in the order they are checked.
var RequiredTables = []Table{
	{Name: "measurement", Columns: []string{"id", "station", "date", "prcp", "tobs"}},
	{Name: "station", Columns: []string{"id", "station", "name", "latitude", "longitude", "elevation"}},
}

// VerifySchema reads each required table's column set once and reports every
// missing table or column as ErrSchemaMismatch.
func VerifySchema(ctx context.Context, db *sql.DB) error {
	var problems []string
	for _, t := range RequiredTables {
		have, err := tableColumns(ctx, db, t.Name)
		if err != nil {
			problems = append(problems, fmt.Sprintf("table %s: %v", t.Name, err))
			continue
		}
		var missing []string
		for _, c := range t.Columns {
			if !have[c] {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("table %s missing columns: %s", t.Name, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
	}
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	// Table names come from RequiredTables, never from input.
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table+" WHERE 1 = 0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(cols))
	for _, c := range cols {
		out[strings.ToLower(c)] = true
	}
	return out, rows.Err()
}
