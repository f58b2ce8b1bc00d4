// Package schema has configs, models and shared types for all parts of gamelens.
package schema

import (
	"errors"
	"fmt"
)

// Row is a single telemetry record, keyed by column name. Values are
// untyped scalars: string, float64, bool, time-like string or nil.
type Row map[string]any

// Table is an immutable, ordered view of tabular telemetry data.
// Sampling and cleaning produce new Table instances; rows are never
// mutated in place once a table is constructed.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Source  string   `json:"source,omitempty"`
}

// ErrEmptyTable is returned when a table has no rows or no columns.
var ErrEmptyTable = errors.New("table has no rows or columns")

// NewTable builds a Table and validates its structural invariants.
// A structurally invalid table is the only fatal input error in the
// system: every row must carry exactly the declared column set.
func NewTable(columns []string, rows []Row, source string) (*Table, error) {
	if len(columns) == 0 || len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	colSet := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		colSet[c] = struct{}{}
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(r), len(columns))
		}
		for k := range r {
			if _, ok := colSet[k]; !ok {
				return nil, fmt.Errorf("row %d has unknown column %q", i, k)
			}
		}
	}
	return &Table{Columns: columns, Rows: rows, Source: source}, nil
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// CloneRows returns a deep copy of the row set. Cleaning transforms
// operate on this copy, never on the original slice.
func (t *Table) CloneRows() []Row {
	cloned := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		cloned[i] = nr
	}
	return cloned
}

// WithRows returns a new Table sharing the column list but holding the
// given row set.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows, Source: t.Source}
}

// ColumnValues collects all values of one column in row order.
func (t *Table) ColumnValues(column string) []any {
	values := make([]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		values = append(values, r[column])
	}
	return values
}
