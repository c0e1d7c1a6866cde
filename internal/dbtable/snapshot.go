package dbtable

import "fmt"

// ColumnNames, RowCount, and CellText let *Table satisfy
// dbtable/dbprint.Snapshot without dbprint importing dbtable (avoiding
// a cycle) and without dbprint reaching into unexported fields.

// ColumnNames returns the table's column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name.String()
	}
	return names
}

// RowCount returns the number of rows currently in the table.
func (t *Table) RowCount() int { return len(t.Rows) }

// CellText formats the cell at (row, col) the way the pretty-printer
// expects: decimal for integers, Go's default formatting for floats,
// and the raw string for text cells.
func (t *Table) CellText(row, col int) string {
	v := t.Rows[row].Values[col]
	switch val := v.(type) {
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%v", val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
