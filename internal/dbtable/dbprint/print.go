// Package dbprint renders a dbtable.Table as fixed-width text. It sees
// a table only through the Snapshot interface below, so it stays a
// collaborator the core only calls through, never depends on.
package dbprint

import (
	"fmt"
	"io"
)

// columnWidth is the left-pad width every header and cell is formatted
// to.
const columnWidth = 15

// Snapshot is the minimal read-only view dbprint needs. *dbtable.Table
// satisfies it without an import cycle between dbtable and dbprint.
type Snapshot interface {
	ColumnNames() []string
	RowCount() int
	CellText(row, col int) string
}

// Fprint writes t to w: a header row of column names, a separator row
// of dashes, then one line per row with each cell formatted by type and
// left-padded to columnWidth.
func Fprint(w io.Writer, t Snapshot) error {
	names := t.ColumnNames()

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-15s", pad(name)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	sep := ""
	for range names {
		sep += "---------------"
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}

	for r := 0; r < t.RowCount(); r++ {
		for c := range names {
			if _, err := fmt.Fprintf(w, "%-15s", pad(t.CellText(r, c))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// pad truncates s to columnWidth so callers can rely on the column
// grid staying aligned even when a cell's text is wider than the
// column.
func pad(s string) string {
	if len(s) > columnWidth {
		return s[:columnWidth]
	}
	return s
}
