package dbtable

// Row is a dense array of cell values, one per column of the owning
// table's current schema, in column order. A Row never outlives the
// Table it belongs to.
type Row struct {
	Values []any
}

// newRow returns a fresh row sized to len(cols), each cell initialized
// to the type-appropriate zero value for its column.
func newRow(cols []Column) Row {
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = zeroValue(c.Type)
	}
	return Row{Values: values}
}

// cloneRow returns an independent copy of r, safe to store in an undo
// record or a transform_table result after the live row is mutated.
func cloneRow(r Row) Row {
	values := make([]any, len(r.Values))
	copy(values, r.Values)
	return Row{Values: values}
}
