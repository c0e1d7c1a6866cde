package dbtable

// AddColumn appends one column to table's schema and extends every
// existing row with defaultValue (coerced to the new column's type).
// The operation is all-or-nothing: the new row slice is built up in a
// local variable and only swapped into the table once every row has
// succeeded, so a failure partway through never leaves the table with
// some rows at the old width and some at the new one.
//
// AddColumn is never logged to the undo log — schema changes commit
// immediately and cannot be rolled back.
func (e *Engine) AddColumn(table *Table, name string, colType ColumnType, defaultValue any) error {
	ident := NewIdent(name)
	if ident.empty() {
		return &InvalidArgumentError{Reason: "column name must not be empty"}
	}
	if table.columnIndex(ident) >= 0 {
		return &DuplicateNameError{Name: name}
	}

	def, err := coerceValue(defaultValue, colType)
	if err != nil {
		return err
	}

	newRows := make([]Row, len(table.Rows))
	for i, row := range table.Rows {
		values := make([]any, len(row.Values)+1)
		copy(values, row.Values)
		values[len(row.Values)] = copyValue(def)
		newRows[i] = Row{Values: values}
	}

	// Every row rewrote successfully — commit the change.
	table.Columns = append(table.Columns, newColumn(name, colType))
	for i := range newRows {
		table.Rows[i] = newRows[i]
	}
	return nil
}

// DropColumn removes the named column from table's schema and from
// every row, shifting later column indices down by one. Any foreign
// key owned by the dropped column is removed along with it, so no
// column is ever left with a dangling FK descriptor.
func (e *Engine) DropColumn(table *Table, name string) error {
	ident := NewIdent(name)
	idx := table.columnIndex(ident)
	if idx < 0 {
		return &ColumnNotFoundError{Table: table.Name.String(), Column: name}
	}

	if table.Columns[idx].IsForeignKey {
		table.dropForeignKeyAt(table.Columns[idx].fkIndex)
		idx = table.columnIndex(ident) // dropForeignKeyAt never reorders columns, but re-resolve defensively
	}

	newCols := make([]Column, 0, len(table.Columns)-1)
	for i, c := range table.Columns {
		if i == idx {
			continue
		}
		newCols = append(newCols, c)
	}
	for i := range newCols {
		if newCols[i].IsForeignKey && newCols[i].fkIndex >= 0 {
			fk := &table.ForeignKeys[newCols[i].fkIndex]
			if fk.OwningColumnIndex > idx {
				fk.OwningColumnIndex--
			}
		}
	}

	newRows := make([]Row, len(table.Rows), table.maxRows)
	for i, row := range table.Rows {
		values := make([]any, 0, len(row.Values)-1)
		for j, v := range row.Values {
			if j == idx {
				continue
			}
			values = append(values, v)
		}
		newRows[i] = Row{Values: values}
	}

	table.Columns = newCols
	table.Rows = newRows
	return nil
}

// TransformTable builds a fresh table under old.Name with schema
// newColumns. For every row of old, each new column is populated from
// the identically-named, identically-typed old column if one exists,
// or a type-appropriate zero value otherwise. The returned table is
// not registered in any Catalog and old is left untouched — the
// caller decides whether and how to swap it into a Catalog.
func TransformTable(old *Table, newColumns []Column) (*Table, error) {
	fresh, err := CreateTable(old.Name.String(), newColumns)
	if err != nil {
		return nil, err
	}

	for _, oldRow := range old.Rows {
		values := make([]any, len(fresh.Columns))
		for j, newCol := range fresh.Columns {
			oldIdx := old.columnIndex(newCol.Name)
			if oldIdx >= 0 && old.Columns[oldIdx].Type == newCol.Type {
				values[j] = copyValue(oldRow.Values[oldIdx])
			} else {
				values[j] = zeroValue(newCol.Type)
			}
		}
		fresh.appendRow(Row{Values: values})
	}

	return fresh, nil
}
