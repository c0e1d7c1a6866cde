package dbtable

// InsertRow appends a new row to table, enforcing foreign-key existence
// and primary-key uniqueness before the row is written. If a
// transaction is active, an undoInsert record is appended on success
// and the table is locked for the transaction's duration.
func (e *Engine) InsertRow(table *Table, values []any) error {
	if len(values) != len(table.Columns) {
		return &InvalidArgumentError{Reason: "value count does not match column count"}
	}

	acquired, err := e.acquireLock(table)
	if err != nil {
		return err
	}

	row := make([]any, len(values))
	for i, col := range table.Columns {
		v, err := coerceValue(values[i], col.Type)
		if err != nil {
			if acquired {
				e.releaseLock(table)
			}
			return err
		}
		row[i] = v
	}

	for i, col := range table.Columns {
		if !col.IsForeignKey {
			continue
		}
		if err := e.catalog.checkForeignKeyConstraint(table, i, row[i]); err != nil {
			if acquired {
				e.releaseLock(table)
			}
			return err
		}
	}

	for i, col := range table.Columns {
		if !col.IsPrimaryKey {
			continue
		}
		for _, existing := range table.Rows {
			if valuesEqual(existing.Values[i], row[i]) {
				if acquired {
					e.releaseLock(table)
				}
				return &PKViolationError{Table: table.Name.String(), Column: col.Name.String(), Value: row[i]}
			}
		}
	}

	idx := table.appendRow(Row{Values: row})
	e.recordUndo(undoRecord{kind: undoInsert, table: table, rowIndex: idx})
	return nil
}

// UpdateRow overwrites the cell at (rowIndex, colIndex) with newValue,
// enforcing foreign-key existence and primary-key uniqueness first. The
// pre-image is captured into an undoUpdate record when a transaction is
// active.
func (e *Engine) UpdateRow(table *Table, rowIndex, colIndex int, newValue any) error {
	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return &InvalidArgumentError{Reason: "row index out of range"}
	}
	if colIndex < 0 || colIndex >= len(table.Columns) {
		return &InvalidArgumentError{Reason: "column index out of range"}
	}

	acquired, err := e.acquireLock(table)
	if err != nil {
		return err
	}

	col := table.Columns[colIndex]
	v, err := coerceValue(newValue, col.Type)
	if err != nil {
		if acquired {
			e.releaseLock(table)
		}
		return err
	}

	if col.IsForeignKey {
		if err := e.catalog.checkForeignKeyConstraint(table, colIndex, v); err != nil {
			if acquired {
				e.releaseLock(table)
			}
			return err
		}
	}
	if col.IsPrimaryKey {
		for i, existing := range table.Rows {
			if i == rowIndex {
				continue
			}
			if valuesEqual(existing.Values[colIndex], v) {
				if acquired {
					e.releaseLock(table)
				}
				return &PKViolationError{Table: table.Name.String(), Column: col.Name.String(), Value: v}
			}
		}
	}

	old := table.setCell(rowIndex, colIndex, v)
	e.recordUndo(undoRecord{kind: undoUpdate, table: table, rowIndex: rowIndex, colIndex: colIndex, oldValue: old})
	return nil
}

// DeleteRow removes the row at rowIndex, shifting subsequent rows left
// to keep the row vector contiguous. If a transaction is active, the
// removed row is captured whole into an undoDelete record instead of
// being discarded.
func (e *Engine) DeleteRow(table *Table, rowIndex int) error {
	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return &InvalidArgumentError{Reason: "row index out of range"}
	}

	if _, err := e.acquireLock(table); err != nil {
		return err
	}

	removed := table.removeRowAt(rowIndex)
	if e.txn != nil && !e.replaying {
		e.recordUndo(undoRecord{kind: undoDelete, table: table, rowSnapshot: cloneRow(removed)})
	}
	return nil
}
