package dbtable

// initialRowCapacity is the row-vector capacity a freshly created table
// starts with. Capacity after N inserts is always initialRowCapacity
// doubled as many times as needed to hold N rows (10, 20, 40, ...): Go's
// slice growth doesn't guarantee exact doubling past small sizes, so
// appendRow grows the backing array itself instead of relying on
// append's built-in growth heuristics.
const initialRowCapacity = 10

// Table is a named schema plus its growable row vector and foreign-key
// descriptor list. A Table exclusively owns its Columns, Rows, and
// ForeignKeys; nothing outside this package holds a mutable reference
// into them.
type Table struct {
	Name        Ident
	Columns     []Column
	Rows        []Row
	ForeignKeys []ForeignKey

	maxRows int
}

// CreateTable validates name and columns, copies the schema by value,
// and allocates an empty row buffer with initial capacity 10.
// IsPrimaryKey on an incoming column is honored; IsForeignKey is
// always cleared, since nothing downstream of CreateTable can mark a
// column primary-keyed any other way, whereas AddForeignKey is a
// dedicated entry point that sets the flag and the owning descriptor
// together. Foreign keys are added afterward via Table.AddForeignKey.
func CreateTable(name string, columns []Column) (*Table, error) {
	if name == "" {
		return nil, &InvalidArgumentError{Reason: "table name must not be empty"}
	}
	if len(columns) == 0 {
		return nil, &InvalidArgumentError{Reason: "table must have at least one column"}
	}

	cols := make([]Column, len(columns))
	for i, c := range columns {
		cols[i] = Column{
			Name:         NewIdent(c.Name.String()),
			Type:         c.Type,
			IsPrimaryKey: c.IsPrimaryKey,
			IsForeignKey: false,
			fkIndex:      -1,
		}
	}

	return &Table{
		Name:    NewIdent(name),
		Columns: cols,
		Rows:    make([]Row, 0, initialRowCapacity),
		maxRows: initialRowCapacity,
	}, nil
}

// columnIndex returns the position of the named column, or -1.
func (t *Table) columnIndex(name Ident) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// appendRow appends row at the tail, doubling the row-vector capacity
// first if it is exactly full. Returns the index the row landed at.
func (t *Table) appendRow(row Row) int {
	if len(t.Rows) == t.maxRows {
		newMax := t.maxRows * 2
		grown := make([]Row, len(t.Rows), newMax)
		copy(grown, t.Rows)
		t.Rows = grown
		t.maxRows = newMax
	}
	t.Rows = append(t.Rows, row)
	return len(t.Rows) - 1
}

// removeRowAt deletes the row at idx, shifting every later row left by
// one to keep the row vector contiguous, and returns the removed row.
func (t *Table) removeRowAt(idx int) Row {
	removed := t.Rows[idx]
	t.Rows = append(t.Rows[:idx], t.Rows[idx+1:]...)
	return removed
}

// setCell overwrites the value at (rowIdx, colIdx) and returns the
// prior value.
func (t *Table) setCell(rowIdx, colIdx int, v any) any {
	old := t.Rows[rowIdx].Values[colIdx]
	t.Rows[rowIdx].Values[colIdx] = v
	return old
}

// ForeignKeyOf resolves the live ForeignKey descriptor for col, or nil
// if col is not foreign-keyed. Resolution goes through the column's
// stored index into t.ForeignKeys rather than a pointer, so it stays
// correct across reallocation or removal of other descriptors.
func (t *Table) ForeignKeyOf(col Column) *ForeignKey {
	if !col.IsForeignKey || col.fkIndex < 0 || col.fkIndex >= len(t.ForeignKeys) {
		return nil
	}
	return &t.ForeignKeys[col.fkIndex]
}

// AddForeignKey marks colName as foreign-keyed, referencing
// refTable.refCol. It does not validate that refTable currently exists
// or currently contains refCol — a foreign key may name a table that
// doesn't exist yet; validation always happens at the use site
// (insert/update/commit).
func (t *Table) AddForeignKey(colName string, refTable, refCol string) error {
	idx := t.columnIndex(NewIdent(colName))
	if idx < 0 {
		return &ColumnNotFoundError{Table: t.Name.String(), Column: colName}
	}
	if t.Columns[idx].IsForeignKey {
		return &DuplicateNameError{Name: colName}
	}

	t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
		ReferencedTable:   NewIdent(refTable),
		ReferencedColumn:  NewIdent(refCol),
		OwningColumnIndex: idx,
	})
	t.Columns[idx].IsForeignKey = true
	t.Columns[idx].fkIndex = len(t.ForeignKeys) - 1
	return nil
}

// RemoveForeignKey clears the foreign-key flag on colName and drops its
// descriptor, compacting the ForeignKeys slice and re-resolving every
// other column's fkIndex so no back-pointer is left dangling.
func (t *Table) RemoveForeignKey(colName string) error {
	idx := t.columnIndex(NewIdent(colName))
	if idx < 0 {
		return &ColumnNotFoundError{Table: t.Name.String(), Column: colName}
	}
	if !t.Columns[idx].IsForeignKey {
		return &InvalidArgumentError{Reason: "column " + colName + " is not a foreign key"}
	}

	t.dropForeignKeyAt(t.Columns[idx].fkIndex)
	return nil
}

// dropForeignKeyAt removes ForeignKeys[fkIdx] and fixes up every
// column's fkIndex and IsForeignKey flag to match the compacted slice.
func (t *Table) dropForeignKeyAt(fkIdx int) {
	t.ForeignKeys = append(t.ForeignKeys[:fkIdx], t.ForeignKeys[fkIdx+1:]...)
	for i := range t.Columns {
		switch {
		case !t.Columns[i].IsForeignKey:
			continue
		case t.Columns[i].fkIndex == fkIdx:
			t.Columns[i].IsForeignKey = false
			t.Columns[i].fkIndex = -1
		case t.Columns[i].fkIndex > fkIdx:
			t.Columns[i].fkIndex--
		}
	}
}

// ReferencedTables returns the deduplicated set of table names named by
// any live foreign-key descriptor on t. This does NOT cross-check the
// Catalog — it is a pure, Catalog-independent read of t's own FK list.
// Catalog-aware validation is performed instead by
// Catalog.CheckForeignKeyConstraint at mutation and commit time.
func (t *Table) ReferencedTables() []Ident {
	seen := make(map[Ident]bool, len(t.ForeignKeys))
	var out []Ident
	for _, fk := range t.ForeignKeys {
		if !seen[fk.ReferencedTable] {
			seen[fk.ReferencedTable] = true
			out = append(out, fk.ReferencedTable)
		}
	}
	return out
}

// ValidateForeignKeys re-validates every foreign-keyed column of every
// row in t against cat.
func (t *Table) ValidateForeignKeys(cat *Catalog) error {
	for _, col := range t.Columns {
		if !col.IsForeignKey {
			continue
		}
		idx := t.columnIndex(col.Name)
		for _, row := range t.Rows {
			if err := cat.checkForeignKeyConstraint(t, idx, row.Values[idx]); err != nil {
				return err
			}
		}
	}
	return nil
}
