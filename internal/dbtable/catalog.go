package dbtable

import "sort"

// Catalog is a process-wide mapping from table name to Table, unique by
// name. A Catalog exclusively owns every Table registered with it. A
// table's existence in a Catalog does not imply referential closure —
// foreign keys may name tables that are not (or no longer) present;
// validation is always re-performed at the use site, never cached.
type Catalog struct {
	tables map[Ident]*Table
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[Ident]*Table)}
}

// AddTable registers table under its own name. Fails with
// DuplicateNameError if a table of that name is already registered.
func (c *Catalog) AddTable(table *Table) error {
	if table == nil {
		return &InvalidArgumentError{Reason: "table must not be nil"}
	}
	if _, exists := c.tables[table.Name]; exists {
		return &DuplicateNameError{Name: table.Name.String()}
	}
	c.tables[table.Name] = table
	return nil
}

// GetTableByName returns the table registered under name, or (nil,
// false) if none exists.
func (c *Catalog) GetTableByName(name string) (*Table, bool) {
	t, ok := c.tables[NewIdent(name)]
	return t, ok
}

// RemoveTable unregisters the table with the given name. It does not
// free anything — Go's GC reclaims the Table once unreferenced — and
// it does not touch any other table's foreign-key references, which
// may now be dangling: catalog membership never implies referential
// closure.
func (c *Catalog) RemoveTable(name string) {
	delete(c.tables, NewIdent(name))
}

// TableNames returns every registered table name, sorted, for stable
// iteration (e.g. by MemoryUsage or a REPL's list command).
func (c *Catalog) TableNames() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n.String())
	}
	sort.Strings(names)
	return names
}

// checkForeignKeyConstraint resolves col's FK descriptor on table,
// finds the referenced table in c, finds the referenced column by
// name, and linearly scans that column for a value equal to v. A type
// mismatch between the referencing and referenced column is a
// failure, not a panic.
func (c *Catalog) checkForeignKeyConstraint(table *Table, colIndex int, v any) error {
	col := table.Columns[colIndex]
	fk := table.ForeignKeyOf(col)
	if fk == nil {
		return &InvalidArgumentError{Reason: "column is not a foreign key"}
	}

	refTable, ok := c.GetTableByName(fk.ReferencedTable.String())
	if !ok {
		return &FKViolationError{
			Table: table.Name.String(), Column: col.Name.String(),
			ReferencedTable: fk.ReferencedTable.String(), Value: v,
		}
	}
	refIdx := refTable.columnIndex(fk.ReferencedColumn)
	if refIdx < 0 {
		return &FKViolationError{
			Table: table.Name.String(), Column: col.Name.String(),
			ReferencedTable: fk.ReferencedTable.String(), Value: v,
		}
	}

	for _, row := range refTable.Rows {
		if valuesEqual(row.Values[refIdx], v) {
			return nil
		}
	}
	return &FKViolationError{
		Table: table.Name.String(), Column: col.Name.String(),
		ReferencedTable: fk.ReferencedTable.String(), Value: v,
	}
}

// CheckForeignKeyConstraint is the exported library-surface form of
// checkForeignKeyConstraint.
func (c *Catalog) CheckForeignKeyConstraint(table *Table, colIndex int, v any) error {
	return c.checkForeignKeyConstraint(table, colIndex, v)
}

// defaultCatalog is a thin process-wide default instance, to support
// callers that never construct their own Catalog. New code should
// prefer an explicit *Catalog.
var defaultCatalog = NewCatalog()

// DefaultCatalog returns the process-wide default Catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }
