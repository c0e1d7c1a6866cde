package dbtable

// ForeignKey describes the table and column another column's values
// must exist in. OwningColumnIndex is the index, within the owning
// table's Columns slice, of the column this descriptor belongs to.
// Resolving the back-pointer by index rather than by raw pointer means
// a reallocation of the FK slice or a later RemoveForeignKey call can
// never leave a dangling reference.
type ForeignKey struct {
	ReferencedTable   Ident
	ReferencedColumn  Ident
	OwningColumnIndex int
}

// Column describes one column of a table's schema.
type Column struct {
	Name         Ident
	Type         ColumnType
	IsPrimaryKey bool
	IsForeignKey bool

	// fkIndex is the index into the owning Table's ForeignKeys slice,
	// or -1 if IsForeignKey is false. Unexported: callers resolve the
	// descriptor through Table.ForeignKeyOf, never a raw pointer.
	fkIndex int
}

func newColumn(name string, t ColumnType) Column {
	return Column{Name: NewIdent(name), Type: t, fkIndex: -1}
}
