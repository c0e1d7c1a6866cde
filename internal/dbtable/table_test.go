package dbtable

import "testing"

func intCol(name string, pk bool) Column {
	c := newColumn(name, TypeInt)
	c.IsPrimaryKey = pk
	return c
}

func stringCol(name string) Column {
	return newColumn(name, TypeString)
}

func TestCreateTable_RejectsEmptyNameOrColumns(t *testing.T) {
	if _, err := CreateTable("", []Column{intCol("id", true)}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := CreateTable("t", nil); err == nil {
		t.Fatal("expected error for empty columns")
	}
}

func TestCreateTable_ZeroesIncomingKeyFlagsExceptPK(t *testing.T) {
	col := intCol("id", true)
	col.IsForeignKey = true // should be ignored by CreateTable

	tbl, err := CreateTable("widgets", []Column{col})
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if !tbl.Columns[0].IsPrimaryKey {
		t.Errorf("expected primary key flag to survive CreateTable")
	}
	if tbl.Columns[0].IsForeignKey {
		t.Errorf("expected foreign key flag to be zeroed by CreateTable")
	}
	if cap(tbl.Rows) != initialRowCapacity {
		t.Errorf("initial row capacity = %d, want %d", cap(tbl.Rows), initialRowCapacity)
	}
}

func TestTable_RowLenMatchesSchemaAfterNewRow(t *testing.T) {
	tbl, err := CreateTable("widgets", []Column{intCol("id", true), stringCol("name")})
	if err != nil {
		t.Fatal(err)
	}
	r := newRow(tbl.Columns)
	if len(r.Values) != len(tbl.Columns) {
		t.Fatalf("row length %d != schema length %d", len(r.Values), len(tbl.Columns))
	}
	if r.Values[0] != int64(0) || r.Values[1] != "" {
		t.Errorf("unexpected zero values: %+v", r.Values)
	}
}

func TestAppendRow_CapacityDoublesExactlyWhenFull(t *testing.T) {
	tbl, err := CreateTable("widgets", []Column{intCol("id", false)})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < initialRowCapacity; i++ {
		tbl.appendRow(Row{Values: []any{int64(i)}})
	}
	if cap(tbl.Rows) != initialRowCapacity {
		t.Fatalf("capacity changed before table was full: cap=%d", cap(tbl.Rows))
	}
	tbl.appendRow(Row{Values: []any{int64(99)}})
	if cap(tbl.Rows) != initialRowCapacity*2 {
		t.Fatalf("capacity after one overflow insert = %d, want %d", cap(tbl.Rows), initialRowCapacity*2)
	}
}

func TestAddForeignKey_IndexBackpointerSurvivesRemoval(t *testing.T) {
	parent, _ := CreateTable("parent", []Column{intCol("id", true)})
	child, _ := CreateTable("child", []Column{intCol("pid", false), intCol("other_fk_target", false)})

	if err := child.AddForeignKey("pid", "parent", "id"); err != nil {
		t.Fatal(err)
	}
	if err := child.AddForeignKey("other_fk_target", "parent", "id"); err != nil {
		t.Fatal(err)
	}

	// Remove the first FK; the second column's fkIndex must be fixed up
	// to point at the now-compacted slot, not a stale/out-of-range one.
	if err := child.RemoveForeignKey("pid"); err != nil {
		t.Fatal(err)
	}
	col := child.Columns[child.columnIndex("other_fk_target")]
	fk := child.ForeignKeyOf(col)
	if fk == nil {
		t.Fatal("expected surviving foreign key to still resolve")
	}
	if fk.ReferencedTable != "parent" || fk.ReferencedColumn != "id" {
		t.Errorf("unexpected surviving FK descriptor: %+v", fk)
	}

	_ = parent
}

func TestDropColumn_CascadesForeignKey(t *testing.T) {
	parent, _ := CreateTable("parent", []Column{intCol("id", true)})
	child, _ := CreateTable("child", []Column{intCol("pid", false), stringCol("label")})
	if err := child.AddForeignKey("pid", "parent", "id"); err != nil {
		t.Fatal(err)
	}

	_ = parent

	eng := NewEngine(NewCatalog())
	if err := eng.DropColumn(child, "pid"); err != nil {
		t.Fatal(err)
	}
	if len(child.ForeignKeys) != 0 {
		t.Errorf("expected dangling FK descriptor to be dropped, got %+v", child.ForeignKeys)
	}
	if len(child.Columns) != 1 || child.Columns[0].Name != "label" {
		t.Errorf("unexpected schema after drop: %+v", child.Columns)
	}
}
