package dbtable

import "testing"

func TestMemoryUsage_ReportsEachRegisteredTable(t *testing.T) {
	cat := NewCatalog()
	eng := NewEngine(cat)

	tbl, err := CreateTable("widgets", []Column{intCol("id", true), stringCol("name")})
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(tbl); err != nil {
		t.Fatal(err)
	}
	if err := eng.InsertRow(tbl, []any{int64(1), "left-handed widget"}); err != nil {
		t.Fatal(err)
	}

	usage := MemoryUsage(cat)
	if len(usage) != 1 {
		t.Fatalf("len(usage) = %d, want 1", len(usage))
	}
	if usage[0].Table != "widgets" {
		t.Errorf("Table = %q, want %q", usage[0].Table, "widgets")
	}
	if usage[0].RowBytes <= 0 {
		t.Errorf("RowBytes = %d, want > 0", usage[0].RowBytes)
	}
	if usage[0].RowBytesH == "" {
		t.Errorf("expected a human-readable size string")
	}
}

func TestMemoryUsage_EmptyCatalog(t *testing.T) {
	usage := MemoryUsage(NewCatalog())
	if len(usage) != 0 {
		t.Fatalf("len(usage) = %d, want 0", len(usage))
	}
}
