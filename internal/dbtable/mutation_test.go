package dbtable

import (
	"errors"
	"testing"
)

// Primary-key uniqueness: a duplicate insert fails, distinct ids succeed.
func TestScenario_PKUniqueness(t *testing.T) {
	eng := NewEngine(NewCatalog())
	u, err := CreateTable("U", []Column{intCol("id", true)})
	if err != nil {
		t.Fatal(err)
	}

	if err := eng.InsertRow(u, []any{int64(1)}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err = eng.InsertRow(u, []any{int64(1)})
	var pkErr *PKViolationError
	if !errors.As(err, &pkErr) {
		t.Fatalf("expected PKViolationError, got %v", err)
	}

	if err := eng.InsertRow(u, []any{int64(2)}); err != nil {
		t.Fatalf("second distinct insert: %v", err)
	}

	if len(u.Rows) != 2 {
		t.Fatalf("num_rows = %d, want 2", len(u.Rows))
	}
}

// Foreign-key validation at insert time, inside an open transaction.
func TestScenario_FKAtInsertTime(t *testing.T) {
	cat := NewCatalog()
	eng := NewEngine(cat)

	parent, _ := CreateTable("Parent", []Column{intCol("id", true)})
	if err := eng.InsertRow(parent, []any{int64(10)}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(parent); err != nil {
		t.Fatal(err)
	}

	child, _ := CreateTable("Child", []Column{intCol("pid", false)})
	if err := child.AddForeignKey("pid", "Parent", "id"); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(child); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Begin(); err != nil {
		t.Fatal(err)
	}

	if err := eng.InsertRow(child, []any{int64(10)}); err != nil {
		t.Fatalf("expected insert referencing existing parent to succeed: %v", err)
	}

	err := eng.InsertRow(child, []any{int64(99)})
	var fkErr *FKViolationError
	if !errors.As(err, &fkErr) {
		t.Fatalf("expected FKViolationError, got %v", err)
	}

	if err := eng.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(child.Rows) != 1 {
		t.Fatalf("Child.num_rows = %d, want 1", len(child.Rows))
	}
}

// Rollback restores a string cell's pre-image.
func TestScenario_RollbackRestoresStrings(t *testing.T) {
	eng := NewEngine(NewCatalog())
	s, _ := CreateTable("S", []Column{stringCol("name")})
	if err := eng.InsertRow(s, []any{"alice"}); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := eng.UpdateRow(s, 0, 0, "bob"); err != nil {
		t.Fatal(err)
	}
	if s.Rows[0].Values[0] != "bob" {
		t.Fatalf("expected bob after update, got %v", s.Rows[0].Values[0])
	}
	if err := eng.Rollback(); err != nil {
		t.Fatal(err)
	}
	if s.Rows[0].Values[0] != "alice" {
		t.Fatalf("expected alice after rollback, got %v", s.Rows[0].Values[0])
	}
}

// Commit re-checks foreign keys and rolls back in full on a miss.
func TestScenario_CommitFKRecheck(t *testing.T) {
	cat := NewCatalog()
	eng := NewEngine(cat)

	parent, _ := CreateTable("Parent", []Column{intCol("id", true)})
	if err := eng.InsertRow(parent, []any{int64(10)}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(parent); err != nil {
		t.Fatal(err)
	}
	child, _ := CreateTable("Child", []Column{intCol("pid", false)})
	if err := child.AddForeignKey("pid", "Parent", "id"); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTable(child); err != nil {
		t.Fatal(err)
	}

	preCount := len(child.Rows)

	if _, err := eng.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := eng.InsertRow(child, []any{int64(10)}); err != nil {
		t.Fatal(err)
	}

	// Bypass the active transaction to simulate an out-of-band change:
	// delete the parent row directly at the table level.
	parent.removeRowAt(0)

	err := eng.Commit()
	var commitErr *CommitFKViolationError
	if !errors.As(err, &commitErr) {
		t.Fatalf("expected CommitFKViolationError, got %v", err)
	}
	if len(child.Rows) != preCount {
		t.Fatalf("Child.num_rows after failed commit = %d, want %d", len(child.Rows), preCount)
	}
}
