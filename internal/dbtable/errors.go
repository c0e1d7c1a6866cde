package dbtable

import "fmt"

// InvalidArgumentError is returned for a null/empty identifier, an
// out-of-range index, or an empty column list.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// AllocFailureError is returned when the engine cannot grow a row or
// column buffer. Recoverable — the table is left in its pre-call state.
type AllocFailureError struct {
	Reason string
}

func (e *AllocFailureError) Error() string {
	return fmt.Sprintf("allocation failure: %s", e.Reason)
}

// DuplicateNameError is returned when a table name already exists in a
// Catalog, or a foreign key is added against a column that is already
// foreign-keyed.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name: %q", e.Name)
}

// TableNotFoundError is returned when a table name does not resolve in
// a Catalog.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %q", e.Name)
}

// ColumnNotFoundError is returned when a column name does not resolve
// against a table's schema.
type ColumnNotFoundError struct {
	Table  string
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in table %q", e.Column, e.Table)
}

// PKViolationError is returned when an insert or update would produce a
// duplicate value in a primary-key-flagged column.
type PKViolationError struct {
	Table  string
	Column string
	Value  any
}

func (e *PKViolationError) Error() string {
	return fmt.Sprintf("primary key violation on %s.%s: duplicate value %v", e.Table, e.Column, e.Value)
}

// FKViolationError is returned when a foreign-key-flagged column's
// value does not exist in the referenced table/column at mutation time.
type FKViolationError struct {
	Table           string
	Column          string
	ReferencedTable string
	Value           any
}

func (e *FKViolationError) Error() string {
	return fmt.Sprintf("foreign key violation on %s.%s: value %v not found in %s", e.Table, e.Column, e.Value, e.ReferencedTable)
}

// CommitFKViolationError is returned when the deferred foreign-key
// re-check at commit time fails. The transaction has already been
// rolled back in full by the time this is returned.
type CommitFKViolationError struct {
	Table  string
	Column string
}

func (e *CommitFKViolationError) Error() string {
	return fmt.Sprintf("commit-time foreign key violation on %s.%s; transaction rolled back", e.Table, e.Column)
}

// LockConflictError is returned when a mutation targets a table locked
// by a different transaction.
type LockConflictError struct {
	Table      string
	HolderTxn  int64
	RequestTxn int64
}

func (e *LockConflictError) Error() string {
	return fmt.Sprintf("table %q is locked by transaction %d (requested by %d)", e.Table, e.HolderTxn, e.RequestTxn)
}

// TxnAlreadyActiveError is returned by Begin when a transaction is
// already active process-wide.
type TxnAlreadyActiveError struct {
	ActiveID int64
}

func (e *TxnAlreadyActiveError) Error() string {
	return fmt.Sprintf("transaction %d is already active", e.ActiveID)
}

// NoActiveTxnError is returned by Commit/Rollback when no transaction
// is active.
type NoActiveTxnError struct{}

func (e *NoActiveTxnError) Error() string { return "no active transaction" }
