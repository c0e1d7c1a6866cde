package dbtable

import "github.com/google/uuid"

// TxnState is the lifecycle state of a Transaction.
type TxnState uint8

const (
	TxnActive TxnState = iota
	TxnFinished
)

// undoKind identifies which kind of reversal an undoRecord performs.
type undoKind uint8

const (
	undoInsert undoKind = iota
	undoUpdate
	undoDelete
)

// undoRecord is one reversible step recorded by a mutation that ran
// under an active transaction. The pre-image data (oldValue,
// rowSnapshot) is copied into the record at append time and never
// aliases a live row. rowIndex is positional: it is the index at the
// time of the mutation and is not adjusted when a later insert or
// delete in the same transaction shifts rows.
type undoRecord struct {
	kind     undoKind
	table    *Table
	rowIndex int // undoInsert, undoUpdate
	colIndex int // undoUpdate

	oldValue    any // undoUpdate: pre-image of the cell
	rowSnapshot Row // undoDelete: full pre-image of the removed row
}

// undoLogInitialCapacity is the undo log's starting capacity; Go's
// slice append grows past it transparently, same as the row vector
// grows past its own initial capacity.
const undoLogInitialCapacity = 100

// Transaction is the single active transaction, process-wide. Exactly
// one may be active at a time (enforced by Engine.Begin).
type Transaction struct {
	ID      int64
	State   TxnState
	TraceID uuid.UUID // diagnostics/log correlation only — never used for identity or locking

	undoLog      []undoRecord
	lockedTables map[Ident]bool
}

func newTransaction(id int64) *Transaction {
	return &Transaction{
		ID:           id,
		State:        TxnActive,
		TraceID:      uuid.New(),
		undoLog:      make([]undoRecord, 0, undoLogInitialCapacity),
		lockedTables: make(map[Ident]bool),
	}
}
