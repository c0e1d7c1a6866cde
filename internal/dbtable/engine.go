package dbtable

import "log/slog"

// Engine is the single-writer mutation and transaction front end over a
// Catalog. Row mutation, schema alteration, and transaction management
// are all methods on it so that table locks and the undo log stay
// consistent with each other.
//
// Engine has no internal worker goroutines and no suspension points:
// every method runs to completion on the calling goroutine. If the
// embedding host is itself multithreaded, every call into an Engine
// (and into the Tables it manages) must be externally serialized —
// the table locks below are advisory records of which transaction is
// allowed to mutate a table, not a mutex.
type Engine struct {
	catalog *Catalog
	log     *diagLogger

	txn       *Transaction
	nextTxnID int64

	// locks maps a locked table's name to the id of the transaction
	// holding it. A table absent from this map is unlocked.
	locks map[Ident]int64

	// replaying suppresses undo-log appends while Commit or Rollback is
	// driving mutations through the same code paths ordinary callers
	// use — otherwise a rollback's own reversal mutations would append
	// undo records that would themselves need undoing.
	replaying bool
}

// NewEngine returns an Engine operating over cat.
func NewEngine(cat *Catalog) *Engine {
	return &Engine{
		catalog:   cat,
		log:       newDiagLogger(),
		nextTxnID: 1,
		locks:     make(map[Ident]int64),
	}
}

// WithLogger installs a structured slog.Logger as the diagnostics side
// channel, replacing the default stdlib logger. It returns e for
// chaining.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	e.log.slg = l
	return e
}

// Catalog returns the Catalog this Engine operates over.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// ActiveTransaction returns the currently active transaction, or nil if
// none is active.
func (e *Engine) ActiveTransaction() *Transaction { return e.txn }

// -----------------------------------------------------------------------
// Transaction lifecycle
// -----------------------------------------------------------------------

// Begin starts a new transaction. Fails with TxnAlreadyActiveError if
// one is already active process-wide.
func (e *Engine) Begin() (*Transaction, error) {
	if e.txn != nil {
		return nil, &TxnAlreadyActiveError{ActiveID: e.txn.ID}
	}
	txn := newTransaction(e.nextTxnID)
	e.nextTxnID++
	e.txn = txn
	e.log.Printf("transaction %d begin (trace %s)", txn.ID, txn.TraceID)
	return txn, nil
}

// Commit re-validates every foreign-key-flagged column touched by an
// Insert or Update undo record against the current catalog. If any
// check fails, the transaction is rolled back in full and
// CommitFKViolationError is returned. Otherwise the undo log is
// dropped, every lock held by this transaction is released, and the
// transaction transitions to TxnFinished.
func (e *Engine) Commit() error {
	txn := e.txn
	if txn == nil {
		return &NoActiveTxnError{}
	}

	for _, rec := range txn.undoLog {
		if rec.kind != undoInsert && rec.kind != undoUpdate {
			continue
		}
		if rec.rowIndex >= len(rec.table.Rows) {
			// The row was since removed by a later mutation in this same
			// transaction; nothing left to re-validate.
			continue
		}
		row := rec.table.Rows[rec.rowIndex]
		for _, col := range rec.table.Columns {
			if !col.IsForeignKey {
				continue
			}
			idx := rec.table.columnIndex(col.Name)
			if err := e.catalog.checkForeignKeyConstraint(rec.table, idx, row.Values[idx]); err != nil {
				e.log.Printf("transaction %d commit-time FK check failed on %s.%s: %v", txn.ID, rec.table.Name, col.Name, err)
				e.rollbackLocked(txn)
				return &CommitFKViolationError{Table: rec.table.Name.String(), Column: col.Name.String()}
			}
		}
	}

	txn.undoLog = nil
	e.releaseLocks(txn)
	txn.State = TxnFinished
	e.txn = nil
	e.log.Printf("transaction %d commit", txn.ID)
	return nil
}

// Rollback replays the undo log in reverse order, then releases every
// lock held by the transaction and transitions it to TxnFinished.
func (e *Engine) Rollback() error {
	txn := e.txn
	if txn == nil {
		return &NoActiveTxnError{}
	}
	e.rollbackLocked(txn)
	return nil
}

func (e *Engine) rollbackLocked(txn *Transaction) {
	e.replaying = true
	for i := len(txn.undoLog) - 1; i >= 0; i-- {
		rec := txn.undoLog[i]
		switch rec.kind {
		case undoInsert:
			if rec.rowIndex < len(rec.table.Rows) {
				rec.table.removeRowAt(rec.rowIndex)
			}
		case undoUpdate:
			if rec.rowIndex < len(rec.table.Rows) {
				rec.table.setCell(rec.rowIndex, rec.colIndex, rec.oldValue)
			}
		case undoDelete:
			rec.table.appendRow(cloneRow(rec.rowSnapshot))
		}
	}
	e.replaying = false

	e.releaseLocks(txn)
	txn.State = TxnFinished
	e.log.Printf("transaction %d rollback (%d undo records replayed)", txn.ID, len(txn.undoLog))
	e.txn = nil
}

// -----------------------------------------------------------------------
// Locking
// -----------------------------------------------------------------------

// acquireLock acquires a coarse, exclusive lock on table for the active
// transaction, if one is active. Re-acquisition by the same
// transaction is a no-op. Returns LockConflictError if another
// transaction already holds it. The returned bool reports whether this
// call newly acquired the lock, so a caller that goes on to fail
// validation can release it again rather than leaving it held past a
// failed mutation.
func (e *Engine) acquireLock(table *Table) (bool, error) {
	if e.txn == nil {
		return false, nil
	}
	holder, locked := e.locks[table.Name]
	if !locked {
		e.locks[table.Name] = e.txn.ID
		e.txn.lockedTables[table.Name] = true
		return true, nil
	}
	if holder == e.txn.ID {
		return false, nil
	}
	return false, &LockConflictError{Table: table.Name.String(), HolderTxn: holder, RequestTxn: e.txn.ID}
}

// releaseLock drops the lock this call holds on table, if any. Used to
// undo a lock acquireLock just granted when a mutation fails validation
// after acquiring it.
func (e *Engine) releaseLock(table *Table) {
	if e.txn == nil {
		return
	}
	delete(e.locks, table.Name)
	delete(e.txn.lockedTables, table.Name)
}

// releaseLocks drops every lock held by txn.
func (e *Engine) releaseLocks(txn *Transaction) {
	for name := range txn.lockedTables {
		if holder, ok := e.locks[name]; ok && holder == txn.ID {
			delete(e.locks, name)
		}
	}
}

// recordUndo appends rec to the active transaction's undo log, unless
// a commit or rollback replay is currently driving mutations (in which
// case the record would itself need undoing, which is never correct).
func (e *Engine) recordUndo(rec undoRecord) {
	if e.txn == nil || e.replaying {
		return
	}
	e.txn.undoLog = append(e.txn.undoLog, rec)
}
