// Package txn implements the transaction model of spec §4.2.
//
// # Transaction semantics
//
// A transaction is a scoped resource around a Store: Begin captures a deep
// snapshot, Commit discards it (commit is a no-op beyond that), and
// Rollback restores it. Nesting is rejected with NestedTransaction — the
// Store itself carries the single "is a transaction active" guard, since
// two Tx values must never be allowed to race over the same Store.
//
// Unlike the buffer-then-apply write-ahead-log transactions found
// elsewhere in this lineage, this is deliberately the simpler
// snapshot/restore model the spec calls for: there is no operation log to
// replay, just "remember the whole state, put it back if things go
// wrong."
package txn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ritamzico/graphdb/internal/dblog"
	"github.com/ritamzico/graphdb/internal/store"
)

// ErrorKind names a class of transaction failure.
type ErrorKind string

const (
	KindNestedTransaction ErrorKind = "NestedTransaction"
	KindNoTransaction     ErrorKind = "NoTransaction"
	KindAlreadyClosed     ErrorKind = "TransactionClosed"
)

// Error is the typed error surfaced by this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("transaction error (%s): %s", e.Kind, e.Message)
}

// Tx is a single in-flight transaction against a Store.
type Tx struct {
	ID     string
	store  *store.Store
	snap   *store.Snapshot
	closed bool
}

// Begin starts a transaction on s, snapshotting its current state. Begin
// fails with NestedTransaction if s already has an active transaction.
func Begin(s *store.Store) (*Tx, error) {
	if !s.TryAcquireTx() {
		return nil, Error{Kind: KindNestedTransaction, Message: "a transaction is already active on this store"}
	}
	tx := &Tx{
		ID:    uuid.NewString(),
		store: s,
		snap:  s.Snapshot(),
	}
	dblog.WithComponent("txn").Debug().Str("tx_id", tx.ID).Msg("transaction begin")
	return tx, nil
}

// Commit ends the transaction successfully: the snapshot is discarded and
// whatever mutations happened on the store remain in effect.
func (t *Tx) Commit() error {
	if t.closed {
		return Error{Kind: KindAlreadyClosed, Message: "transaction already closed"}
	}
	t.closed = true
	t.store.ReleaseTx()
	dblog.WithComponent("txn").Debug().Str("tx_id", t.ID).Msg("transaction commit")
	return nil
}

// Rollback ends the transaction by restoring the store to its state at
// Begin.
func (t *Tx) Rollback() error {
	if t.closed {
		return Error{Kind: KindAlreadyClosed, Message: "transaction already closed"}
	}
	t.closed = true
	t.store.Restore(t.snap)
	t.store.ReleaseTx()
	dblog.WithComponent("txn").Debug().Str("tx_id", t.ID).Msg("transaction rollback")
	return nil
}

// WithTransaction runs fn inside a scoped transaction on s: on success the
// transaction commits; if fn returns an error (or panics), the
// transaction rolls back and the panic, if any, is re-raised after the
// store has been restored. This is the "exception-for-control-flow"
// pattern from spec §9: fn's failure is the "errored flag" that decides
// whether the destructor path commits or restores.
func WithTransaction(s *store.Store, fn func(*Tx) error) (err error) {
	tx, err := Begin(s)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}
