package txn

import (
	"errors"
	"testing"

	"github.com/ritamzico/graphdb/internal/store"
)

func TestBeginRejectsNesting(t *testing.T) {
	s := store.New()
	tx, err := Begin(s)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer tx.Commit()

	if _, err := Begin(s); err == nil {
		t.Fatal("expected nested Begin to fail")
	} else if te, ok := err.(Error); !ok || te.Kind != KindNestedTransaction {
		t.Errorf("expected KindNestedTransaction, got %v", err)
	}
}

func TestCommitKeepsMutations(t *testing.T) {
	s := store.New()
	tx, err := Begin(s)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := s.CreateNode(nil, nil, nil); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount() after commit = %d, want 1", s.NodeCount())
	}

	// A new transaction can begin now that the prior one is closed.
	if _, err := Begin(s); err != nil {
		t.Errorf("expected Begin to succeed after commit, got %v", err)
	}
}

func TestRollbackDiscardsMutations(t *testing.T) {
	s := store.New()
	tx, err := Begin(s)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := s.CreateNode(nil, nil, nil); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if s.NodeCount() != 0 {
		t.Errorf("NodeCount() after rollback = %d, want 0", s.NodeCount())
	}
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	s := store.New()
	sentinel := errors.New("boom")

	err := WithTransaction(s, func(tx *Tx) error {
		if _, err := s.CreateNode(nil, nil, nil); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithTransaction error = %v, want %v", err, sentinel)
	}
	if s.NodeCount() != 0 {
		t.Errorf("NodeCount() after failed transaction = %d, want 0", s.NodeCount())
	}
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	s := store.New()
	err := WithTransaction(s, func(tx *Tx) error {
		_, err := s.CreateNode(nil, nil, nil)
		return err
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount() after successful transaction = %d, want 1", s.NodeCount())
	}
}

func TestWithTransactionRePanics(t *testing.T) {
	s := store.New()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate")
		}
		if s.NodeCount() != 0 {
			t.Errorf("NodeCount() after panicking transaction = %d, want 0", s.NodeCount())
		}
	}()

	_ = WithTransaction(s, func(tx *Tx) error {
		_, _ = s.CreateNode(nil, nil, nil)
		panic("kaboom")
	})
}
