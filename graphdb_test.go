package graphdb

import (
	"bytes"
	"errors"
	"testing"
)

func TestDBQueryCreateAndMatch(t *testing.T) {
	db := New()
	if _, err := db.Query(`CREATE (a:Person {name: "Ada"})`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}
	res, err := db.Query(`MATCH (p:Person) RETURN p.name`)
	if err != nil {
		t.Fatalf("MATCH: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Records))
	}
}

func TestDBSaveAndLoadBinary(t *testing.T) {
	db := New()
	if _, err := db.Query(`CREATE (a:Person {name: "Ada"})`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}

	var buf bytes.Buffer
	if err := db.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Store.NodeCount() != 1 {
		t.Errorf("loaded NodeCount() = %d, want 1", loaded.Store.NodeCount())
	}
}

func TestDBSaveAndLoadText(t *testing.T) {
	db := New()
	if _, err := db.Query(`CREATE (a:Person {name: "Ada"})`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}

	var buf bytes.Buffer
	if err := db.SaveText(&buf); err != nil {
		t.Fatalf("SaveText: %v", err)
	}

	loaded, err := LoadText(&buf)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if loaded.Store.NodeCount() != 1 {
		t.Errorf("loaded NodeCount() = %d, want 1", loaded.Store.NodeCount())
	}
}

func TestDBTransactionRollsBackOnError(t *testing.T) {
	db := New()
	sentinel := errors.New("boom")

	err := db.Transaction(func() error {
		if _, err := db.Query(`CREATE (a:Person {name: "Ada"})`); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Transaction error = %v, want %v", err, sentinel)
	}
	if db.Store.NodeCount() != 0 {
		t.Errorf("NodeCount() after rolled-back transaction = %d, want 0", db.Store.NodeCount())
	}
}

func TestDBTransactionCommitsOnSuccess(t *testing.T) {
	db := New()
	err := db.Transaction(func() error {
		_, err := db.Query(`CREATE (a:Person {name: "Ada"})`)
		return err
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if db.Store.NodeCount() != 1 {
		t.Errorf("NodeCount() after committed transaction = %d, want 1", db.Store.NodeCount())
	}
}
