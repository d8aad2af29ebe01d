package engine

import (
	"testing"

	"github.com/ritamzico/graphdb/internal/store"
)

func TestEngineParsesAndExecutes(t *testing.T) {
	e := New(store.New())
	if _, err := e.Execute(`CREATE (a:Person {name: "Ada"})`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}
	res, err := e.Execute(`MATCH (p:Person) RETURN p.name`)
	if err != nil {
		t.Fatalf("MATCH: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Records))
	}
}

func TestEngineEmptyQueryIsParseError(t *testing.T) {
	e := New(store.New())
	if _, err := e.Execute(""); err == nil {
		t.Fatal("expected a parse error for an empty query")
	}
}

func TestEngineNoMatchYieldsEmptyResult(t *testing.T) {
	e := New(store.New())
	res, err := e.Execute(`MATCH (p:Nonexistent) RETURN p`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("expected no rows, got %d", len(res.Records))
	}
}
