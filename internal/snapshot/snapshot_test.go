package snapshot

import (
	"bytes"
	"testing"

	"github.com/ritamzico/graphdb/internal/store"
)

func buildSampleStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	a, err := s.CreateNode([]string{"Person"}, map[string]store.Value{
		"name": store.Str("Ada"),
		"age":  store.Int(36),
		"tags": store.List([]store.Value{store.Str("math"), store.Str("computing")}),
	}, nil)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	b, err := s.CreateNode([]string{"Person"}, map[string]store.Value{"name": store.Str("Bob")}, nil)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if _, err := s.CreateEdge(a, b, "KNOWS", map[string]store.Value{"since": store.Int(1843)}); err != nil {
		t.Fatalf("CreateEdge: %v", err)
	}
	return s
}

func TestBinaryRoundTrip(t *testing.T) {
	s := buildSampleStore(t)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, s); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	restored := store.New()
	if err := ReadBinary(&buf, restored); err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if restored.NodeCount() != s.NodeCount() || restored.EdgeCount() != s.EdgeCount() {
		t.Fatalf("restored counts = (%d, %d), want (%d, %d)",
			restored.NodeCount(), restored.EdgeCount(), s.NodeCount(), s.EdgeCount())
	}
	people := restored.NodesByLabel("Person")
	if len(people) != 2 {
		t.Fatalf("expected 2 Person nodes after restore, got %d", len(people))
	}
	tags := people[0].Property("tags")
	if tags.Kind != store.KindList || len(tags.L) != 2 {
		t.Errorf("list property did not round-trip: %v", tags)
	}
}

func TestTextRoundTrip(t *testing.T) {
	s := buildSampleStore(t)

	var buf bytes.Buffer
	if err := WriteText(&buf, s); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	restored := store.New()
	if err := ReadText(&buf, restored); err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	if restored.NodeCount() != s.NodeCount() || restored.EdgeCount() != s.EdgeCount() {
		t.Fatalf("restored counts = (%d, %d), want (%d, %d)",
			restored.NodeCount(), restored.EdgeCount(), s.NodeCount(), s.EdgeCount())
	}
	edges := restored.EdgesByType("KNOWS")
	if len(edges) != 1 || edges[0].Property("since").I != 1843 {
		t.Errorf("edge property did not round-trip: %+v", edges)
	}
}

func TestBinaryRoundTripPreservesNextIDs(t *testing.T) {
	s := store.New()
	id := store.NodeID(100)
	if _, err := s.CreateNode(nil, nil, &id); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteBinary(&buf, s); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	restored := store.New()
	if err := ReadBinary(&buf, restored); err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	newID, err := restored.CreateNode(nil, nil, nil)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if newID <= id {
		t.Errorf("next node id after restore = %d, want something greater than %d", newID, id)
	}
}
