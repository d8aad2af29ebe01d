// Package snapshot implements durable persistence for a store.Store
// (spec §6): a binary codec over encoding/gob and a human-readable text
// codec over gopkg.in/yaml.v3, both encoding the same logical shape —
// the id counters plus every node and edge, in ascending id order.
//
// This is a different "snapshot" from store.Snapshot: that one is an
// in-memory deep copy used by internal/txn for rollback; this one is a
// serializable document meant to outlive the process.
package snapshot

import (
	"github.com/ritamzico/graphdb/internal/store"
)

// document is the wire shape both codecs encode: a flat, ordered
// description of the whole store.
type document struct {
	NextNodeID store.NodeID       `yaml:"next_node_id"`
	NextEdgeID store.EdgeID       `yaml:"next_edge_id"`
	Nodes      []nodeDoc          `yaml:"nodes"`
	Edges      []edgeDoc          `yaml:"edges"`
}

type nodeDoc struct {
	ID     store.NodeID       `yaml:"id"`
	Labels []string           `yaml:"labels,omitempty"`
	Props  map[string]valueDoc `yaml:"props,omitempty"`
}

type edgeDoc struct {
	ID    store.EdgeID       `yaml:"id"`
	From  store.NodeID       `yaml:"from"`
	To    store.NodeID       `yaml:"to"`
	Type  string             `yaml:"type"`
	Props map[string]valueDoc `yaml:"props,omitempty"`
}

// valueDoc is a Kind-discriminated wrapper around store.Value so that
// round-tripping through gob or YAML preserves the int/float/string/
// list/map/null distinction instead of collapsing onto a generic
// interface{} (the same discriminated-union trick this lineage's JSON
// codec uses for its own property values).
type valueDoc struct {
	Kind  store.ValueKind     `yaml:"kind"`
	B     bool                `yaml:"b,omitempty"`
	I     int64               `yaml:"i,omitempty"`
	F     float64             `yaml:"f,omitempty"`
	S     string              `yaml:"s,omitempty"`
	L     []valueDoc          `yaml:"l,omitempty"`
	M     map[string]valueDoc `yaml:"m,omitempty"`
}

func toValueDoc(v store.Value) valueDoc {
	switch v.Kind {
	case store.KindList:
		l := make([]valueDoc, len(v.L))
		for i, e := range v.L {
			l[i] = toValueDoc(e)
		}
		return valueDoc{Kind: v.Kind, L: l}
	case store.KindMap:
		m := make(map[string]valueDoc, len(v.M))
		for k, e := range v.M {
			m[k] = toValueDoc(e)
		}
		return valueDoc{Kind: v.Kind, M: m}
	default:
		return valueDoc{Kind: v.Kind, B: v.B, I: v.I, F: v.F, S: v.S}
	}
}

func fromValueDoc(d valueDoc) store.Value {
	switch d.Kind {
	case store.KindList:
		l := make([]store.Value, len(d.L))
		for i, e := range d.L {
			l[i] = fromValueDoc(e)
		}
		return store.List(l)
	case store.KindMap:
		m := make(map[string]store.Value, len(d.M))
		for k, e := range d.M {
			m[k] = fromValueDoc(e)
		}
		return store.MapVal(m)
	case store.KindBool:
		return store.Bool(d.B)
	case store.KindInt:
		return store.Int(d.I)
	case store.KindFloat:
		return store.Float(d.F)
	case store.KindString:
		return store.Str(d.S)
	default:
		return store.Null()
	}
}

func toValueDocMap(props map[string]store.Value) map[string]valueDoc {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]valueDoc, len(props))
	for k, v := range props {
		out[k] = toValueDoc(v)
	}
	return out
}

func fromValueDocMap(docs map[string]valueDoc) map[string]store.Value {
	if len(docs) == 0 {
		return nil
	}
	out := make(map[string]store.Value, len(docs))
	for k, v := range docs {
		out[k] = fromValueDoc(v)
	}
	return out
}

func toDocument(s *store.Store) document {
	nodes, edges, nextNode, nextEdge := s.Export()
	doc := document{
		NextNodeID: nextNode,
		NextEdgeID: nextEdge,
		Nodes:      make([]nodeDoc, len(nodes)),
		Edges:      make([]edgeDoc, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = nodeDoc{ID: n.ID, Labels: n.Labels, Props: toValueDocMap(n.Props)}
	}
	for i, e := range edges {
		doc.Edges[i] = edgeDoc{ID: e.ID, From: e.From, To: e.To, Type: e.Type, Props: toValueDocMap(e.Props)}
	}
	return doc
}

func (doc document) restore(s *store.Store) {
	nodes := make([]store.NodeRecord, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = store.NodeRecord{ID: n.ID, Labels: n.Labels, Props: fromValueDocMap(n.Props)}
	}
	edges := make([]store.EdgeRecord, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = store.EdgeRecord{ID: e.ID, From: e.From, To: e.To, Type: e.Type, Props: fromValueDocMap(e.Props)}
	}
	s.BulkLoad(nodes, edges, doc.NextNodeID, doc.NextEdgeID)
}
