// Package runtime evaluates cypher expressions against a row of bound
// variables. It sits between internal/cypher (which only knows syntax)
// and internal/executor (which owns pattern matching and the clause
// pipeline): this package knows what an expression *means* once
// variables are bound to graph elements or scalars.
package runtime

import (
	"fmt"
	"sort"

	"github.com/ritamzico/graphdb/internal/store"
)

// BindingKind distinguishes what a pattern variable is bound to.
type BindingKind int

const (
	BindScalar BindingKind = iota
	BindNode
	BindEdge
	BindPath
)

// Binding is the value a pattern variable holds in a single result row:
// either a scalar store.Value, a single node, a single edge, or (for
// variable-length relationship patterns) a path of edges.
type Binding struct {
	Kind   BindingKind
	Scalar store.Value
	Node   *store.Node
	Edge   *store.Edge
	Path   []*store.Edge
}

// ScalarBinding wraps a plain value.
func ScalarBinding(v store.Value) Binding { return Binding{Kind: BindScalar, Scalar: v} }

// NodeBinding wraps a bound node.
func NodeBinding(n *store.Node) Binding { return Binding{Kind: BindNode, Node: n} }

// EdgeBinding wraps a bound edge.
func EdgeBinding(e *store.Edge) Binding { return Binding{Kind: BindEdge, Edge: e} }

// PathBinding wraps a bound variable-length relationship path.
func PathBinding(edges []*store.Edge) Binding { return Binding{Kind: BindPath, Path: edges} }

// Property looks up a property on whatever this binding holds: a node or
// edge property, or (for maps) a map entry. Scalars that aren't maps, and
// paths, have no properties and yield Null.
func (b Binding) Property(key string) store.Value {
	switch b.Kind {
	case BindNode:
		return b.Node.Property(key)
	case BindEdge:
		return b.Edge.Property(key)
	case BindScalar:
		if b.Scalar.Kind == store.KindMap {
			if v, ok := b.Scalar.M[key]; ok {
				return v
			}
		}
		return store.Null()
	default:
		return store.Null()
	}
}

// AsValue reduces a Binding to a comparable store.Value: nodes and edges
// become their id as an int so that "a = b" pattern comparisons and
// DISTINCT/ORDER BY work without the caller special-casing each binding
// kind.
func (b Binding) AsValue() store.Value {
	switch b.Kind {
	case BindScalar:
		return b.Scalar
	case BindNode:
		return store.Int(int64(b.Node.ID))
	case BindEdge:
		return store.Int(int64(b.Edge.ID))
	case BindPath:
		ids := make([]store.Value, len(b.Path))
		for i, e := range b.Path {
			ids[i] = store.Int(int64(e.ID))
		}
		return store.List(ids)
	default:
		return store.Null()
	}
}

// String renders a Binding for display (CLI/server result formatting).
func (b Binding) String() string {
	switch b.Kind {
	case BindNode:
		labels := b.Node.LabelList()
		return fmt.Sprintf("(:%v %s)", labels, propsString(b.Node.Props))
	case BindEdge:
		return fmt.Sprintf("[:%s %s]", b.Edge.Type, propsString(b.Edge.Props))
	case BindPath:
		return fmt.Sprintf("<path of %d edges>", len(b.Path))
	default:
		return b.Scalar.String()
	}
}

func propsString(props map[string]store.Value) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := "{"
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k + ": " + props[k].String()
	}
	return out + "}"
}
