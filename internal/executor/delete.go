package executor

import (
	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
	"github.com/ritamzico/graphdb/internal/store"
)

// applyDelete removes every bound node or edge named by clause.Vars, once
// per input row. Deleting a node that still has incident edges fails
// with NodeHasDependents unless DETACH was specified, in which case the
// incident edges are removed first (spec §4.5.5).
func applyDelete(s *store.Store, clause *cypher.DeleteClause, rows []runtime.Row) ([]runtime.Row, error) {
	for _, row := range rows {
		for _, name := range clause.Vars {
			b, ok := row[name]
			if !ok {
				return nil, Error{Kind: KindUnboundVariable, Message: "variable " + name + " is not bound"}
			}
			switch b.Kind {
			case runtime.BindNode:
				if err := deleteNode(s, b.Node.ID, clause.Detach); err != nil {
					return nil, err
				}
			case runtime.BindEdge:
				if err := s.DeleteEdge(b.Edge.ID); err != nil {
					return nil, err
				}
			default:
				return nil, Error{Kind: KindBadDelete, Message: name + " is not a node or relationship"}
			}
		}
	}
	return rows, nil
}

func deleteNode(s *store.Store, id store.NodeID, detach bool) error {
	out, _ := s.OutEdges(id)
	in, _ := s.InEdges(id)
	if !detach && (len(out) > 0 || len(in) > 0) {
		return Error{Kind: KindNodeHasDependents, Message: "node still has incident relationships; use DETACH DELETE"}
	}
	return s.DeleteNode(id)
}
