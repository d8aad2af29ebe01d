package executor

import (
	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
	"github.com/ritamzico/graphdb/internal/store"
)

// applyCreate runs a CREATE clause once per input row, creating whatever
// nodes and relationships the pattern names, and reusing (rather than
// recreating) any variable the row already has bound — a node bound by
// an earlier MATCH gets its pattern's properties merged into it (spec
// §4.5.3) instead of a duplicate node being created.
func applyCreate(s *store.Store, chain *cypher.PatternChain, rows []runtime.Row) ([]runtime.Row, error) {
	out := make([]runtime.Row, 0, len(rows))
	for _, row := range rows {
		r := row.Clone()
		firstNode, err := resolveOrCreateNode(s, chain.First, r)
		if err != nil {
			return nil, err
		}
		prev := firstNode
		for _, step := range chain.Steps {
			nextNode, err := resolveOrCreateNode(s, step.Node, r)
			if err != nil {
				return nil, err
			}
			if err := createEdgeForStep(s, step.Rel, prev, nextNode, r); err != nil {
				return nil, err
			}
			prev = nextNode
		}
		out = append(out, r)
	}
	return out, nil
}

func resolveOrCreateNode(s *store.Store, pat *cypher.NodePat, row runtime.Row) (*store.Node, error) {
	props, err := evalPropPairs(pat.Props, row)
	if err != nil {
		return nil, err
	}

	if pat.Var != "" {
		if b, ok := row[pat.Var]; ok && b.Kind == runtime.BindNode {
			for _, l := range pat.Labels {
				if err := s.AddNodeLabel(b.Node.ID, l); err != nil {
					return nil, err
				}
			}
			if len(props) > 0 {
				if err := s.MergeNodeProperties(b.Node.ID, props); err != nil {
					return nil, err
				}
			}
			return b.Node, nil
		}
	}

	id, err := s.CreateNode(pat.Labels, props, nil)
	if err != nil {
		return nil, err
	}
	n, err := s.GetNode(id)
	if err != nil {
		return nil, err
	}
	if pat.Var != "" {
		row[pat.Var] = runtime.NodeBinding(n)
	}
	return n, nil
}

func createEdgeForStep(s *store.Store, rel *cypher.RelPat, prev, next *store.Node, row runtime.Row) error {
	var typ string
	var props map[string]store.Value
	if rel.Body != nil && len(rel.Body.Types) > 0 {
		typ = rel.Body.Types[0]
	}
	var err error
	if rel.Body != nil {
		props, err = evalPropPairs(rel.Body.Props, row)
		if err != nil {
			return err
		}
	}

	from, to := prev.ID, next.ID
	if rel.Direction() == cypher.DirIn {
		from, to = to, from
	}

	_, err = s.CreateEdge(from, to, typ, props)
	return err
}

func evalPropPairs(pairs []*cypher.PropPair, row runtime.Row) (map[string]store.Value, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]store.Value, len(pairs))
	for _, pp := range pairs {
		v, err := runtime.Evaluate(pp.Value, row)
		if err != nil {
			return nil, err
		}
		out[pp.Key] = v
	}
	return out, nil
}
