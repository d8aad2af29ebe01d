package executor

import (
	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
	"github.com/ritamzico/graphdb/internal/store"
)

// maxHops is the hard cap on variable-length relationship traversal
// (spec §4.5.1's pattern-matching rules), applied regardless of any
// larger upper bound written in the pattern itself.
const maxHops = 15

// matchPattern expands chain against every row in rows, returning one
// output row per valid match of the whole pattern chain. An empty input
// (the first MATCH in a query) is represented as a single empty row.
func matchPattern(s *store.Store, chain *cypher.PatternChain, rows []runtime.Row) ([]runtime.Row, error) {
	if len(rows) == 0 {
		rows = []runtime.Row{{}}
	}

	var out []runtime.Row
	for _, row := range rows {
		nodes, err := candidateNodes(s, chain.First, row)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			r := row.Clone()
			r[chain.First.Var] = runtime.NodeBinding(n)
			expanded, err := expandSteps(s, chain.Steps, 0, n, r)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
	}
	return out, nil
}

// expandSteps recursively matches the remaining pattern steps starting
// from the node currently bound at the end of the chain.
func expandSteps(s *store.Store, steps []*cypher.PatternStep, i int, fromNode *store.Node, row runtime.Row) ([]runtime.Row, error) {
	if i >= len(steps) {
		return []runtime.Row{row}, nil
	}
	step := steps[i]

	paths, err := matchRel(s, fromNode.ID, step.Rel, row)
	if err != nil {
		return nil, err
	}

	var out []runtime.Row
	for _, p := range paths {
		toNode, err := s.GetNode(p.to)
		if err != nil {
			continue
		}
		if !nodeMatches(step.Node, toNode, row) {
			continue
		}
		r := row.Clone()
		if existing, ok := r[step.Node.Var]; ok && step.Node.Var != "" {
			if existing.Kind != runtime.BindNode || existing.Node.ID != toNode.ID {
				continue
			}
		}
		if step.Node.Var != "" {
			r[step.Node.Var] = runtime.NodeBinding(toNode)
		}
		if step.Rel.Body != nil && step.Rel.Body.Var != "" {
			if step.Rel.Body.Range != nil {
				r[step.Rel.Body.Var] = runtime.PathBinding(p.edges)
			} else {
				r[step.Rel.Body.Var] = runtime.EdgeBinding(p.edges[0])
			}
		}
		rest, err := expandSteps(s, steps, i+1, toNode, r)
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
	}
	return out, nil
}

// relPath is one variable-length (or single-hop) match: the edges walked
// and the node landed on.
type relPath struct {
	edges []*store.Edge
	to    store.NodeID
}

// matchRel enumerates every simple path (no repeated edge) out of from
// that satisfies rel's direction, type, and length constraints.
func matchRel(s *store.Store, from store.NodeID, rel *cypher.RelPat, row runtime.Row) ([]relPath, error) {
	var types []string
	var props []*cypher.PropPair
	if rel.Body != nil {
		types = rel.Body.Types
		props = rel.Body.Props
	}
	min, max := hopRange(rel.Body)
	if max > maxHops {
		max = maxHops
	}
	dir := rel.Direction()

	var results []relPath
	used := make(map[store.EdgeID]bool)
	var walk func(cur store.NodeID, depth int, edges []*store.Edge) error
	walk = func(cur store.NodeID, depth int, edges []*store.Edge) error {
		if depth >= min {
			results = append(results, relPath{edges: append([]*store.Edge{}, edges...), to: cur})
		}
		if depth >= max {
			return nil
		}
		for _, step := range neighbors(s, cur, dir) {
			if used[step.edge.ID] {
				continue
			}
			if len(types) > 0 && !containsStr(types, step.edge.Type) {
				continue
			}
			if !edgePropsMatch(props, step.edge, row) {
				continue
			}
			used[step.edge.ID] = true
			if err := walk(step.to, depth+1, append(edges, step.edge)); err != nil {
				return err
			}
			delete(used, step.edge.ID)
		}
		return nil
	}
	if err := walk(from, 0, nil); err != nil {
		return nil, err
	}
	return results, nil
}

func hopRange(body *cypher.RelBody) (min, max int) {
	if body == nil || body.Range == nil {
		return 1, 1
	}
	r := body.Range
	if r.Range == nil {
		if r.Min != nil {
			return *r.Min, *r.Min
		}
		return 1, maxHops
	}
	lo := 1
	if r.Min != nil {
		lo = *r.Min
	}
	hi := maxHops
	if r.Range.Max != nil {
		hi = *r.Range.Max
	}
	return lo, hi
}

type neighborStep struct {
	edge *store.Edge
	to   store.NodeID
}

func neighbors(s *store.Store, id store.NodeID, dir cypher.Direction) []neighborStep {
	var out []neighborStep
	if dir == cypher.DirOut || dir == cypher.DirBoth {
		if edges, err := s.OutEdges(id); err == nil {
			for _, e := range edges {
				out = append(out, neighborStep{edge: e, to: e.To})
			}
		}
	}
	if dir == cypher.DirIn || dir == cypher.DirBoth {
		if edges, err := s.InEdges(id); err == nil {
			for _, e := range edges {
				out = append(out, neighborStep{edge: e, to: e.From})
			}
		}
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// candidateNodes resolves a NodePat to the nodes it can match: if its
// variable is already bound (a repeated variable within one pattern), it
// resolves to that single node (re-validated against the pattern's own
// filters); otherwise it scans the label index (or the whole store, if
// unlabeled) and filters by labels and inline properties.
func candidateNodes(s *store.Store, pat *cypher.NodePat, row runtime.Row) ([]*store.Node, error) {
	if pat.Var != "" {
		if b, ok := row[pat.Var]; ok {
			if b.Kind != runtime.BindNode {
				return nil, nil
			}
			if nodeMatches(pat, b.Node, row) {
				return []*store.Node{b.Node}, nil
			}
			return nil, nil
		}
	}

	var candidates []*store.Node
	if len(pat.Labels) > 0 {
		candidates = s.NodesByLabel(pat.Labels[0])
	} else {
		candidates = s.AllNodes()
	}

	out := make([]*store.Node, 0, len(candidates))
	for _, n := range candidates {
		if nodeMatches(pat, n, row) {
			out = append(out, n)
		}
	}
	return out, nil
}

func nodeMatches(pat *cypher.NodePat, n *store.Node, row runtime.Row) bool {
	for _, l := range pat.Labels {
		if !n.HasLabel(l) {
			return false
		}
	}
	for _, pp := range pat.Props {
		want, err := runtime.Evaluate(pp.Value, row)
		if err != nil {
			return false
		}
		if !n.Property(pp.Key).Equal(want) {
			return false
		}
	}
	return true
}

func edgePropsMatch(props []*cypher.PropPair, e *store.Edge, row runtime.Row) bool {
	for _, pp := range props {
		want, err := runtime.Evaluate(pp.Value, row)
		if err != nil {
			return false
		}
		if !e.Property(pp.Key).Equal(want) {
			return false
		}
	}
	return true
}
