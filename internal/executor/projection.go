package executor

import (
	"strings"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
)

// columnNames returns the display name for each projection: its AS
// alias if given, else a best-effort rendering of the expression.
func columnNames(projections []*cypher.Projection) []string {
	names := make([]string, len(projections))
	for i, p := range projections {
		if p.Alias != "" {
			names[i] = p.Alias
		} else {
			names[i] = exprText(p.Expr)
		}
	}
	return names
}

// project evaluates projections against every row, returning the
// resulting rows keyed by column name. When any projection is a
// top-level aggregate call, the non-aggregate projections become GROUP
// BY keys and rows are folded down to one row per distinct key
// combination (spec §4.5's aggregate semantics).
func project(rows []runtime.Row, projections []*cypher.Projection, distinct bool) ([]runtime.Row, []string, error) {
	names := columnNames(projections)

	hasAgg := false
	for _, p := range projections {
		if _, ok := asAggregate(p.Expr); ok {
			hasAgg = true
			break
		}
	}

	var out []runtime.Row
	var err error
	if hasAgg {
		out, err = projectGrouped(rows, projections, names)
	} else {
		out, err = projectPlain(rows, projections, names)
	}
	if err != nil {
		return nil, nil, err
	}
	if distinct {
		out = dedupe(out, names)
	}
	return out, names, nil
}

func projectPlain(rows []runtime.Row, projections []*cypher.Projection, names []string) ([]runtime.Row, error) {
	out := make([]runtime.Row, 0, len(rows))
	for _, row := range rows {
		newRow := make(runtime.Row, len(projections))
		for i, p := range projections {
			b, err := projectOne(p.Expr, row)
			if err != nil {
				return nil, err
			}
			newRow[names[i]] = b
		}
		out = append(out, newRow)
	}
	return out, nil
}

// projectOne evaluates a single projection expression, preserving the
// underlying node/edge Binding when the expression is nothing but a bare
// variable so that downstream WITH/RETURN/ORDER BY still sees a graph
// element rather than a synthetic scalar id.
func projectOne(e *cypher.Expr, row runtime.Row) (runtime.Binding, error) {
	if v, ok := asBareVar(e); ok {
		if b, ok := row[v]; ok {
			return b, nil
		}
	}
	val, err := runtime.Evaluate(e, row)
	if err != nil {
		return runtime.Binding{}, err
	}
	return runtime.ScalarBinding(val), nil
}

type group struct {
	key    string
	base   runtime.Row
	accums []accumulator
}

func projectGrouped(rows []runtime.Row, projections []*cypher.Projection, names []string) ([]runtime.Row, error) {
	type slot struct {
		isAgg bool
		agg   *cypher.AggregateCall
		expr  *cypher.Expr
	}
	slots := make([]slot, len(projections))
	anyGroupKey := false
	for i, p := range projections {
		if agg, ok := asAggregate(p.Expr); ok {
			slots[i] = slot{isAgg: true, agg: agg}
		} else {
			slots[i] = slot{expr: p.Expr}
			anyGroupKey = true
		}
	}

	var order []string
	groups := make(map[string]*group)

	ensureGroup := func(key string, base runtime.Row) *group {
		g, ok := groups[key]
		if !ok {
			accums := make([]accumulator, len(slots))
			for i, s := range slots {
				if s.isAgg {
					accums[i] = newAccumulator(strings.ToUpper(s.agg.Func))
				}
			}
			g = &group{key: key, base: base, accums: accums}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}

	feed := func(row runtime.Row) error {
		var keyParts []string
		base := make(runtime.Row)
		for i, s := range slots {
			if s.isAgg {
				continue
			}
			b, err := projectOne(s.expr, row)
			if err != nil {
				return err
			}
			base[names[i]] = b
			keyParts = append(keyParts, b.AsValue().String())
		}
		g := ensureGroup(strings.Join(keyParts, "\x1f"), base)
		for i, s := range slots {
			if !s.isAgg {
				continue
			}
			v, isStar, err := aggregateValue(s.agg, row)
			if err != nil {
				return err
			}
			g.accums[i].add(v, isStar)
		}
		return nil
	}

	if !anyGroupKey {
		// No GROUP BY keys at all: aggregates always produce exactly one
		// row, even over zero input rows (e.g. COUNT(*) on an empty
		// match).
		ensureGroup("", runtime.Row{})
	}
	for _, row := range rows {
		if err := feed(row); err != nil {
			return nil, err
		}
	}

	out := make([]runtime.Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := g.base.Clone()
		for i, s := range slots {
			if s.isAgg {
				row[names[i]] = runtime.ScalarBinding(g.accums[i].result())
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func dedupe(rows []runtime.Row, names []string) []runtime.Row {
	seen := make(map[string]bool, len(rows))
	out := make([]runtime.Row, 0, len(rows))
	for _, row := range rows {
		var parts []string
		for _, n := range names {
			parts = append(parts, row[n].AsValue().String())
		}
		key := strings.Join(parts, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}
