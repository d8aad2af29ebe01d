package executor

import (
	"context"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/result"
	"github.com/ritamzico/graphdb/internal/runtime"
	"github.com/ritamzico/graphdb/internal/store"
)

// Execute runs query against s, driving MATCH/WHERE/CREATE/WITH/DELETE
// through an evolving set of bound rows and turning the query's final
// RETURN (if any) into a result.Set. Execute does not open its own
// transaction; callers that want rollback-on-error wrap the call in
// internal/txn.WithTransaction (spec §4.2 places transaction scope on
// the caller, not the executor).
func Execute(ctx context.Context, s *store.Store, query *cypher.Query) (*result.Set, error) {
	var rows []runtime.Row
	haveRows := false
	var finalColumns []string
	returned := false

	for _, clause := range query.Clauses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case clause.Match != nil:
			for _, pat := range clause.Match.Patterns {
				if haveRows && len(rows) == 0 {
					break
				}
				var err error
				rows, err = matchPattern(s, pat, rows)
				if err != nil {
					return nil, err
				}
				haveRows = true
			}
			haveRows = true

		case clause.Where != nil:
			var err error
			rows, err = filterRows(clause.Where.Predicate, rows)
			if err != nil {
				return nil, err
			}

		case clause.Create != nil:
			if !haveRows {
				rows = []runtime.Row{{}}
				haveRows = true
			}
			for _, pat := range clause.Create.Patterns {
				var err error
				rows, err = applyCreate(s, pat, rows)
				if err != nil {
					return nil, err
				}
			}

		case clause.Delete != nil:
			var err error
			rows, err = applyDelete(s, clause.Delete, rows)
			if err != nil {
				return nil, err
			}

		case clause.With != nil:
			projected, _, err := project(rows, clause.With.Projections, clause.With.Distinct)
			if err != nil {
				return nil, err
			}
			rows = projected

		case clause.Return != nil:
			projected, names, err := project(rows, clause.Return.Projections, clause.Return.Distinct)
			if err != nil {
				return nil, err
			}
			// When projection kept one row per input row, the input's
			// bindings stay visible behind the projected columns so that a
			// following ORDER BY can sort on variables RETURN did not
			// project; only the named columns reach the result set.
			if len(projected) == len(rows) {
				for i, row := range rows {
					for k, b := range row {
						if _, ok := projected[i][k]; !ok {
							projected[i][k] = b
						}
					}
				}
			}
			rows = projected
			finalColumns = names
			returned = true

		case clause.OrderBy != nil:
			var err error
			rows, err = applyOrderBy(clause.OrderBy, rows)
			if err != nil {
				return nil, err
			}

		case clause.Skip != nil:
			rows = applySkip(clause.Skip.N, rows)

		case clause.Limit != nil:
			rows = applyLimit(clause.Limit.N, rows)
		}
	}

	if !returned {
		return &result.Set{}, nil
	}
	return toResultSet(finalColumns, rows), nil
}

func filterRows(pred *cypher.Expr, rows []runtime.Row) ([]runtime.Row, error) {
	out := make([]runtime.Row, 0, len(rows))
	for _, row := range rows {
		v, err := runtime.Evaluate(pred, row)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			out = append(out, row)
		}
	}
	return out, nil
}

func toResultSet(columns []string, rows []runtime.Row) *result.Set {
	records := make([]result.Record, len(rows))
	for i, row := range rows {
		values := make([]runtime.Binding, len(columns))
		for j, c := range columns {
			values[j] = row[c]
		}
		records[i] = result.Record{Columns: columns, Values: values}
	}
	return &result.Set{Columns: columns, Records: records}
}
