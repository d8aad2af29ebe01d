package executor

import (
	"sort"
	"strings"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
)

func applyOrderBy(clause *cypher.OrderByClause, rows []runtime.Row) ([]runtime.Row, error) {
	var firstErr error

	sorted := append([]runtime.Row{}, rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, item := range clause.Items {
			vi, err := runtime.Evaluate(item.Expr, sorted[i])
			if err != nil {
				firstErr = err
				return false
			}
			vj, err := runtime.Evaluate(item.Expr, sorted[j])
			if err != nil {
				firstErr = err
				return false
			}
			if vi.Equal(vj) {
				continue
			}
			less := vi.Less(vj)
			if strings.EqualFold(item.Dir, "DESC") {
				return !less
			}
			return less
		}
		return false
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return sorted, nil
}

func applySkip(n int, rows []runtime.Row) []runtime.Row {
	if n >= len(rows) {
		return nil
	}
	if n <= 0 {
		return rows
	}
	return rows[n:]
}

func applyLimit(n int, rows []runtime.Row) []runtime.Row {
	if n < 0 {
		return rows
	}
	if n < len(rows) {
		return rows[:n]
	}
	return rows
}
