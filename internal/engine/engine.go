// Package engine is the thin façade the top-level package and cmd/server
// drive: parse, then execute, against one store. It plays the same role
// the probabilistic-graph lineage's InferenceEngine played for its own
// query language, adapted to parse text instead of taking an
// already-built AST.
package engine

import (
	"context"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/executor"
	"github.com/ritamzico/graphdb/internal/result"
	"github.com/ritamzico/graphdb/internal/store"
)

// Engine runs queries against a single Store.
type Engine struct {
	Store *store.Store
}

// New returns an Engine over s.
func New(s *store.Store) *Engine {
	return &Engine{Store: s}
}

// Execute parses and runs a single query string.
func (e *Engine) Execute(query string) (*result.Set, error) {
	return e.ExecuteWithContext(context.Background(), query)
}

// ExecuteWithContext is Execute with caller-supplied cancellation.
func (e *Engine) ExecuteWithContext(ctx context.Context, query string) (*result.Set, error) {
	ast, err := cypher.Parse(query)
	if err != nil {
		return nil, err
	}
	return executor.Execute(ctx, e.Store, ast)
}
