package cypher

// MatchClause matches one or more comma-separated pattern chains.
type MatchClause struct {
	Patterns []*PatternChain `parser:"\"MATCH\" @@ ( \",\" @@ )*"`
}

// WhereClause filters the current binding set by a predicate.
type WhereClause struct {
	Predicate *Expr `parser:"\"WHERE\" @@"`
}

// CreateClause creates one or more comma-separated pattern chains,
// binding to any already-bound variables they reuse.
type CreateClause struct {
	Patterns []*PatternChain `parser:"\"CREATE\" @@ ( \",\" @@ )*"`
}

// DeleteClause removes the named bound variables (nodes and/or edges).
// Detach, when set, also removes each node's incident edges instead of
// failing when it still has any.
type DeleteClause struct {
	Detach bool     `parser:"@\"DETACH\"?"`
	Vars   []string `parser:"\"DELETE\" @Ident ( \",\" @Ident )*"`
}

// Projection is a single "expr [AS alias]" entry in a WITH or RETURN
// clause.
type Projection struct {
	Expr  *Expr  `parser:"@@"`
	Alias string `parser:"( \"AS\" @Ident )?"`
}

// WithClause re-projects the current bindings, optionally deduplicating,
// becoming the input bindings for the remainder of the query.
type WithClause struct {
	Distinct    bool          `parser:"\"WITH\" @\"DISTINCT\"?"`
	Projections []*Projection `parser:"@@ ( \",\" @@ )*"`
}

// ReturnClause is the terminal projection producing the query's result
// set.
type ReturnClause struct {
	Distinct    bool          `parser:"\"RETURN\" @\"DISTINCT\"?"`
	Projections []*Projection `parser:"@@ ( \",\" @@ )*"`
}

// OrderItem is one "expr [ASC|DESC]" sort key.
type OrderItem struct {
	Expr *Expr  `parser:"@@"`
	Dir  string `parser:"@( \"ASC\" | \"DESC\" )?"`
}

// OrderByClause sorts the result rows by one or more keys.
type OrderByClause struct {
	Items []*OrderItem `parser:"\"ORDER\" \"BY\" @@ ( \",\" @@ )*"`
}

// SkipClause discards the first N result rows.
type SkipClause struct {
	N int `parser:"\"SKIP\" @Int"`
}

// LimitClause caps the result set at N rows.
type LimitClause struct {
	N int `parser:"\"LIMIT\" @Int"`
}

// Clause is one step of the query pipeline. Exactly one field is set.
type Clause struct {
	Match   *MatchClause   `parser:"(  @@"`
	Where   *WhereClause   `parser:" | @@"`
	Create  *CreateClause  `parser:" | @@"`
	With    *WithClause    `parser:" | @@"`
	Delete  *DeleteClause  `parser:" | @@"`
	Return  *ReturnClause  `parser:" | @@"`
	OrderBy *OrderByClause `parser:" | @@"`
	Skip    *SkipClause    `parser:" | @@"`
	Limit   *LimitClause   `parser:" | @@ )"`
}

// Query is the full pipeline: an ordered sequence of clauses.
type Query struct {
	Clauses []*Clause `parser:"@@+"`
}
