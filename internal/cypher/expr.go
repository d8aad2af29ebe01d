package cypher

// The expression grammar is precedence-climbing, one type per level, from
// loosest to tightest binding (spec §4.3):
//
//	Expr -> OrExpr -> AndExpr -> NotExpr -> Comparison -> Additive ->
//	Multiplicative -> Unary -> Primary

// Expr is the entry point for any expression context (WHERE predicate,
// projection, property value, ORDER BY key).
type Expr struct {
	Or *OrExpr `parser:"@@"`
}

// OrExpr is a left-associative chain of AndExpr joined by OR.
type OrExpr struct {
	Left *AndExpr   `parser:"@@"`
	Rest []*AndExpr `parser:"( \"OR\" @@ )*"`
}

// AndExpr is a left-associative chain of NotExpr joined by AND.
type AndExpr struct {
	Left *NotExpr   `parser:"@@"`
	Rest []*NotExpr `parser:"( \"AND\" @@ )*"`
}

// NotExpr is zero or more NOT prefixes applied to a Comparison.
type NotExpr struct {
	Negated *NotExpr    `parser:"  \"NOT\" @@"`
	Base    *Comparison `parser:"| @@"`
}

// ComparisonOp is one comparison/string-search operator. Exactly one of
// the bool fields is set to true after a successful parse; Regex and the
// word operators (Contains/StartsWith/EndsWith) share the comparison
// precedence level per spec §4.3.
type ComparisonOp struct {
	Eq         bool `parser:"(  @\"=\""`
	Neq        bool `parser:" | @\"<>\""`
	Le         bool `parser:" | @\"<=\""`
	Ge         bool `parser:" | @\">=\""`
	Lt         bool `parser:" | @\"<\""`
	Gt         bool `parser:" | @\">\""`
	Contains   bool `parser:" | @\"CONTAINS\""`
	StartsWith bool `parser:" | ( \"STARTS\" @\"WITH\" )"`
	EndsWith   bool `parser:" | ( \"ENDS\" @\"WITH\" )"`
	Regex      bool `parser:" | @RegexOp )"`
}

// ComparisonTail pairs an operator with its right-hand operand, so that
// Comparison itself can make the tail wholly optional (no comparison at
// all is just a bare Additive expression, e.g. a boolean variable).
type ComparisonTail struct {
	Op    *ComparisonOp `parser:"@@"`
	Right *Additive     `parser:"@@"`
}

// Comparison is an Additive expression, optionally compared against
// another.
type Comparison struct {
	Left *Additive       `parser:"@@"`
	Tail *ComparisonTail `parser:"@@?"`
}

// AddOp is a single "+ term" or "- term" suffix.
type AddOp struct {
	Plus  bool            `parser:"(  @\"+\""`
	Minus bool            `parser:" | @\"-\" )"`
	Right *Multiplicative `parser:"@@"`
}

// Additive is a left-associative chain of Multiplicative terms joined by
// + and -.
type Additive struct {
	Left *Multiplicative `parser:"@@"`
	Ops  []*AddOp        `parser:"@@*"`
}

// MulOp is a single "* factor" or "/ factor" suffix.
type MulOp struct {
	Star  bool   `parser:"(  @\"*\""`
	Slash bool   `parser:" | @\"/\" )"`
	Right *Unary `parser:"@@"`
}

// Multiplicative is a left-associative chain of Unary factors joined by *
// and /.
type Multiplicative struct {
	Left *Unary   `parser:"@@"`
	Ops  []*MulOp `parser:"@@*"`
}

// Unary is an optionally negated Primary.
type Unary struct {
	Neg     bool     `parser:"@\"-\"?"`
	Primary *Primary `parser:"@@"`
}

// AggregateArg is the single argument to an aggregate call: either the
// literal "*" (only meaningful for COUNT) or a plain expression.
type AggregateArg struct {
	Star bool  `parser:"(  @\"*\""`
	Expr *Expr `parser:" | @@ )"`
}

// AggregateCall is one of COUNT/SUM/AVG/MIN/MAX applied to an argument.
// Aggregates are syntactically distinct from ordinary function calls
// because only they accept the bare "*" argument and only they trigger
// grouped-aggregation semantics in the executor.
type AggregateCall struct {
	Func string        `parser:"@( \"COUNT\" | \"SUM\" | \"AVG\" | \"MIN\" | \"MAX\" ) \"(\""`
	Arg  *AggregateArg `parser:"@@ \")\""`
}

// CallExpr is a plain scalar function call: name(arg, arg, ...).
type CallExpr struct {
	Name string  `parser:"@Ident \"(\""`
	Args []*Expr `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// PropAccess is a "var.key" property dereference.
type PropAccess struct {
	Var string `parser:"@Ident \".\""`
	Key string `parser:"@Ident"`
}

// Literal is a constant value: null, a boolean, a number, a string, a
// list literal, or a map literal.
type Literal struct {
	Null  bool         `parser:"(  @\"NULL\""`
	True  bool         `parser:" | @\"TRUE\""`
	False bool         `parser:" | @\"FALSE\""`
	Str   *string      `parser:" | @String"`
	Float *float64     `parser:" | @Float"`
	Int   *int64       `parser:" | @Int"`
	List  *ListLiteral `parser:" | @@"`
	Map   *MapLiteral  `parser:" | @@ )"`
}

// ListLiteral is a bracketed, comma-separated expression list.
type ListLiteral struct {
	Items []*Expr `parser:"\"[\" ( @@ ( \",\" @@ )* )? \"]\""`
}

// MapLiteral is a braced, comma-separated key:expr list.
type MapLiteral struct {
	Entries []*PropPair `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

// Primary is the tightest-binding expression form: an aggregate call, a
// scalar function call, a property access, a bare variable, a literal, or
// a parenthesised sub-expression.
type Primary struct {
	Aggregate  *AggregateCall `parser:"(  @@"`
	Call       *CallExpr      `parser:" | @@"`
	PropAccess *PropAccess    `parser:" | @@"`
	Var        *string        `parser:" | @Ident"`
	Literal    *Literal       `parser:" | @@"`
	Paren      *Expr          `parser:" | \"(\" @@ \")\" )"`
}
