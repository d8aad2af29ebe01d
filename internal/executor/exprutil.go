package executor

import "github.com/ritamzico/graphdb/internal/cypher"

// unwrapToPrimary descends an Expr through every precedence level,
// returning the bare Primary it reduces to if (and only if) no operator
// at any level is actually applied — i.e. the expression is nothing more
// than "primary" with no +, -, *, /, comparison, NOT, AND, or OR wrapped
// around it.
func unwrapToPrimary(e *cypher.Expr) *cypher.Primary {
	or := e.Or
	if len(or.Rest) != 0 {
		return nil
	}
	and := or.Left
	if len(and.Rest) != 0 {
		return nil
	}
	not := and.Left
	if not.Negated != nil {
		return nil
	}
	cmp := not.Base
	if cmp.Tail != nil {
		return nil
	}
	add := cmp.Left
	if len(add.Ops) != 0 {
		return nil
	}
	mul := add.Left
	if len(mul.Ops) != 0 {
		return nil
	}
	unary := mul.Left
	if unary.Neg {
		return nil
	}
	return unary.Primary
}

// asBareVar reports the variable name if e is nothing but a bare
// identifier reference.
func asBareVar(e *cypher.Expr) (string, bool) {
	p := unwrapToPrimary(e)
	if p == nil || p.Var == nil {
		return "", false
	}
	return *p.Var, true
}

// asAggregate reports the AggregateCall if e is nothing but a top-level
// aggregate function call.
func asAggregate(e *cypher.Expr) (*cypher.AggregateCall, bool) {
	p := unwrapToPrimary(e)
	if p == nil || p.Aggregate == nil {
		return nil, false
	}
	return p.Aggregate, true
}

// exprText reconstructs a best-effort source rendering of e, used as the
// default column name for a projection with no AS alias.
func exprText(e *cypher.Expr) string {
	if v, ok := asBareVar(e); ok {
		return v
	}
	if agg, ok := asAggregate(e); ok {
		return aggregateText(agg)
	}
	if p := unwrapToPrimary(e); p != nil {
		switch {
		case p.PropAccess != nil:
			return p.PropAccess.Var + "." + p.PropAccess.Key
		case p.Call != nil:
			return p.Call.Name + "(...)"
		case p.Literal != nil:
			return "literal"
		}
	}
	return "expr"
}

func aggregateText(agg *cypher.AggregateCall) string {
	arg := "*"
	if agg.Arg.Expr != nil {
		arg = exprText(agg.Arg.Expr)
	}
	return agg.Func + "(" + arg + ")"
}
