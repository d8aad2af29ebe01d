package runtime

import (
	"regexp"
	"strings"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/store"
)

// Evaluate computes the value of expr against row's current bindings,
// implementing the comparison, logic, arithmetic, and string-search
// coercion rules of spec §4.3.
func Evaluate(expr *cypher.Expr, row Row) (store.Value, error) {
	return evalOr(expr.Or, row)
}

func evalOr(e *cypher.OrExpr, row Row) (store.Value, error) {
	left, err := evalAnd(e.Left, row)
	if err != nil {
		return store.Null(), err
	}
	for _, rhs := range e.Rest {
		right, err := evalAnd(rhs, row)
		if err != nil {
			return store.Null(), err
		}
		left = boolOr(left, right)
	}
	return left, nil
}

func evalAnd(e *cypher.AndExpr, row Row) (store.Value, error) {
	left, err := evalNot(e.Left, row)
	if err != nil {
		return store.Null(), err
	}
	for _, rhs := range e.Rest {
		right, err := evalNot(rhs, row)
		if err != nil {
			return store.Null(), err
		}
		left = boolAnd(left, right)
	}
	return left, nil
}

func evalNot(e *cypher.NotExpr, row Row) (store.Value, error) {
	if e.Negated != nil {
		v, err := evalNot(e.Negated, row)
		if err != nil {
			return store.Null(), err
		}
		return boolNot(v), nil
	}
	return evalComparison(e.Base, row)
}

func evalComparison(e *cypher.Comparison, row Row) (store.Value, error) {
	left, err := evalAdditive(e.Left, row)
	if err != nil {
		return store.Null(), err
	}
	if e.Tail == nil {
		return left, nil
	}
	right, err := evalAdditive(e.Tail.Right, row)
	if err != nil {
		return store.Null(), err
	}
	return applyComparison(e.Tail.Op, left, right)
}

func applyComparison(op *cypher.ComparisonOp, left, right store.Value) (store.Value, error) {
	switch {
	case op.Eq:
		return boolOrNull(left, right, func() bool { return left.Equal(right) }), nil
	case op.Neq:
		return boolOrNull(left, right, func() bool { return !left.Equal(right) }), nil
	case op.Lt:
		return boolOrNull(left, right, func() bool { return orderable(left, right) && left.Less(right) }), nil
	case op.Le:
		return boolOrNull(left, right, func() bool { return orderable(left, right) && (left.Less(right) || left.Equal(right)) }), nil
	case op.Gt:
		return boolOrNull(left, right, func() bool { return orderable(left, right) && right.Less(left) }), nil
	case op.Ge:
		return boolOrNull(left, right, func() bool { return orderable(left, right) && (right.Less(left) || left.Equal(right)) }), nil
	case op.Contains:
		return stringOp(left, right, strings.Contains), nil
	case op.StartsWith:
		return stringOp(left, right, strings.HasPrefix), nil
	case op.EndsWith:
		return stringOp(left, right, strings.HasSuffix), nil
	case op.Regex:
		return regexOp(left, right), nil
	default:
		return store.Null(), Error{Kind: KindUnexpectedNode, Message: "comparison operator has no operation set"}
	}
}

// boolOrNull evaluates a comparison, treating either side being null as
// spec §4.3's two-valued false rather than propagating an "unknown".
func boolOrNull(left, right store.Value, cmp func() bool) store.Value {
	if left.IsNull() || right.IsNull() {
		return store.Bool(false)
	}
	return store.Bool(cmp())
}

// orderable reports whether <, <=, > and >= can rank left against right:
// two numbers, or two values of the same kind. Anything else (e.g. a
// string against a number) compares false.
func orderable(left, right store.Value) bool {
	return (left.IsNumeric() && right.IsNumeric()) || left.Kind == right.Kind
}

func stringOp(left, right store.Value, op func(s, substr string) bool) store.Value {
	ls, ok1 := left.AsString()
	rs, ok2 := right.AsString()
	if !ok1 || !ok2 {
		return store.Bool(false)
	}
	return store.Bool(op(ls, rs))
}

func regexOp(left, right store.Value) store.Value {
	ls, ok1 := left.AsString()
	rs, ok2 := right.AsString()
	if !ok1 || !ok2 {
		return store.Bool(false)
	}
	matched, err := regexp.MatchString(rs, ls)
	if err != nil {
		// A malformed pattern filters the row rather than aborting the
		// query (spec §8 boundary behaviour).
		return store.Null()
	}
	return store.Bool(matched)
}

func evalAdditive(e *cypher.Additive, row Row) (store.Value, error) {
	left, err := evalMultiplicative(e.Left, row)
	if err != nil {
		return store.Null(), err
	}
	for _, op := range e.Ops {
		right, err := evalMultiplicative(op.Right, row)
		if err != nil {
			return store.Null(), err
		}
		if op.Plus {
			left = addValues(left, right)
		} else {
			left = subValues(left, right)
		}
	}
	return left, nil
}

func addValues(left, right store.Value) store.Value {
	if left.IsNull() || right.IsNull() {
		return store.Null()
	}
	if left.Kind == store.KindString || right.Kind == store.KindString {
		ls, ok1 := left.AsString()
		rs, ok2 := right.AsString()
		if ok1 && ok2 {
			return store.Str(ls + rs)
		}
		return store.Null()
	}
	if left.Kind == store.KindList && right.Kind == store.KindList {
		return store.List(append(append([]store.Value{}, left.L...), right.L...))
	}
	if !left.IsNumeric() || !right.IsNumeric() {
		return store.Null()
	}
	if left.Kind == store.KindInt && right.Kind == store.KindInt {
		return store.Int(left.I + right.I)
	}
	return store.Float(left.AsFloat() + right.AsFloat())
}

func subValues(left, right store.Value) store.Value {
	if !left.IsNumeric() || !right.IsNumeric() {
		return store.Null()
	}
	if left.Kind == store.KindInt && right.Kind == store.KindInt {
		return store.Int(left.I - right.I)
	}
	return store.Float(left.AsFloat() - right.AsFloat())
}

func evalMultiplicative(e *cypher.Multiplicative, row Row) (store.Value, error) {
	left, err := evalUnary(e.Left, row)
	if err != nil {
		return store.Null(), err
	}
	for _, op := range e.Ops {
		right, err := evalUnary(op.Right, row)
		if err != nil {
			return store.Null(), err
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			left = store.Null()
			continue
		}
		if op.Star {
			if left.Kind == store.KindInt && right.Kind == store.KindInt {
				left = store.Int(left.I * right.I)
			} else {
				left = store.Float(left.AsFloat() * right.AsFloat())
			}
		} else {
			if right.AsFloat() == 0 {
				left = store.Null()
				continue
			}
			if left.Kind == store.KindInt && right.Kind == store.KindInt && left.I%right.I == 0 {
				left = store.Int(left.I / right.I)
			} else {
				left = store.Float(left.AsFloat() / right.AsFloat())
			}
		}
	}
	return left, nil
}

func evalUnary(e *cypher.Unary, row Row) (store.Value, error) {
	v, err := evalPrimary(e.Primary, row)
	if err != nil {
		return store.Null(), err
	}
	if !e.Neg {
		return v, nil
	}
	if !v.IsNumeric() {
		return store.Null(), nil
	}
	if v.Kind == store.KindInt {
		return store.Int(-v.I), nil
	}
	return store.Float(-v.F), nil
}

func evalPrimary(e *cypher.Primary, row Row) (store.Value, error) {
	switch {
	case e.Aggregate != nil:
		return store.Null(), Error{Kind: KindUnexpectedNode, Message: "aggregate function is only valid as a top-level projection"}
	case e.Call != nil:
		return evalCall(e.Call, row)
	case e.PropAccess != nil:
		b, ok := row[e.PropAccess.Var]
		if !ok {
			return store.Null(), Error{Kind: KindUnboundVariable, Message: "variable " + e.PropAccess.Var + " is not bound"}
		}
		return b.Property(e.PropAccess.Key), nil
	case e.Var != nil:
		b, ok := row[*e.Var]
		if !ok {
			return store.Null(), Error{Kind: KindUnboundVariable, Message: "variable " + *e.Var + " is not bound"}
		}
		return b.AsValue(), nil
	case e.Literal != nil:
		return evalLiteral(e.Literal, row)
	case e.Paren != nil:
		return Evaluate(e.Paren, row)
	default:
		return store.Null(), Error{Kind: KindUnexpectedNode, Message: "empty primary expression"}
	}
}

func evalLiteral(l *cypher.Literal, row Row) (store.Value, error) {
	switch {
	case l.Null:
		return store.Null(), nil
	case l.True:
		return store.Bool(true), nil
	case l.False:
		return store.Bool(false), nil
	case l.Str != nil:
		return store.Str(unquote(*l.Str)), nil
	case l.Float != nil:
		return store.Float(*l.Float), nil
	case l.Int != nil:
		return store.Int(*l.Int), nil
	case l.List != nil:
		items := make([]store.Value, len(l.List.Items))
		for i, it := range l.List.Items {
			v, err := Evaluate(it, row)
			if err != nil {
				return store.Null(), err
			}
			items[i] = v
		}
		return store.List(items), nil
	case l.Map != nil:
		m := make(map[string]store.Value, len(l.Map.Entries))
		for _, entry := range l.Map.Entries {
			v, err := Evaluate(entry.Value, row)
			if err != nil {
				return store.Null(), err
			}
			m[entry.Key] = v
		}
		return store.MapVal(m), nil
	default:
		return store.Null(), Error{Kind: KindUnexpectedNode, Message: "empty literal"}
	}
}

// unquote strips the surrounding quote characters the lexer preserved;
// string literals are matched whole (including quotes) by the String
// token so that both single- and double-quoted strings share one rule.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\'`, `'`)
	inner = strings.ReplaceAll(inner, `\\`, `\`)
	return inner
}

// boolAnd, boolOr, and boolNot implement spec §4.3's Boolean operators:
// plain two-valued logic, with null coerced to false rather than
// propagated as an "unknown" third state.
func boolAnd(left, right store.Value) store.Value {
	return store.Bool(left.Truthy() && right.Truthy())
}

func boolOr(left, right store.Value) store.Value {
	return store.Bool(left.Truthy() || right.Truthy())
}

func boolNot(v store.Value) store.Value {
	return store.Bool(!v.Truthy())
}
