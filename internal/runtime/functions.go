package runtime

import (
	"math"
	"strings"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/store"
)

func evalCall(call *cypher.CallExpr, row Row) (store.Value, error) {
	args := make([]store.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := Evaluate(a, row)
		if err != nil {
			return store.Null(), err
		}
		args[i] = v
	}

	name := strings.ToUpper(call.Name)
	switch name {
	case "TYPE", "LABELS", "KEYS", "ID":
		if len(args) != 1 {
			return store.Null(), Error{Kind: KindArgumentError, Message: name + " takes exactly one argument"}
		}
	}
	switch name {
	case "COALESCE":
		for _, a := range args {
			if !a.IsNull() {
				return a, nil
			}
		}
		return store.Null(), nil
	case "UPPER":
		return stringFn(name, args, strings.ToUpper)
	case "LOWER":
		return stringFn(name, args, strings.ToLower)
	case "TRIM":
		return stringFn(name, args, strings.TrimSpace)
	case "LTRIM":
		return stringFn(name, args, func(s string) string { return strings.TrimLeft(s, " \t\n\r") })
	case "RTRIM":
		return stringFn(name, args, func(s string) string { return strings.TrimRight(s, " \t\n\r") })
	case "REVERSE":
		return stringFn(name, args, reverseString)
	case "LENGTH":
		return lengthFn(args)
	case "SUBSTRING":
		return substringFn(args)
	case "REPLACE":
		return replaceFn(args)
	case "SPLIT":
		return splitFn(args)
	case "TYPE":
		return typeFn(call, row)
	case "LABELS":
		return labelsFn(call, row)
	case "KEYS":
		return keysFn(call, row)
	case "ID":
		return idFn(call, row)
	case "ABS":
		return numericFn(name, args, math.Abs)
	case "CEIL":
		return numericFn(name, args, math.Ceil)
	case "FLOOR":
		return numericFn(name, args, math.Floor)
	case "ROUND":
		return numericFn(name, args, math.Round)
	case "SIGN":
		return numericFn(name, args, func(f float64) float64 {
			switch {
			case f > 0:
				return 1
			case f < 0:
				return -1
			default:
				return 0
			}
		})
	default:
		return store.Null(), Error{Kind: KindUnknownFunction, Message: "unknown function " + call.Name}
	}
}

func stringFn(name string, args []store.Value, fn func(string) string) (store.Value, error) {
	if len(args) != 1 {
		return store.Null(), Error{Kind: KindArgumentError, Message: name + " takes exactly one argument"}
	}
	s, ok := args[0].AsString()
	if !ok {
		return store.Null(), nil
	}
	return store.Str(fn(s)), nil
}

func numericFn(name string, args []store.Value, fn func(float64) float64) (store.Value, error) {
	if len(args) != 1 {
		return store.Null(), Error{Kind: KindArgumentError, Message: name + " takes exactly one argument"}
	}
	if !args[0].IsNumeric() {
		return store.Null(), nil
	}
	result := fn(args[0].AsFloat())
	if args[0].Kind == store.KindInt && (name == "CEIL" || name == "FLOOR" || name == "ROUND" || name == "SIGN" || name == "ABS") {
		return store.Int(int64(result)), nil
	}
	return store.Float(result), nil
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func lengthFn(args []store.Value) (store.Value, error) {
	if len(args) != 1 {
		return store.Null(), Error{Kind: KindArgumentError, Message: "LENGTH takes exactly one argument"}
	}
	switch args[0].Kind {
	case store.KindString:
		return store.Int(int64(len([]rune(args[0].S)))), nil
	case store.KindList:
		return store.Int(int64(len(args[0].L))), nil
	default:
		return store.Null(), nil
	}
}

func substringFn(args []store.Value) (store.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return store.Null(), Error{Kind: KindArgumentError, Message: "SUBSTRING takes two or three arguments"}
	}
	s, ok := args[0].AsString()
	if !ok || !args[1].IsNumeric() {
		return store.Null(), nil
	}
	r := []rune(s)
	start := int(args[1].AsFloat())
	if start < 0 {
		start = 0
	}
	if start > len(r) {
		start = len(r)
	}
	end := len(r)
	if len(args) == 3 {
		if !args[2].IsNumeric() {
			return store.Null(), nil
		}
		length := int(args[2].AsFloat())
		if start+length < end {
			end = start + length
		}
	}
	return store.Str(string(r[start:end])), nil
}

func replaceFn(args []store.Value) (store.Value, error) {
	if len(args) != 3 {
		return store.Null(), Error{Kind: KindArgumentError, Message: "REPLACE takes exactly three arguments"}
	}
	s, ok1 := args[0].AsString()
	old, ok2 := args[1].AsString()
	repl, ok3 := args[2].AsString()
	if !ok1 || !ok2 || !ok3 {
		return store.Null(), nil
	}
	return store.Str(strings.ReplaceAll(s, old, repl)), nil
}

func splitFn(args []store.Value) (store.Value, error) {
	if len(args) != 2 {
		return store.Null(), Error{Kind: KindArgumentError, Message: "SPLIT takes exactly two arguments"}
	}
	s, ok1 := args[0].AsString()
	sep, ok2 := args[1].AsString()
	if !ok1 || !ok2 {
		return store.Null(), nil
	}
	parts := strings.Split(s, sep)
	out := make([]store.Value, len(parts))
	for i, p := range parts {
		out[i] = store.Str(p)
	}
	return store.List(out), nil
}

// TYPE/LABELS/KEYS/ID inspect the binding behind a bare variable argument
// directly, rather than its coerced scalar value, since that's the only
// way to recover a node's labels or an edge's relationship type.
func soleVarBinding(call *cypher.CallExpr, row Row) (Binding, bool) {
	if len(call.Args) != 1 {
		return Binding{}, false
	}
	or := call.Args[0].Or
	if len(or.Rest) != 0 || len(or.Left.Rest) != 0 {
		return Binding{}, false
	}
	not := or.Left.Left
	if not.Negated != nil {
		return Binding{}, false
	}
	comp := not.Base
	if comp == nil || comp.Tail != nil {
		return Binding{}, false
	}
	additive := comp.Left
	if len(additive.Ops) != 0 {
		return Binding{}, false
	}
	mul := additive.Left
	if len(mul.Ops) != 0 {
		return Binding{}, false
	}
	unary := mul.Left
	if unary.Neg || unary.Primary.Var == nil {
		return Binding{}, false
	}
	b, ok := row[*unary.Primary.Var]
	return b, ok
}

func typeFn(call *cypher.CallExpr, row Row) (store.Value, error) {
	b, ok := soleVarBinding(call, row)
	if !ok || b.Kind != BindEdge {
		return store.Null(), nil
	}
	return store.Str(b.Edge.Type), nil
}

func labelsFn(call *cypher.CallExpr, row Row) (store.Value, error) {
	b, ok := soleVarBinding(call, row)
	if !ok || b.Kind != BindNode {
		return store.Null(), nil
	}
	labels := b.Node.LabelList()
	out := make([]store.Value, len(labels))
	for i, l := range labels {
		out[i] = store.Str(l)
	}
	return store.List(out), nil
}

func keysFn(call *cypher.CallExpr, row Row) (store.Value, error) {
	b, ok := soleVarBinding(call, row)
	if !ok {
		return store.Null(), nil
	}
	var keys []string
	switch b.Kind {
	case BindNode:
		keys = b.Node.PropertyKeys()
	case BindEdge:
		keys = b.Edge.PropertyKeys()
	default:
		return store.Null(), nil
	}
	out := make([]store.Value, len(keys))
	for i, k := range keys {
		out[i] = store.Str(k)
	}
	return store.List(out), nil
}

func idFn(call *cypher.CallExpr, row Row) (store.Value, error) {
	b, ok := soleVarBinding(call, row)
	if !ok {
		return store.Null(), nil
	}
	switch b.Kind {
	case BindNode:
		return store.Int(int64(b.Node.ID)), nil
	case BindEdge:
		return store.Int(int64(b.Edge.ID)), nil
	default:
		return store.Null(), nil
	}
}
