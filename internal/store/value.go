package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind discriminates the tagged union carried by Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a property value: null, bool, int64, float64, string, a list of
// Value, or a map from string to Value. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind ValueKind
	B    bool
	I    int64
	F    float64
	S    string
	L    []Value
	M    map[string]Value
}

func Null() Value               { return Value{Kind: KindNull} }
func Bool(b bool) Value         { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value         { return Value{Kind: KindInt, I: i} }
func Float(f float64) Value     { return Value{Kind: KindFloat, F: f} }
func Str(s string) Value        { return Value{Kind: KindString, S: s} }
func List(vs []Value) Value     { return Value{Kind: KindList, L: vs} }
func MapVal(m map[string]Value) Value { return Value{Kind: KindMap, M: m} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// AsFloat returns v as a float64, assuming IsNumeric().
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.I)
	}
	return v.F
}

// Clone returns a deep, independent copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindList:
		out := make([]Value, len(v.L))
		for i, e := range v.L {
			out[i] = e.Clone()
		}
		return Value{Kind: KindList, L: out}
	case KindMap:
		out := make(map[string]Value, len(v.M))
		for k, e := range v.M {
			out[k] = e.Clone()
		}
		return Value{Kind: KindMap, M: out}
	default:
		return v
	}
}

// Equal implements Cypher-style equality: same kind compares structurally;
// int and float compare numerically across kinds; anything else (different
// kinds, e.g. string vs number) is not equal.
func (v Value) Equal(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return v.AsFloat() == other.AsFloat()
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.B == other.B
	case KindString:
		return v.S == other.S
	case KindList:
		if len(v.L) != len(other.L) {
			return false
		}
		for i := range v.L {
			if !v.L[i].Equal(other.L[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.M) != len(other.M) {
			return false
		}
		for k, e := range v.M {
			oe, ok := other.M[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less defines an ascending total order used by ORDER BY: null sorts last
// among ascending results, numbers compare numerically, strings
// lexicographically, bools false < true; values of incomparable kinds
// (e.g. list vs map) fall back to comparing their Kind.
func (v Value) Less(other Value) bool {
	if v.Kind == KindNull {
		return false
	}
	if other.Kind == KindNull {
		return true
	}
	if v.IsNumeric() && other.IsNumeric() {
		return v.AsFloat() < other.AsFloat()
	}
	if v.Kind != other.Kind {
		return v.Kind < other.Kind
	}
	switch v.Kind {
	case KindBool:
		return !v.B && other.B
	case KindString:
		return v.S < other.S
	case KindList:
		for i := 0; i < len(v.L) && i < len(other.L); i++ {
			if v.L[i].Equal(other.L[i]) {
				continue
			}
			return v.L[i].Less(other.L[i])
		}
		return len(v.L) < len(other.L)
	default:
		return false
	}
}

// Truthy implements the coercion rules used by WHERE and boolean operators:
// null is false, numbers are truthy when non-zero, strings/lists/maps are
// truthy when non-empty, bools are themselves.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindFloat:
		return v.F != 0
	case KindString:
		return v.S != ""
	case KindList:
		return len(v.L) != 0
	case KindMap:
		return len(v.M) != 0
	default:
		return false
	}
}

// AsString coerces v to a string for use by the string-search operators.
// A null operand reports ok=false so callers can short-circuit to false.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindNull:
		return "", false
	case KindString:
		return v.S, true
	case KindInt:
		return strconv.FormatInt(v.I, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.B), true
	default:
		return "", false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.S)
	case KindList:
		parts := make([]string, len(v.L))
		for i, e := range v.L {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.M))
		for k := range v.M {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.M[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
