package runtime

import (
	"testing"

	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/store"
)

// exprOf parses src as a WHERE predicate and returns its expression tree,
// so tests can exercise Evaluate against real parser output instead of
// hand-built ASTs.
func exprOf(t *testing.T, src string) *cypher.Expr {
	t.Helper()
	q, err := cypher.Parse("MATCH (a) WHERE " + src + " RETURN a")
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return q.Clauses[1].Where.Predicate
}

func TestEvaluateArithmetic(t *testing.T) {
	v, err := Evaluate(exprOf(t, "1 + 2 * 3"), Row{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.I != 7 {
		t.Errorf("1 + 2 * 3 = %v, want 7", v)
	}
}

func TestEvaluateComparisonWithNullIsFalse(t *testing.T) {
	row := Row{"a": ScalarBinding(store.Null())}
	v, err := Evaluate(exprOf(t, "a = 1"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Kind != store.KindBool || v.B != false {
		t.Errorf("comparison against null should be false, got %v", v)
	}
}

func TestEvaluateBooleanOperatorsCoerceNullToFalse(t *testing.T) {
	row := Row{"x": ScalarBinding(store.Null())}
	v, err := Evaluate(exprOf(t, "false AND x"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Kind != store.KindBool || v.B != false {
		t.Errorf("false AND null should be false, got %v", v)
	}

	v, err = Evaluate(exprOf(t, "true AND x"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Kind != store.KindBool || v.B != false {
		t.Errorf("true AND null should be false, got %v", v)
	}

	v, err = Evaluate(exprOf(t, "false OR x"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Kind != store.KindBool || v.B != false {
		t.Errorf("false OR null should be false, got %v", v)
	}
}

func TestEvaluateMalformedRegexIsNullNotError(t *testing.T) {
	row := Row{"s": ScalarBinding(store.Str("hello"))}
	v, err := Evaluate(exprOf(t, "s =~ '('"), row)
	if err != nil {
		t.Fatalf("Evaluate should not error on a malformed regex, got %v", err)
	}
	if !v.IsNull() {
		t.Errorf("malformed regex should evaluate to null, got %v", v)
	}
}

func TestEvaluateStringSearchOperators(t *testing.T) {
	row := Row{"s": ScalarBinding(store.Str("hello world"))}
	for src, want := range map[string]bool{
		"s CONTAINS 'world'":    true,
		"s CONTAINS 'xyz'":      false,
		"s STARTS WITH 'hello'": true,
		"s ENDS WITH 'world'":   true,
		"s ENDS WITH 'hello'":   false,
	} {
		v, err := Evaluate(exprOf(t, src), row)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", src, err)
		}
		if v.B != want {
			t.Errorf("Evaluate(%q) = %v, want %v", src, v.B, want)
		}
	}
}

func TestEvaluateUnboundVariableErrors(t *testing.T) {
	_, err := Evaluate(exprOf(t, "missing = 1"), Row{})
	if err == nil {
		t.Fatal("expected an error for an unbound variable")
	}
	if re, ok := err.(Error); !ok || re.Kind != KindUnboundVariable {
		t.Errorf("expected KindUnboundVariable, got %v", err)
	}
}

func TestEvaluatePropertyAccess(t *testing.T) {
	n := &store.Node{ID: 1, Labels: map[string]struct{}{}, Props: map[string]store.Value{"age": store.Int(30)}}
	row := Row{"p": NodeBinding(n)}
	v, err := Evaluate(exprOf(t, "p.age >= 18"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !v.B {
		t.Error("expected p.age >= 18 to be true")
	}
}
