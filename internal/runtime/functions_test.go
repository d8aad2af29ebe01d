package runtime

import (
	"testing"

	"github.com/ritamzico/graphdb/internal/store"
)

func TestFunctionsStringFamily(t *testing.T) {
	row := Row{"s": ScalarBinding(store.Str("  Hello  "))}
	cases := map[string]string{
		"UPPER(s)":   `"  HELLO  "`,
		"TRIM(s)":    `"Hello"`,
		"REVERSE(s)": `"  olleH  "`,
	}
	for src, want := range cases {
		v, err := Evaluate(exprOf(t, src), row)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", src, err)
		}
		if v.String() != want {
			t.Errorf("Evaluate(%q) = %s, want %s", src, v.String(), want)
		}
	}
}

func TestFunctionsLengthAndSubstring(t *testing.T) {
	row := Row{"s": ScalarBinding(store.Str("graphdb"))}
	v, err := Evaluate(exprOf(t, "LENGTH(s)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.I != 7 {
		t.Errorf("LENGTH(s) = %v, want 7", v)
	}

	v, err = Evaluate(exprOf(t, "SUBSTRING(s, 0, 5)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.S != "graph" {
		t.Errorf("SUBSTRING(s, 0, 5) = %q, want %q", v.S, "graph")
	}
}

func TestFunctionsNumeric(t *testing.T) {
	row := Row{"n": ScalarBinding(store.Float(-3.7))}
	v, err := Evaluate(exprOf(t, "CEIL(n)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.F != -3 {
		t.Errorf("CEIL(-3.7) = %v, want -3", v)
	}
}

func TestFunctionsUnknownNameErrors(t *testing.T) {
	_, err := Evaluate(exprOf(t, "NOSUCHFN(1)"), Row{})
	if err == nil {
		t.Fatal("expected an error for an unknown function")
	}
	if re, ok := err.(Error); !ok || re.Kind != KindUnknownFunction {
		t.Errorf("expected KindUnknownFunction, got %v", err)
	}
}

func TestFunctionsNodeIntrospection(t *testing.T) {
	n := &store.Node{
		ID:     7,
		Labels: map[string]struct{}{"Person": {}},
		Props:  map[string]store.Value{"name": store.Str("Ada")},
	}
	row := Row{"p": NodeBinding(n)}

	v, err := Evaluate(exprOf(t, "ID(p)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.I != 7 {
		t.Errorf("ID(p) = %v, want 7", v)
	}

	v, err = Evaluate(exprOf(t, "LABELS(p)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(v.L) != 1 || v.L[0].S != "Person" {
		t.Errorf("LABELS(p) = %v, want [Person]", v)
	}

	v, err = Evaluate(exprOf(t, "KEYS(p)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(v.L) != 1 || v.L[0].S != "name" {
		t.Errorf("KEYS(p) = %v, want [name]", v)
	}
}

func TestFunctionsTypeOfEdge(t *testing.T) {
	e := &store.Edge{ID: 1, Type: "KNOWS"}
	row := Row{"r": EdgeBinding(e)}
	v, err := Evaluate(exprOf(t, "TYPE(r)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.S != "KNOWS" {
		t.Errorf("TYPE(r) = %q, want KNOWS", v.S)
	}
}

func TestFunctionsCoalesce(t *testing.T) {
	row := Row{"a": ScalarBinding(store.Null()), "b": ScalarBinding(store.Int(5))}
	v, err := Evaluate(exprOf(t, "COALESCE(a, b)"), row)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.I != 5 {
		t.Errorf("COALESCE(a, b) = %v, want 5", v)
	}
}
