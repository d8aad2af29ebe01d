package store

import "testing"

func TestValueEqualCrossesNumericKinds(t *testing.T) {
	if !Int(3).Equal(Float(3.0)) {
		t.Error("Int(3) should equal Float(3.0)")
	}
	if Str("3").Equal(Int(3)) {
		t.Error("a string should never equal a number")
	}
}

func TestValueLessSortsNullLast(t *testing.T) {
	if Null().Less(Int(1)) {
		t.Error("null should never compare less than a value")
	}
	if !Int(1).Less(Null()) {
		t.Error("every non-null value should compare less than null so null sorts last")
	}
	if Null().Less(Null()) {
		t.Error("null should not compare less than itself")
	}
}

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Bool(false), false},
		{Int(0), false},
		{Int(1), true},
		{Str(""), false},
		{Str("x"), true},
		{List(nil), false},
		{List([]Value{Int(1)}), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestValueCloneIsIndependent(t *testing.T) {
	orig := List([]Value{Int(1), Str("a")})
	clone := orig.Clone()
	clone.L[0] = Int(99)
	if orig.L[0].I != 1 {
		t.Error("mutating a clone's list must not affect the original")
	}
}
