package lang

import "testing"

func TestNodeConstructors(t *testing.T) {
	num := NewNumber(2.5)
	if num.Kind() != KindNumber || num.Number() != 2.5 {
		t.Errorf("NewNumber: kind=%v value=%v", num.Kind(), num.Number())
	}

	tag := NewTag("uv")
	if tag.Kind() != KindTag || tag.Tag() != "uv" {
		t.Errorf("NewTag: kind=%v text=%q", tag.Kind(), tag.Tag())
	}

	if tag.Arity() != 0 {
		t.Errorf("tag Arity() = %d, want 0", tag.Arity())
	}

	v := NewVar("x")
	if v.Kind() != KindVar || v.Name() != "x" {
		t.Errorf("NewVar: kind=%v name=%q", v.Kind(), v.Name())
	}
}

func TestCallTagMarks(t *testing.T) {
	call := NewCall("f", NewVar("x"), NewTag("mode"), NewNumber(1))

	if call.Arity() != 3 {
		t.Fatalf("Arity() = %d, want 3", call.Arity())
	}

	want := []bool{false, true, false}
	for i, w := range want {
		if call.TagChild(i) != w {
			t.Errorf("TagChild(%d) = %v, want %v", i, call.TagChild(i), w)
		}
	}
}

func TestZeroArgCall(t *testing.T) {
	call := NewCall("now")

	if call.Arity() != 0 {
		t.Errorf("Arity() = %d, want 0", call.Arity())
	}
}

func TestNodeString(t *testing.T) {
	cases := []struct {
		node *Node
		want string
	}{
		{NewNumber(1), "1"},
		{NewNumber(2.5), "2.5"},
		{NewTag("uv"), `"uv"`},
		{NewVar("x"), "x"},
		{NewCall("f", NewVar("x"), NewTag("t")), `f(x, "t")`},
		{NewOp("-", NewVar("x")), "(-x)"},
		{NewOp("+", NewVar("x"), NewNumber(1)), "(x + 1)"},
		{
			NewOp("?:", NewVar("c"), NewNumber(1), NewNumber(2)),
			"(c ? 1 : 2)",
		},
	}

	for _, c := range cases {
		if got := c.node.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNumber: "Number",
		KindTag:    "Tag",
		KindVar:    "Var",
		KindCall:   "Call",
		KindOp:     "Op",
		Kind(99):   "Unknown",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
