package lang

import (
	"strings"
	"testing"
)

func collectUsage(t *testing.T, root *Node) *UsageExaminer {
	t.Helper()

	var x UsageExaminer

	if err := (Walker{}).Walk(root, &x); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	return &x
}

func TestUsageCallWithTagArgument(t *testing.T) {
	root := NewCall("f", NewVar("x"), NewTag("mode"))

	x := collectUsage(t, root)

	if x.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", x.Len())
	}

	call := x.Spec(0)
	if call.Kind != UsageCall || call.Name != "f" {
		t.Errorf("Spec(0) = %+v, want call to f", call)
	}

	if call.Args != 2 || call.Tags != 1 {
		t.Errorf("Args=%d Tags=%d, want 2 and 1", call.Args, call.Tags)
	}

	wantSeen := []string{"var", "tag"}
	for i, w := range wantSeen {
		if call.Seen[i] != w {
			t.Errorf("Seen[%d] = %q, want %q", i, call.Seen[i], w)
		}
	}

	ref := x.Spec(1)
	if ref.Kind != UsageVar || ref.Name != "x" {
		t.Errorf("Spec(1) = %+v, want reference to x", ref)
	}
}

func TestUsageZeroArgCall(t *testing.T) {
	x := collectUsage(t, NewCall("now"))

	if x.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", x.Len())
	}

	spec := x.Spec(0)
	if spec.Kind != UsageCall || spec.Args != 0 || spec.Tags != 0 {
		t.Errorf("Spec(0) = %+v, want zero-arg call", spec)
	}
}

func TestUsageNestedCallsOuterToInner(t *testing.T) {
	// g(h(x)) emits g, h, then x.
	root := NewCall("g", NewCall("h", NewVar("x")))

	x := collectUsage(t, root)

	wantNames := []string{"g", "h", "x"}
	if x.Len() != len(wantNames) {
		t.Fatalf("Len() = %d, want %d", x.Len(), len(wantNames))
	}

	for i, name := range wantNames {
		if got := x.Spec(i).Name; got != name {
			t.Errorf("Spec(%d).Name = %q, want %q", i, got, name)
		}
	}
}

func TestUsageChainDepth(t *testing.T) {
	// A chain of D nested single-argument calls yields D call specs in
	// outer-to-inner order, then the innermost variable.
	const depth = 8

	root := NewVar("x")
	for i := depth; i > 0; i-- {
		root = NewCall("f", root)
	}

	x := collectUsage(t, root)

	if x.Len() != depth+1 {
		t.Fatalf("Len() = %d, want %d", x.Len(), depth+1)
	}

	for i := range depth {
		if spec := x.Spec(i); spec.Kind != UsageCall {
			t.Errorf("Spec(%d).Kind = %v, want UsageCall", i, spec.Kind)
		}
	}

	if last := x.Spec(depth); last.Kind != UsageVar {
		t.Errorf("Spec(%d).Kind = %v, want UsageVar", depth, last.Kind)
	}
}

func TestUsageIgnoresLiteralsAndOps(t *testing.T) {
	root := NewOp("+", NewNumber(1), NewNumber(2))

	x := collectUsage(t, root)

	if x.Len() != 0 {
		t.Errorf("Len() = %d, want 0", x.Len())
	}
}

func TestUsageSpecOutOfRangePanics(t *testing.T) {
	x := collectUsage(t, NewVar("x"))

	defer func() {
		if recover() == nil {
			t.Error("Spec out-of-range did not panic")
		}
	}()

	_ = x.Spec(1)
}

func TestUsageAllStopsEarly(t *testing.T) {
	root := NewCall("f", NewVar("a"), NewVar("b"))

	x := collectUsage(t, root)

	count := 0
	for range x.All() {
		count++

		break
	}

	if count != 1 {
		t.Errorf("early break yielded %d specs, want 1", count)
	}
}

func TestUsageString(t *testing.T) {
	cases := []struct {
		usage Usage
		want  string
	}{
		{
			Usage{Kind: UsageVar, Name: "x"},
			`variable "x" referenced`,
		},
		{
			Usage{
				Kind: UsageCall, Name: "f",
				Args: 2, Tags: 1, Seen: []string{"var", "tag"},
			},
			`function "f" called with 2 args (1 tag) [var,tag]`,
		},
		{
			Usage{Kind: UsageCall, Name: "now"},
			`function "now" called with 0 args`,
		},
		{
			Usage{Kind: UsageCall, Name: "g", Args: 1, Seen: []string{"number"}},
			`function "g" called with 1 arg [number]`,
		},
	}

	for _, c := range cases {
		if got := c.usage.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}

	if !strings.Contains(UsageCall.String(), "call") {
		t.Errorf("UsageCall.String() = %q", UsageCall.String())
	}
}
