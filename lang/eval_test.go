package lang

import (
	"context"
	"testing"

	"github.com/voxtra/vexpr/vec"
)

func evalWith(
	t *testing.T,
	input string,
	r Resolver,
	opts ...Option,
) vec.Vec3 {
	t.Helper()

	ctx := context.Background()

	tree := mustParse(t, input, opts...)

	if err := tree.Prepare(ctx, r); err != nil {
		t.Fatalf("Prepare(%q): %v", input, err)
	}

	got, err := tree.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval(%q): %v", input, err)
	}

	return got
}

func TestEvalArithmeticBroadcast(t *testing.T) {
	cases := []struct {
		input string
		want  vec.Vec3
	}{
		{"1 + 2 * 3", vec.Splat(7)},
		{"10 / 4", vec.Splat(2.5)},
		{"7 % 3", vec.Splat(1)},
		{"2 ^ 3", vec.Splat(8)},
		{"2 ** 3", vec.Splat(8)},
		{"-3", vec.Splat(-3)},
	}

	for _, c := range cases {
		if got := evalWith(t, c.input, BuiltinResolver{}); got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestEvalComponentwiseArithmetic(t *testing.T) {
	got := evalWith(t, "vec(1, 2, 3) + vec(10, 20, 30)", BuiltinResolver{})
	if got != vec.New(11, 22, 33) {
		t.Errorf("vector sum = %v, want (11,22,33)", got)
	}

	got = evalWith(t, "vec(1, 2, 3) * 2", BuiltinResolver{})
	if got != vec.New(2, 4, 6) {
		t.Errorf("scalar broadcast product = %v, want (2,4,6)", got)
	}
}

func TestEvalComparisons(t *testing.T) {
	cases := []struct {
		input string
		want  vec.Vec3
	}{
		// Ordered comparisons read component 0 only.
		{"1 < 2", vec.Splat(1)},
		{"2 < 1", vec.Vec3{}},
		{"2 >= 2", vec.Splat(1)},
		{"vec(1, 9, 9) > vec(2, 0, 0)", vec.Vec3{}},
		// Equality compares all three components.
		{"vec(1, 2, 3) == vec(1, 2, 3)", vec.Splat(1)},
		{"vec(1, 2, 3) == vec(1, 9, 9)", vec.Vec3{}},
		{"vec(1, 2, 3) != vec(1, 2, 4)", vec.Splat(1)},
		{"vec(1, 2, 3) != vec(1, 2, 3)", vec.Vec3{}},
	}

	for _, c := range cases {
		if got := evalWith(t, c.input, BuiltinResolver{}); got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestEvalLogicalShortCircuit(t *testing.T) {
	// The right operand calls an unknown function, so reaching it would
	// have failed preparation; short-circuiting is purely an eval concern.
	// Use stub resolution so preparation succeeds, then exercise both
	// short-circuit paths.
	cases := []struct {
		input string
		want  vec.Vec3
	}{
		{"0 && f(x)", vec.Vec3{}},
		{"1 || f(x)", vec.Splat(1)},
		{"1 && 2", vec.Splat(1)},
		{"0 || 0", vec.Vec3{}},
		{"!0", vec.Splat(1)},
		{"!5", vec.Vec3{}},
	}

	for _, c := range cases {
		got := evalWith(t, c.input, StubResolver{}, WithImplicitVars(true))
		if got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestEvalConditional(t *testing.T) {
	cases := []struct {
		input string
		want  vec.Vec3
	}{
		{"1 < 2 ? 10 : 20", vec.Splat(10)},
		{"2 < 1 ? 10 : 20", vec.Splat(20)},
	}

	for _, c := range cases {
		if got := evalWith(t, c.input, BuiltinResolver{}); got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestEvalResolvedVariable(t *testing.T) {
	resolver := MapResolver{
		Vars: map[string]vec.Vec3{"p": vec.New(1, 2, 3)},
	}

	got := evalWith(t, "p * 2", resolver)
	if got != vec.New(2, 4, 6) {
		t.Errorf("Eval(p * 2) = %v, want (2,4,6)", got)
	}
}

func TestEvalImplicitVariableIsZero(t *testing.T) {
	got := evalWith(t, "x + 5", BuiltinResolver{}, WithImplicitVars(true))
	if got != vec.Splat(5) {
		t.Errorf("Eval(x + 5) = %v, want (5,5,5)", got)
	}
}

func TestEvalStubEndToEnd(t *testing.T) {
	// Probing an expression against the stub: the call validates, the
	// undefined variable is an implicit external, evaluation yields the
	// zero vector, and the usage report lists the call then the variable.
	ctx := context.Background()

	tree := mustParse(t, `f(x, "tag")`, WithImplicitVars(true))

	if err := tree.Prepare(ctx, StubResolver{}); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	got, err := tree.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if got != (vec.Vec3{}) {
		t.Errorf("Eval = %v, want zero vector", got)
	}

	usage, err := tree.Usage()
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}

	if usage.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", usage.Len())
	}

	call := usage.Spec(0)
	if call.Kind != UsageCall || call.Name != "f" ||
		call.Args != 2 || call.Tags != 1 {
		t.Errorf("Spec(0) = %+v, want f called with 2 args (1 tag)", call)
	}

	ref := usage.Spec(1)
	if ref.Kind != UsageVar || ref.Name != "x" {
		t.Errorf("Spec(1) = %+v, want reference to x", ref)
	}
}

func TestEvalNestedBuiltins(t *testing.T) {
	got := evalWith(
		t,
		"length(cross(vec(2, 0, 0), vec(0, 3, 0)))",
		BuiltinResolver{},
	)
	if got != vec.Splat(6) {
		t.Errorf("Eval = %v, want (6,6,6)", got)
	}
}
