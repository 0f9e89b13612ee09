package lang

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/voxtra/vexpr/vec"
)

// Var describes a variable a Resolver has bound to a bare name.
type Var interface {
	// IsVec reports whether the variable is vector-valued rather than a
	// broadcast scalar.
	IsVec() bool

	// Value returns the variable's current value.
	Value() vec.Vec3
}

// Func describes a function a Resolver has bound to a bare name.
type Func interface {
	// IsScalar reports whether the function's result kind is scalar.
	IsScalar() bool

	// Prepare validates the call site. Implementations must prepare each
	// non-tag argument through p and must skip tag positions.
	Prepare(ctx context.Context, call *Node, p *Prep) error

	// Eval evaluates the call on a prepared tree.
	Eval(ctx context.Context, call *Node, ev *Evaluator) (vec.Vec3, error)
}

// Resolver maps bare names encountered during preparation to concrete
// variable and function descriptors. Not-found is an explicit outcome — the
// false return — never a nil treated as success.
type Resolver interface {
	ResolveVar(name string) (Var, bool)
	ResolveFunc(name string) (Func, bool)
}

// StubResolver is the no-op resolution policy for driving the walker and
// examiner in isolation from a real symbol table: every function name
// resolves to one fixed stand-in, and every variable name is unresolved.
type StubResolver struct{}

// ResolveVar implements Resolver. It never resolves.
func (StubResolver) ResolveVar(string) (Var, bool) { return nil, false }

// ResolveFunc implements Resolver. Every name resolves to the stand-in.
func (StubResolver) ResolveFunc(string) (Func, bool) {
	return stubFunc{}, true
}

// stubFunc is the stand-in function: it accepts any argument arity, prepares
// only non-tag children, reports a scalar result kind, and evaluates to the
// zero vector.
type stubFunc struct{}

func (stubFunc) IsScalar() bool { return true }

func (stubFunc) Prepare(ctx context.Context, call *Node, p *Prep) error {
	for i := range call.Arity() {
		if call.TagChild(i) {
			continue
		}

		err := p.PrepareNode(ctx, call.Child(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func (stubFunc) Eval(context.Context, *Node, *Evaluator) (vec.Vec3, error) {
	return vec.Vec3{}, nil
}

// constVar is a fixed-value variable descriptor.
type constVar struct {
	val   vec.Vec3
	isVec bool
}

func (v constVar) IsVec() bool     { return v.isVec }
func (v constVar) Value() vec.Vec3 { return v.val }

// MapResolver resolves names from explicit maps. Useful for hosts with a
// static symbol table and for tests.
type MapResolver struct {
	Vars  map[string]vec.Vec3
	Funcs map[string]Func
}

// ResolveVar implements Resolver.
func (r MapResolver) ResolveVar(name string) (Var, bool) {
	v, ok := r.Vars[name]
	if !ok {
		return nil, false
	}

	return constVar{val: v, isVec: true}, true
}

// ResolveFunc implements Resolver.
func (r MapResolver) ResolveFunc(name string) (Func, bool) {
	f, ok := r.Funcs[name]

	return f, ok
}

// builtinFunc is one entry of the builtin function library.
type builtinFunc struct {
	name    string
	minArgs int
	maxArgs int
	scalar  bool
	apply   func(args []vec.Vec3) vec.Vec3
}

func (f *builtinFunc) IsScalar() bool { return f.scalar }

// Prepare validates arity and prepares every argument. Builtins take no tag
// arguments.
func (f *builtinFunc) Prepare(ctx context.Context, call *Node, p *Prep) error {
	n := call.Arity()
	if n < f.minArgs || n > f.maxArgs {
		return ErrArgCount.
			With(
				slog.String("function", f.name),
				slog.Int("got", n),
				slog.Int("min", f.minArgs),
				slog.Int("max", f.maxArgs),
			)
	}

	for i := range n {
		if call.TagChild(i) {
			return ErrBadArgument.
				With(
					slog.String("function", f.name),
					slog.Int("arg", i),
					slog.String("reason", "tag argument not accepted"),
				)
		}

		err := p.PrepareNode(ctx, call.Child(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func (f *builtinFunc) Eval(
	ctx context.Context,
	call *Node,
	ev *Evaluator,
) (vec.Vec3, error) {
	args := make([]vec.Vec3, call.Arity())

	for i := range call.Arity() {
		v, err := ev.EvalNode(ctx, call.Child(i))
		if err != nil {
			return vec.Vec3{}, err
		}

		args[i] = v
	}

	return f.apply(args), nil
}

// builtins is the vector function library.
var builtins = map[string]*builtinFunc{
	"vec": {
		name: "vec", minArgs: 3, maxArgs: 3,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.New(a[0][0], a[1][0], a[2][0])
		},
	},
	"dot": {
		name: "dot", minArgs: 2, maxArgs: 2, scalar: true,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.Splat(a[0].Dot(a[1]))
		},
	},
	"cross": {
		name: "cross", minArgs: 2, maxArgs: 2,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return a[0].Cross(a[1])
		},
	},
	"length": {
		name: "length", minArgs: 1, maxArgs: 1, scalar: true,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.Splat(a[0].Length())
		},
	},
	"norm": {
		name: "norm", minArgs: 1, maxArgs: 1,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return a[0].Normalized()
		},
	},
	"angle": {
		name: "angle", minArgs: 2, maxArgs: 2, scalar: true,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.Splat(a[0].Angle(a[1]))
		},
	},
	"rotate": {
		name: "rotate", minArgs: 3, maxArgs: 3,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return a[0].RotateBy(a[1].Normalized(), a[2][0])
		},
	},
	"dist": {
		name: "dist", minArgs: 2, maxArgs: 2, scalar: true,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.Splat(a[0].Sub(a[1]).Length())
		},
	},
	"abs": {
		name: "abs", minArgs: 1, maxArgs: 1,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.New(
				math.Abs(a[0][0]), math.Abs(a[0][1]), math.Abs(a[0][2]),
			)
		},
	},
	"min": {
		name: "min", minArgs: 2, maxArgs: 2,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.New(
				math.Min(a[0][0], a[1][0]),
				math.Min(a[0][1], a[1][1]),
				math.Min(a[0][2], a[1][2]),
			)
		},
	},
	"max": {
		name: "max", minArgs: 2, maxArgs: 2,
		apply: func(a []vec.Vec3) vec.Vec3 {
			return vec.New(
				math.Max(a[0][0], a[1][0]),
				math.Max(a[0][1], a[1][1]),
				math.Max(a[0][2], a[1][2]),
			)
		},
	},
}

// BuiltinResolver resolves the builtin vector function library and no
// variables.
type BuiltinResolver struct{}

// ResolveVar implements Resolver. Builtins define no variables.
func (BuiltinResolver) ResolveVar(string) (Var, bool) { return nil, false }

// ResolveFunc implements Resolver.
func (BuiltinResolver) ResolveFunc(name string) (Func, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}

	return f, true
}

// BuiltinNames returns the sorted names of the builtin function library.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
