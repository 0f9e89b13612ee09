package lang

import (
	"context"
	"log/slog"
	"math"

	"github.com/voxtra/vexpr/vec"
)

// Evaluator carries the state of one evaluation pass. Func implementations
// use it to evaluate their arguments.
type Evaluator struct {
	tree  *Tree
	depth int
}

// Eval evaluates a prepared tree to its vector value.
//
// Numeric literals broadcast across all three components. Arithmetic
// operators are componentwise; comparisons and logical operators read
// component 0 and broadcast 0 or 1; a conditional tests component 0 of its
// condition. Calls dispatch through the descriptors bound by Prepare.
func (t *Tree) Eval(ctx context.Context) (vec.Vec3, error) {
	if t.funcs == nil {
		return vec.Vec3{}, ErrNotPrepared
	}

	t.logger.TraceContext(ctx, "eval start")

	ev := &Evaluator{tree: t}

	return ev.EvalNode(ctx, t.Root)
}

// EvalNode evaluates a single node of the prepared tree.
func (ev *Evaluator) EvalNode(
	ctx context.Context,
	n *Node,
) (vec.Vec3, error) {
	if n == nil {
		return vec.Vec3{}, ErrInvalidNode.
			With(slog.String("reason", "nil node"))
	}

	if ev.depth >= ev.tree.opts.maxDepth {
		return vec.Vec3{}, ErrMaxDepthExceeded.
			With(slog.Int("depth", ev.depth))
	}

	ev.depth++
	defer func() { ev.depth-- }()

	switch n.Kind() {
	case KindNumber:
		return vec.Splat(n.Number()), nil

	case KindVar:
		return ev.evalVar(n)

	case KindCall:
		f, ok := ev.tree.funcs[n]
		if !ok {
			return vec.Vec3{}, ErrNotPrepared.
				With(slog.String("function", n.Name()))
		}

		return f.Eval(ctx, n, ev)

	case KindOp:
		return ev.evalOp(ctx, n)

	case KindTag:
		return vec.Vec3{}, ErrTagOutsideCall.
			With(slog.String("literal", n.Tag()))

	default:
		return vec.Vec3{}, ErrInvalidNode.
			With(slog.String("kind", n.Kind().String()))
	}
}

func (ev *Evaluator) evalVar(n *Node) (vec.Vec3, error) {
	if v, ok := ev.tree.vars[n]; ok {
		return v.Value(), nil
	}

	// Implicit externals are bound to the zero vector.
	if _, ok := ev.tree.implicit[n.Name()]; ok {
		return vec.Vec3{}, nil
	}

	return vec.Vec3{}, ErrNotPrepared.
		With(slog.String("variable", n.Name()))
}

func (ev *Evaluator) evalOp(ctx context.Context, n *Node) (vec.Vec3, error) {
	switch n.Arity() {
	case 1:
		operand, err := ev.EvalNode(ctx, n.Child(0))
		if err != nil {
			return vec.Vec3{}, err
		}

		return applyUnary(n.Name(), operand)

	case 2:
		// Logical operators short-circuit on component 0.
		if n.Name() == "&&" || n.Name() == "||" {
			return ev.evalLogical(ctx, n)
		}

		left, err := ev.EvalNode(ctx, n.Child(0))
		if err != nil {
			return vec.Vec3{}, err
		}

		right, err := ev.EvalNode(ctx, n.Child(1))
		if err != nil {
			return vec.Vec3{}, err
		}

		return applyBinary(n.Name(), left, right)

	case 3: // conditional
		cond, err := ev.EvalNode(ctx, n.Child(0))
		if err != nil {
			return vec.Vec3{}, err
		}

		if cond[0] != 0 {
			return ev.EvalNode(ctx, n.Child(1))
		}

		return ev.EvalNode(ctx, n.Child(2))

	default:
		return vec.Vec3{}, ErrUnknownOperator.
			With(
				slog.String("operator", n.Name()),
				slog.Int("arity", n.Arity()),
			)
	}
}

func (ev *Evaluator) evalLogical(
	ctx context.Context,
	n *Node,
) (vec.Vec3, error) {
	left, err := ev.EvalNode(ctx, n.Child(0))
	if err != nil {
		return vec.Vec3{}, err
	}

	switch n.Name() {
	case "&&":
		if left[0] == 0 {
			return vec.Vec3{}, nil
		}

	case "||":
		if left[0] != 0 {
			return vec.Splat(1), nil
		}
	}

	right, err := ev.EvalNode(ctx, n.Child(1))
	if err != nil {
		return vec.Vec3{}, err
	}

	return boolVec(right[0] != 0), nil
}

func applyUnary(op string, v vec.Vec3) (vec.Vec3, error) {
	switch op {
	case "-":
		return v.Neg(), nil

	case "!":
		return boolVec(v[0] == 0), nil

	default:
		return vec.Vec3{}, ErrUnknownOperator.With(slog.String("operator", op))
	}
}

func applyBinary(op string, a, b vec.Vec3) (vec.Vec3, error) {
	switch op {
	case "+":
		return a.Add(b), nil

	case "-":
		return a.Sub(b), nil

	case "*":
		return a.Mul(b), nil

	case "/":
		return a.Div(b), nil

	case "%":
		return vec.New(
			math.Mod(a[0], b[0]),
			math.Mod(a[1], b[1]),
			math.Mod(a[2], b[2]),
		), nil

	case "^":
		return vec.New(
			math.Pow(a[0], b[0]),
			math.Pow(a[1], b[1]),
			math.Pow(a[2], b[2]),
		), nil

	case "==":
		return boolVec(a == b), nil

	case "!=":
		return boolVec(a != b), nil

	case "<":
		return boolVec(a[0] < b[0]), nil

	case ">":
		return boolVec(a[0] > b[0]), nil

	case "<=":
		return boolVec(a[0] <= b[0]), nil

	case ">=":
		return boolVec(a[0] >= b[0]), nil

	default:
		return vec.Vec3{}, ErrUnknownOperator.With(slog.String("operator", op))
	}
}

func boolVec(b bool) vec.Vec3 {
	if b {
		return vec.Splat(1)
	}

	return vec.Vec3{}
}
