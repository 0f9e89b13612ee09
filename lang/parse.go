package lang

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/voxtra/vexpr/log"
)

// Tree is one parsed expression.
//
// The tree owns its nodes for the lifetime of one parsed expression; walkers
// and examiners borrow it read-only. Preparation binds resolved descriptors
// to call and reference sites; evaluation requires a prepared tree.
type Tree struct {
	Root   *Node
	Source string

	opts   options
	logger log.Logger

	// Populated by Prepare.
	funcs    map[*Node]Func
	vars     map[*Node]Var
	implicit map[string]struct{}
}

// options holds Tree configuration.
type options struct {
	maxDepth     int
	implicitVars bool
}

// Option configures parsing, preparation, or evaluation behavior.
type Option func(*Tree)

// WithMaxDepth sets the maximum nesting depth for parsed expressions.
func WithMaxDepth(depth int) Option {
	return func(t *Tree) {
		t.opts.maxDepth = depth
	}
}

// WithImplicitVars controls how preparation treats variable names the
// resolver does not know. When enabled, an unresolved variable is recorded
// as an implicit external bound to the zero vector; when disabled (the
// default), preparation fails with ErrUnknownVariable.
func WithImplicitVars(enable bool) Option {
	return func(t *Tree) {
		t.opts.implicitVars = enable
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// applyDefaults sets default option values on a Tree.
func applyDefaults(t *Tree) {
	t.opts.maxDepth = DefaultMaxDepth
}

// applyOptions applies functional options to a Tree.
func applyOptions(t *Tree, opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}

// Parse parses expression source text and returns the Tree.
// Options can be provided to customize parsing and later passes.
func Parse(ctx context.Context, input string, opts ...Option) (*Tree, error) {
	t := &Tree{Source: input}

	applyDefaults(t)
	applyOptions(t, opts...)

	t.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	parsed, err := parser.Parse(input)
	if err != nil {
		return nil, NewParseError(input, err)
	}

	root, err := convert(parsed.Node, 0, t.opts.maxDepth)
	if err != nil {
		return nil, err
	}

	t.Root = root

	t.logger.TraceContext(ctx, "tree built")

	return t, nil
}

// convert maps an expr-lang AST node onto the closed vexpr node set.
// String literals become tag nodes; their role as call arguments is recorded
// by the enclosing call's per-child markers. Syntax with no vexpr analog
// fails closed.
func convert(n ast.Node, depth, maxDepth int) (*Node, error) {
	if depth >= maxDepth {
		return nil, ErrMaxDepthExceeded.
			With(
				slog.Int("depth", depth),
				slog.Int("max_depth", maxDepth),
			)
	}

	switch n := n.(type) {
	case *ast.IntegerNode:
		return NewNumber(float64(n.Value)), nil

	case *ast.FloatNode:
		return NewNumber(n.Value), nil

	case *ast.BoolNode:
		if n.Value {
			return NewNumber(1), nil
		}

		return NewNumber(0), nil

	case *ast.StringNode:
		return NewTag(n.Value), nil

	case *ast.IdentifierNode:
		return NewVar(n.Value), nil

	case *ast.UnaryNode:
		return convertUnary(n, depth, maxDepth)

	case *ast.BinaryNode:
		return convertBinary(n, depth, maxDepth)

	case *ast.ConditionalNode:
		return convertConditional(n, depth, maxDepth)

	case *ast.CallNode:
		return convertCall(n, depth, maxDepth)

	case *ast.BuiltinNode:
		args, err := convertAll(n.Arguments, depth, maxDepth)
		if err != nil {
			return nil, err
		}

		return NewCall(n.Name, args...), nil

	default:
		return nil, ErrUnsupportedSyntax.
			With(slog.String("node", fmt.Sprintf("%T", n)))
	}
}

// unaryOps maps expr-lang unary operators to vexpr operator symbols.
var unaryOps = map[string]string{
	"-":   "-",
	"+":   "+",
	"!":   "!",
	"not": "!",
}

// binaryOps maps expr-lang binary operators to vexpr operator symbols.
var binaryOps = map[string]string{
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
	"%":   "%",
	"^":   "^",
	"**":  "^",
	"==":  "==",
	"!=":  "!=",
	"<":   "<",
	">":   ">",
	"<=":  "<=",
	">=":  ">=",
	"&&":  "&&",
	"||":  "||",
	"and": "&&",
	"or":  "||",
}

func convertUnary(n *ast.UnaryNode, depth, maxDepth int) (*Node, error) {
	op, ok := unaryOps[n.Operator]
	if !ok {
		return nil, ErrUnsupportedSyntax.
			With(slog.String("operator", n.Operator))
	}

	operand, err := convert(n.Node, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	// Unary plus is the identity.
	if op == "+" {
		return operand, nil
	}

	return NewOp(op, operand), nil
}

func convertBinary(n *ast.BinaryNode, depth, maxDepth int) (*Node, error) {
	op, ok := binaryOps[n.Operator]
	if !ok {
		return nil, ErrUnsupportedSyntax.
			With(slog.String("operator", n.Operator))
	}

	left, err := convert(n.Left, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	right, err := convert(n.Right, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	return NewOp(op, left, right), nil
}

func convertConditional(
	n *ast.ConditionalNode,
	depth, maxDepth int,
) (*Node, error) {
	cond, err := convert(n.Cond, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	then, err := convert(n.Exp1, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	otherwise, err := convert(n.Exp2, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}

	return NewOp("?:", cond, then, otherwise), nil
}

func convertCall(n *ast.CallNode, depth, maxDepth int) (*Node, error) {
	callee, ok := n.Callee.(*ast.IdentifierNode)
	if !ok {
		return nil, ErrUnsupportedSyntax.
			With(slog.String("node", fmt.Sprintf("callee %T", n.Callee)))
	}

	args, err := convertAll(n.Arguments, depth, maxDepth)
	if err != nil {
		return nil, err
	}

	return NewCall(callee.Value, args...), nil
}

func convertAll(in []ast.Node, depth, maxDepth int) ([]*Node, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make([]*Node, len(in))

	for i, a := range in {
		c, err := convert(a, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}

		out[i] = c
	}

	return out, nil
}

// Usage walks the prepared or unprepared tree with a fresh UsageExaminer and
// returns the collected report.
func (t *Tree) Usage() (*UsageExaminer, error) {
	var x UsageExaminer

	w := Walker{MaxDepth: t.opts.maxDepth}

	err := w.Walk(t.Root, &x)
	if err != nil {
		return nil, err
	}

	return &x, nil
}
