package lang

import (
	"context"
	"log/slog"
)

// Prep carries the state of one preparation pass. Func implementations use
// it to prepare their non-tag arguments.
type Prep struct {
	tree     *Tree
	resolver Resolver
	depth    int
}

// Prepare statically validates the tree against the given resolver: every
// variable reference and function call is resolved, and each resolved
// function validates its own call site. Preparation never evaluates.
//
// An unresolved function name is always an error. An unresolved variable
// name is an error unless WithImplicitVars(true) was applied, in which case
// the reference is recorded as an implicit external bound to the zero
// vector. Options are applied as overrides for this tree.
//
// The tree must be prepared before Eval.
func (t *Tree) Prepare(
	ctx context.Context,
	r Resolver,
	opts ...Option,
) error {
	applyOptions(t, opts...)

	t.funcs = make(map[*Node]Func)
	t.vars = make(map[*Node]Var)
	t.implicit = make(map[string]struct{})

	t.logger.TraceContext(ctx, "prepare start")

	p := &Prep{tree: t, resolver: r}

	err := p.PrepareNode(ctx, t.Root)
	if err != nil {
		// A half-prepared tree must not be evaluated.
		t.funcs = nil
		t.vars = nil
		t.implicit = nil

		return err
	}

	t.logger.TraceContext(
		ctx,
		"prepare complete",
		slog.Int("calls", len(t.funcs)),
		slog.Int("vars", len(t.vars)+len(t.implicit)),
	)

	return nil
}

// PrepareNode resolves and validates a single node and, via the resolved
// functions, its sub-expressions.
func (p *Prep) PrepareNode(ctx context.Context, n *Node) error {
	if n == nil {
		return ErrInvalidNode.With(slog.String("reason", "nil node"))
	}

	if p.depth >= p.tree.opts.maxDepth {
		return ErrMaxDepthExceeded.
			With(
				slog.Int("depth", p.depth),
				slog.Int("max_depth", p.tree.opts.maxDepth),
			)
	}

	p.depth++
	defer func() { p.depth-- }()

	switch n.Kind() {
	case KindNumber:
		return nil

	case KindTag:
		// Reachable only outside a call argument position; calls skip
		// their tag children.
		return ErrTagOutsideCall.With(slog.String("literal", n.Tag()))

	case KindVar:
		return p.prepareVar(ctx, n)

	case KindCall:
		return p.prepareCall(ctx, n)

	case KindOp:
		for i := range n.Arity() {
			if n.TagChild(i) {
				return ErrTagOutsideCall.
					With(slog.String("operator", n.Name()))
			}

			err := p.PrepareNode(ctx, n.Child(i))
			if err != nil {
				return err
			}
		}

		return nil

	default:
		return ErrInvalidNode.With(slog.String("kind", n.Kind().String()))
	}
}

func (p *Prep) prepareVar(ctx context.Context, n *Node) error {
	v, ok := p.resolver.ResolveVar(n.Name())
	if ok {
		p.tree.vars[n] = v

		return nil
	}

	if !p.tree.opts.implicitVars {
		return ErrUnknownVariable.With(slog.String("name", n.Name()))
	}

	p.tree.implicit[n.Name()] = struct{}{}

	p.tree.logger.TraceContext(
		ctx,
		"implicit variable",
		slog.String("name", n.Name()),
	)

	return nil
}

func (p *Prep) prepareCall(ctx context.Context, n *Node) error {
	f, ok := p.resolver.ResolveFunc(n.Name())
	if !ok {
		return ErrUnknownFunction.With(slog.String("name", n.Name()))
	}

	err := f.Prepare(ctx, n, p)
	if err != nil {
		return err
	}

	p.tree.funcs[n] = f

	return nil
}

// ImplicitVars returns the names preparation recorded as implicit externals,
// or nil when the tree is unprepared or fully resolved.
func (t *Tree) ImplicitVars() []string {
	if len(t.implicit) == 0 {
		return nil
	}

	names := make([]string, 0, len(t.implicit))
	for name := range t.implicit {
		names = append(names, name)
	}

	return names
}
