package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voxtra/vexpr/lang"
)

// Eval evaluates a single expression and prints the result followed by a
// report of every variable reference and function call it contains.
type Eval struct {
	Expr []string `arg:"" help:"Expression to evaluate" name:"expr"`

	Stub   bool `help:"Resolve every function to a stub evaluating to (0,0,0)"`
	Strict bool `help:"Reject references to undefined variables"       negatable:""`
	Report bool `help:"Print the usage report after the result"        negatable:"" default:"true"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source := strings.Join(e.Expr, " ")

	tree, err := lang.Parse(ctx, source,
		lang.WithImplicitVars(!e.Strict),
	)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	var resolver lang.Resolver = lang.BuiltinResolver{}
	if e.Stub {
		resolver = lang.StubResolver{}
	}

	err = tree.Prepare(ctx, resolver)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", source),
			)
	}

	result, err := tree.Eval(ctx)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", source),
			)
	}

	out := stdout(ctx)

	fmt.Fprintln(out, result)

	if !e.Report {
		return nil
	}

	usage, err := tree.Usage()
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	for spec := range usage.All() {
		fmt.Fprintln(out, spec)
	}

	return nil
}
