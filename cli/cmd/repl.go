package cmd

import (
	"context"

	"github.com/voxtra/vexpr/cli/cmd/repl"
	"github.com/voxtra/vexpr/lang"
	"github.com/voxtra/vexpr/log"
)

// Repl starts an interactive evaluation loop.
type Repl struct {
	Cache string `default:"${cacheDir}" help:"Directory for persistent history" type:"path"`

	Stub bool `help:"Resolve every function to a stub evaluating to (0,0,0)"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var resolver lang.Resolver = lang.BuiltinResolver{}
	if r.Stub {
		resolver = lang.StubResolver{}
	}

	return repl.Run(ctx, r.Cache, resolver, log.Default())
}
