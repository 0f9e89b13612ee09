package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Identifiers for values shared with commands through [kong.Vars].
const (
	ConfigIdentifier = "configPath"
	CacheIdentifier  = "cacheDir"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output writer configured on the kong.Context stored in
// ctx, or os.Stdout if none was stored.
func stdout(ctx context.Context) io.Writer {
	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Stdout == nil {
		return os.Stdout
	}

	return ktx.Stdout
}
