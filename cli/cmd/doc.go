// Package cmd implements the vexpr subcommands: one-shot expression
// evaluation, the interactive REPL, and version reporting.
package cmd
