// Package cli wires the vexpr command-line interface: flag and config
// parsing, logger configuration, optional profiling, and dispatch to the
// subcommands in [github.com/voxtra/vexpr/cli/cmd].
package cli
