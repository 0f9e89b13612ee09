// Package repl implements the interactive evaluation loop: a line editor
// with fuzzy completion over the builtin function names, persistent history,
// and per-expression output of the value and usage report.
package repl
