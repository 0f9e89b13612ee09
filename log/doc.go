// Package log wraps log/slog with a trace level below debug, text and JSON
// output formats, an optional colorized pretty text handler, and a
// package-level default logger configured through functional options.
package log
