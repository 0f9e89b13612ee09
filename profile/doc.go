// Package profile provides optional runtime profiling for the vexpr
// application.
//
// This package integrates [github.com/pkg/profile] to provide runtime
// profiling with conditional compilation support. Profiling must be enabled
// at build time using the "pprof" build tag. When built without the tag
// (default), all operations are no-ops with zero runtime overhead.
//
// When built with the pprof tag, the following modes are supported: allocs,
// block, clock, cpu, goroutine, heap, mem, mutex, thread, and trace. Use
// [Modes] to retrieve the list programmatically.
//
// Profile files are written to the configured output directory with names
// matching the profiling mode (e.g., cpu.pprof, mem.pprof). Analyze them
// with the standard tooling:
//
//	go tool pprof ./vexpr /path/to/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
