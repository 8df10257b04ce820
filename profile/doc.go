// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	eldiro --pprof-mode cpu run script.el
//
// Without the tag [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper], so callers never need to check which build they are in.
// Profile files are written to the profiler's Path, named after the mode
// (cpu.pprof, mem.pprof, ...).
package profile
