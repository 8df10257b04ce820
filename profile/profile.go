package profile

// Tag names the subdirectory of the cache directory profiles are written to
// by default.
const Tag = "pprof"

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of Modes(); empty disables profiling
	Path  string // output directory; empty uses the library default
	Quiet bool   // suppress the library's own log lines
}

// Start begins profiling and returns the session's Stopper.
// An empty or unknown Mode, or a build without the pprof tag, yields a no-op.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
