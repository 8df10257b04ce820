//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/eldiro/log"
	"github.com/ardnew/eldiro/pkg"
	"github.com/ardnew/eldiro/profile"
)

// pprofConfig selects a profile mode for the whole run of a command.
// Profiles are written under the cache directory unless Dir says otherwise.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the command in this mode" placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Directory for profile output"                             type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling"}
}

// start begins profiling when a mode is set. The returned func ends it and
// flushes the profile.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	log.DebugContext(ctx, "profiling", attrs...)

	stopper := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}.Start()

	return func() {
		stopper.Stop()
		log.DebugContext(ctx, "profile written", attrs...)
	}
}
