//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/hyprtxt/log"
	"github.com/ardnew/hyprtxt/pkg"
	"github.com/ardnew/hyprtxt/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

// start begins the selected profile. The returned func writes it out.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}
	if p.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", p.Mode), slog.String("dir", p.Path)}

	log.DebugContext(ctx, "pprof start", attrs...)

	handle := p.Start()

	return func() {
		handle.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
