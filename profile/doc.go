// Package profile provides optional runtime profiling for the hyprtxt
// command, backed by [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	hyprtxt --pprof-mode=cpu --pprof-dir=/tmp/prof site site.yaml
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// Without the tag, [Profiler.Start] returns a no-op handle and [Modes] is
// empty. Building with the tag also registers the [net/http/pprof]
// handlers.
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
