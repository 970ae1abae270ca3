// Package cli contains the command line interface for hyprtxt.
//
// # Usage
//
//	hyprtxt render page.hx --bind title=Home -o public/index.html
//	hyprtxt fmt json page.hx
//	hyprtxt site site.yaml
//	hyprtxt assets static public
//
// render is the default command, so "hyprtxt page.hx" renders page.hx to
// standard output.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/hyprtxt/config.yaml). Nested mappings are
// joined with hyphens:
//
//	log:
//	  level: debug
//	  pretty: false
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Style text output with colors
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o hyprtxt .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/hyprtxt/pprof)
package cli
