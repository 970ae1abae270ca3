// Package log provides a concurrency-safe leveled logger based on
// [log/slog].
//
// Loggers are values configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Every level has a context-aware method and a variant that uses
// [DefaultContextProvider]. Below [LevelDebug] sits [LevelTrace], used by
// the template compiler to report each parse and render step.
//
// The zero [Logger] discards all messages. Library code accepts a Logger
// through an option and logs unconditionally; callers that never configure
// one pay only for the level check.
//
// Text output is styled with lipgloss when [WithPretty] is enabled (the
// default). Styles degrade to plain text when the output is not a terminal.
//
// The package-level functions log through a default logger writing to
// standard error, reconfigured with [Config].
package log
