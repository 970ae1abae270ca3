package log

import "io"

// Discard returns a [Logger] that accepts messages at every level and
// writes them nowhere. It is useful in tests that exercise trace paths.
func Discard() Logger {
	return Make(io.Discard, WithLevel(LevelTrace), WithPretty(false))
}
