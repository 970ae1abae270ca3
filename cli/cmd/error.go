package cmd

import (
	"log/slog"

	"github.com/ardnew/hyprtxt/lang"
)

// SourceError associates an error with the template file it came from.
type SourceError struct {
	File string
	Err  error
}

func (e *SourceError) Error() string { return e.File + ": " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *SourceError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", e.File),
		slog.Any("cause", e.Err),
	)
}

var (
	ErrOpenSource  = lang.NewError("open source")
	ErrWriteOutput = lang.NewError("write output")
	ErrBindings    = lang.NewError("load bindings")
	ErrRender      = lang.NewError("render template")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
)
