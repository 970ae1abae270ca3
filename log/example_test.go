package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/hyprtxt/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithPretty(false))
	logger.Info("site generated", slog.Int("pages", 3))
	// Output: level=INFO msg="site generated" pages=3
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("dropped")
	logger.Warn("missing asset", slog.String("file", "logo.svg"))
	// Output: level=WARN msg="missing asset" file=logo.svg
}

func Example_withContext() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none")).
		With(slog.String("component", "render"))

	logger.InfoContext(context.Background(), "done")
	// Output: {"level":"INFO","msg":"done","component":"render"}
}
