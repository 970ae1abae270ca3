package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		log    func(Logger)
		logged bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("msg") }, true},
		{"info at error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"warn at info", LevelInfo, func(l Logger) { l.Warn("msg") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	logger.TraceContext(context.Background(), "parse start", slog.Int("source_length", 42))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "parse start" {
		t.Errorf("msg = %v", record["msg"])
	}

	if record["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", record["level"])
	}

	if record["source_length"] != float64(42) {
		t.Errorf("source_length = %v", record["source_length"])
	}
}

func TestLogger_WithFormat_Text(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(pretty), WithTimeLayout("none"))
		logger.Info("rendered", slog.String("file", "index.html"))

		out := buf.String()
		for _, want := range []string{"rendered", "file=", "index.html"} {
			if !strings.Contains(out, want) {
				t.Errorf("pretty=%v: output %q missing %q", pretty, out, want)
			}
		}

		if strings.Contains(out, "time=") {
			t.Errorf("pretty=%v: timestamp not disabled: %q", pretty, out)
		}
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithFormat(FormatJSON)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller not reported: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithFormat(FormatJSON)).Info("here")

	if strings.Contains(buf.String(), `"source"`) {
		t.Errorf("caller reported when disabled: %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []Format{FormatJSON, FormatText} {
		buf.Reset()

		logger := Make(&buf, WithFormat(format)).With(slog.String("component", "site"))
		logger.Info("generated")

		if !strings.Contains(buf.String(), "component") || !strings.Contains(buf.String(), "site") {
			t.Errorf("%v: attribute missing: %s", format, buf.String())
		}
	}
}

func TestLogger_Wrap_KeepsBaseConfiguration(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON {
		t.Errorf("format = %v, want json", wrapped.Format())
	}

	if wrapped.Level() != LevelDebug || base.Level() != LevelInfo {
		t.Errorf("levels = %v/%v, want debug/info", wrapped.Level(), base.Level())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Trace("ignored")
	logger.ErrorContext(context.Background(), "ignored")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}

	if got := logger.With(slog.Int("n", 1)); got.Logger != nil {
		t.Error("With on zero logger should stay zero")
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 20 {
		t.Errorf("got %d lines, want 20", n)
	}
}

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()

	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelDebug), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("output %q missing level %s", out, tt.level)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("output %q missing attribute", out)
			}
		})
	}
}

func TestPackage_Config_UpdatesDefaultLogger(t *testing.T) {
	original := Default()

	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithFormat(FormatJSON), WithLevel(LevelWarn))

	InfoContext(context.Background(), "dropped")
	WarnContext(context.Background(), "kept")

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
