package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/hyprtxt/cli/cmd"
	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var buf bytes.Buffer

	ctx := cmd.WithOutput(context.Background(), &buf)
	err := Run(ctx, func(code int) { t.Fatalf("unexpected exit(%d)", code) }, args...)

	return buf.String(), err
}

func writeTemplate(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.hx")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunRender(t *testing.T) {
	src := writeTemplate(t, `h1: title`)

	tests := []struct {
		name string
		args []string
	}{
		{"explicit", []string{"render", "--bind", "title=Home", src}},
		{"default command", []string{src, "-b", "title=Home"}},
		{"log flags", []string{"--log-level=error", "--no-log-pretty", "render", "-b", "title=Home", src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got != "<h1>Home</h1>\n" {
				t.Errorf("Run() output = %q", got)
			}
		})
	}
}

func TestRunFmt(t *testing.T) {
	src := writeTemplate(t, `p{$:"x"}`)

	got, err := run(t, "fmt", "native", "--indent=0", src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got != "p: \"x\"\n" {
		t.Errorf("Run() output = %q", got)
	}
}

func TestRunSyntaxError(t *testing.T) {
	src := writeTemplate(t, `p { x }`)

	_, err := run(t, "fmt", "json", src)
	if !errors.Is(err, lang.ErrSyntax) {
		t.Fatalf("Run() error = %v, want ErrSyntax", err)
	}

	var buf bytes.Buffer
	if !cmd.Diagnose(&buf, err) {
		t.Error("Diagnose() = false for a syntax error")
	}
}
