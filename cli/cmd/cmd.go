package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write results to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// stdout returns the writer for command results: the one stored by
// [WithOutput], else the kong application's, else [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named file, or stdin for [stdinSource]. The returned
// name is used in diagnostics.
func openSource(path string) (io.ReadCloser, string, error) {
	if path == stdinSource || path == "" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
	}

	return f, path, nil
}
