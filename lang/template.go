package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/klauspost/readahead"

	"github.com/ardnew/hyprtxt/log"
)

// Template is a parsed template: an immutable syntax tree together with the
// source it was parsed from.
//
// A Template may be rendered any number of times, concurrently, against
// different contexts.
type Template struct {
	Root   Node
	Source string
	logger log.Logger
}

// ParseString scans and parses template source.
func ParseString(ctx context.Context, source string, opts ...Option) (*Template, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(source)))

	tokens := Scan(source)

	o.logger.TraceContext(ctx, "scan complete",
		slog.Int("token_count", len(tokens)))

	root, err := parseTokens(tokens, source, o)
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("node_count", countNodes(root)))

	return &Template{
		Root:   root,
		Source: source,
		logger: o.logger,
	}, nil
}

// ParseReader reads all of r and parses it as template source.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Template, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, string(data), opts...)
}

// readAll reads r to the end through an asynchronous read-ahead buffer.
func readAll(r io.Reader) ([]byte, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return data, nil
}

// WithLogger returns a copy of t that traces renders to logger. The copy
// shares the syntax tree of t.
func (t *Template) WithLogger(logger log.Logger) *Template {
	c := *t
	c.logger = logger

	return &c
}

// Render expands the template against c.
func (t *Template) Render(ctx context.Context, c Context, opts ...RenderOption) (string, error) {
	s, err := Render(t.Root, c, opts...)
	if err != nil {
		t.logger.TraceContext(ctx, "render failed", slog.Any("error", err))

		return "", err
	}

	t.logger.TraceContext(ctx, "render complete",
		slog.Int("output_length", len(s)))

	return s, nil
}

// Bindings returns the sorted, unique names of every binding the template
// resolves when rendered.
func (t *Template) Bindings() []string {
	names := make(map[string]struct{})

	addValue := func(v Value) {
		if b, ok := v.(Binding); ok {
			names[b.Name] = struct{}{}
		}
	}

	for n := range Walk(t.Root) {
		switch n := n.(type) {
		case *Element:
			for _, attr := range n.Attributes {
				addValue(attr.Value)
			}

		case *Content:
			addValue(n.Value)
		}
	}

	return slices.Sorted(maps.Keys(names))
}

func countNodes(root Node) int {
	count := 0
	for range Walk(root) {
		count++
	}

	return count
}
