package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/natefinch/atomic"

	"github.com/ardnew/hyprtxt/bind"
	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
)

// Render expands a template against bindings and writes the HTML.
//
// Bindings are assembled in order: each --context YAML file, then --bind
// pairs, then --eval expressions computed from everything before them.
type Render struct {
	Bind        []string `help:"Bind name=value (repeatable)."                               placeholder:"NAME=VALUE" sep:"none" short:"b"`
	Context     []string `help:"Load bindings from a YAML file (repeatable)."                placeholder:"FILE"       sep:"none" short:"c" type:"existingfile"`
	Eval        []string `help:"Bind name to the result of an expression (repeatable)."      placeholder:"NAME=EXPR"  sep:"none" short:"e"`
	Sanitize    bool     `help:"Sanitize bound values with a user-content HTML policy."`
	MergeAttrs  bool     `help:"Merge same-named attributes into one, joined by a space."    name:"merge-attrs"`
	MaxDepth    int      `default:"256" help:"Maximum element nesting depth."`
	Suggestions int      `default:"3"   help:"Close matches listed for an unbound name."`
	Bindings    bool     `help:"List the names the template binds instead of rendering."    short:"l"`
	Output      string   `help:"Write output to file instead of stdout."                     short:"o" type:"path"`
	Force       bool     `help:"Overwrite an existing output file."                          short:"f"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tpl, err := parseSource(ctx, r.Source, "html", lang.WithMaxDepth(r.MaxDepth))
	if err != nil {
		return err
	}

	if r.Bindings {
		for _, name := range tpl.Bindings() {
			if _, err := fmt.Fprintln(stdout(ctx), name); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		return nil
	}

	bindings, err := r.bindings()
	if err != nil {
		return err
	}

	var c lang.Context = bindings
	if r.Sanitize {
		c = bind.Sanitize(c, bluemonday.UGCPolicy())
	}

	opts := []lang.RenderOption{lang.WithSuggestions(r.Suggestions)}
	if r.MergeAttrs {
		opts = append(opts, lang.WithMergeAttributes())
	}

	html, err := tpl.Render(ctx, c, opts...)
	if err != nil {
		return &SourceError{File: sourceName(r.Source), Err: ErrRender.Wrap(err)}
	}

	log.DebugContext(ctx, "rendered template",
		slog.String("source", sourceName(r.Source)),
		slog.Int("bindings", len(bindings)),
		slog.Int("bytes", len(html)))

	return r.write(ctx, html)
}

// bindings assembles the render context from the context files, pairs, and
// expressions, in that order.
func (r *Render) bindings() (lang.Bindings, error) {
	layers := make([]lang.Bindings, 0, len(r.Context)+1)

	for _, file := range r.Context {
		b, err := loadContextFile(file)
		if err != nil {
			return nil, err
		}

		layers = append(layers, b)
	}

	pairs, err := bind.Parse(r.Bind)
	if err != nil {
		return nil, ErrBindings.Wrap(err)
	}

	merged := bind.Merge(append(layers, pairs)...)

	if len(r.Eval) == 0 {
		return merged, nil
	}

	exprs, err := bind.Parse(r.Eval)
	if err != nil {
		return nil, ErrBindings.Wrap(err).With(slog.String("flag", "eval"))
	}

	merged, err = bind.Evaluate(merged, exprs)
	if err != nil {
		return nil, ErrBindings.Wrap(err).With(slog.String("flag", "eval"))
	}

	return merged, nil
}

func loadContextFile(file string) (lang.Bindings, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, ErrBindings.Wrap(err).With(slog.String("file", file))
	}
	defer f.Close()

	b, err := bind.LoadYAML(f)
	if err != nil {
		return nil, ErrBindings.Wrap(err).With(slog.String("file", file))
	}

	return b, nil
}

// write sends html to stdout, or atomically replaces the output file.
func (r *Render) write(ctx context.Context, html string) error {
	if r.Output == "" {
		_, err := fmt.Fprintln(stdout(ctx), html)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if !r.Force {
		_, err := os.Stat(r.Output)
		if err == nil {
			return ErrWriteOutput.
				With(slog.String("file", r.Output)).
				Wrap(ErrFileExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.Output), 0o755); err != nil {
		return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
	}

	if err := atomic.WriteFile(r.Output, strings.NewReader(html+"\n")); err != nil {
		return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote output", slog.String("file", r.Output))

	return nil
}

func sourceName(path string) string {
	if path == stdinSource || path == "" {
		return "<stdin>"
	}

	return path
}
