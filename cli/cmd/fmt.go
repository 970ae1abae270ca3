package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
)

// Fmt parses a template and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical template source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// Native formats input as canonical template source.
type Native struct {
	Indent int `default:"2" help:"Indent width; 0 prints a single line" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tpl, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	return tpl.Format(ctx, stdout(ctx), f.Indent)
}

// JSON parses input and outputs the tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tpl, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	return tpl.FormatJSON(ctx, stdout(ctx), j.Indent)
}

// YAML parses input and outputs the tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tpl, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	return tpl.FormatYAML(ctx, stdout(ctx), y.Indent)
}

// AST formats input as an indented debug tree.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tpl, err := parseSource(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	return lang.Print(stdout(ctx), tpl.Root)
}

// parseSource reads and parses the template at path. Parse failures are
// returned as a [SourceError] naming the file.
func parseSource(ctx context.Context, path, format string, opts ...lang.Option) (*lang.Template, error) {
	r, name, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	opts = append([]lang.Option{lang.WithLogger(log.Default())}, opts...)

	tpl, err := lang.ParseReader(ctx, r, opts...)
	if err != nil {
		log.DebugContext(ctx, "parse failed",
			slog.String("file", name),
			slog.String("format", format))

		return nil, &SourceError{File: name, Err: err}
	}

	return tpl, nil
}
