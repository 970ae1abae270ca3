package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
	"github.com/ardnew/hyprtxt/site"
)

// Site generates a static site from a YAML manifest.
type Site struct {
	Output     string `help:"Override the manifest output directory." short:"o" type:"path"`
	MergeAttrs bool   `help:"Merge same-named attributes into one, joined by a space." name:"merge-attrs"`

	Manifest string `arg:"" help:"Site manifest file." name:"manifest" type:"existingfile"`
}

// Run executes the site command.
func (s *Site) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	m, dir, err := site.LoadManifestFile(s.Manifest)
	if err != nil {
		return err
	}

	if s.Output != "" {
		m.Output = s.Output
	}

	var render []lang.RenderOption
	if s.MergeAttrs {
		render = append(render, lang.WithMergeAttributes())
	}

	files, err := site.Build(ctx, m, dir,
		site.WithLogger(log.Default()),
		site.WithRenderOptions(render...))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "site generated",
		slog.String("manifest", s.Manifest),
		slog.Int("files", len(files)))

	for _, f := range files {
		if _, err := fmt.Fprintln(stdout(ctx), f); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
