package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/hyprtxt/asset"
	"github.com/ardnew/hyprtxt/log"
)

// Assets copies recognized static files into an output tree and prints the
// head tags that load them.
type Assets struct {
	BaseURL string `default:"/" help:"URL prefix the output directory is served under." name:"base-url"`

	Source string `arg:"" help:"Directory of asset files." name:"source" type:"existingdir"`
	Output string `arg:"" help:"Output root directory."    name:"output" type:"path"`
}

// Run executes the assets command.
func (a *Assets) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	assets, err := asset.Bundle(ctx, a.Source, a.Output,
		asset.WithBaseURL(a.BaseURL),
		asset.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "assets bundled",
		slog.String("source", a.Source),
		slog.Int("count", len(assets)))

	for _, as := range assets {
		if as.Tag == "" {
			continue
		}

		if _, err := fmt.Fprintln(stdout(ctx), as.Tag); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
