package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/hyprtxt/cli"
	"github.com/ardnew/hyprtxt/cli/cmd"
	"github.com/ardnew/hyprtxt/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		if !cmd.Diagnose(os.Stderr, err) {
			log.Error(
				"run failed",
				slog.Any("error", err),
			) // slog automatically uses LogValue()
		}

		os.Exit(1)
	}
}
