package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/hyprtxt/cli/cmd"
	"github.com/ardnew/hyprtxt/pkg"
)

// baseConfig is the configuration file name under [pkg.ConfigDir].
const baseConfig = "config.yaml"

// CLI is the top-level command-line interface for hyprtxt.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template to HTML"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Format a template"`
	Site   cmd.Site   `cmd:""                    help:"Generate a static site from a manifest"`
	Assets cmd.Assets `cmd:""                    help:"Copy static assets into an output tree"`
}

// groups returns the flag groups shown separately in help output.
func groups() []kong.Group {
	return []kong.Group{
		{Key: "log", Title: "Logging options"},
		{Key: "pprof", Title: "Profiling (pprof)"},
	}
}

// Run parses args and executes the selected command. exit is called by kong
// for --help, --version, and usage errors.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong runs so that usage errors are
	// logged as requested.
	cli.Log.scan(args)

	parser, err := kong.New(&cli, cli.options(ctx, exit, pkg.ConfigPath(baseConfig))...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	defer cli.Log.start(ctx)()

	// No-op unless built with the pprof tag and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func (cli *CLI) options(ctx context.Context, exit func(int), config string) []kong.Option {
	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups()),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(loadYAML, config),
		kong.Vars{"version": pkg.Name + " " + pkg.Version()}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
	}
}
