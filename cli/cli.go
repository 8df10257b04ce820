package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/eldiro/cli/cmd"
	"github.com/ardnew/eldiro/pkg"
)

// CLI is the top-level command-line interface for eldiro.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Init cmd.Init `cmd:"" help:"Write a configuration file with current flag values"`
	Eval cmd.Eval `cmd:"" help:"Evaluate statements in a single environment"`
	Run  cmd.Run  `cmd:"" help:"Evaluate program files"`
	Fmt  cmd.Fmt  `cmd:"" help:"Print a program in canonical or structured form"`

	Repl cmd.Repl `cmd:"" default:"withargs" help:"Start an interactive session"`
}

// Run executes the eldiro CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that messages emitted while kong parses
	// (including configuration file warnings) honor them.
	cli.Log.scan(args)

	parser, err := newParser(ctx, &cli, exit,
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configPath(baseConfig)),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Apply the remaining logger flags, including those resolved from the
	// configuration files.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// newParser builds the kong parser for cli. Commands receive ctx through a
// singleton provider.
func newParser(
	ctx context.Context,
	cli *CLI,
	exit func(code int),
	opts ...kong.Option,
) (*kong.Kong, error) {
	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig),
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		append([]kong.Option{
			kong.Name(pkg.Name),
			kong.Description(pkg.Description),
			kong.UsageOnError(),
			kong.Exit(exit),
			kong.ExplicitGroups(
				[]kong.Group{cli.Log.group(), cli.Pprof.group()},
			),
			kong.BindSingletonProvider(func() context.Context {
				return ctx
			}),
			kong.ConfigureHelp(
				kong.HelpOptions{
					Compact:             true,
					Summary:             true,
					Tree:                true,
					NoExpandSubcommands: true,
				}),
			vars,
		}, opts...)...,
	)
}
