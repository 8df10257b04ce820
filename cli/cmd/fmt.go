package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// Fmt parses a program and prints it in canonical eldiro syntax or as a
// structured document.
type Fmt struct {
	Format string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})"                     short:"f"`
	Indent int    `default:"2"                              help:"Indent width for JSON and YAML, 0 for compact" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, err := openSources(ctx, []string{f.Source})
	if err != nil {
		return err
	}

	defer func() {
		for _, src := range srcs {
			_ = src.Close()
		}
	}()

	logger := log.Default().With(slog.String("command", "fmt"))

	prog, err := lang.ParseReader(ctx, srcs[0], lang.WithLogger(logger))
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "fmt"),
				slog.String("format", f.Format),
			)
	}

	out := outputFrom(ctx)

	switch f.Format {
	case "json":
		err = lang.FormatJSON(ctx, out, prog, f.Indent)

	case "yaml":
		err = lang.FormatYAML(ctx, out, prog, f.Indent)

	default:
		err = lang.Format(ctx, out, prog)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("format", f.Format))
	}

	return nil
}
