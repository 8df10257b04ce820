package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// Run evaluates one or more program files in a single environment, so later
// files see the bindings and functions of earlier ones, and prints the value
// of the last statement.
type Run struct {
	Sources []string `arg:"" default:"-" help:"Program files, or '-' for stdin" name:"source" optional:""`

	Quiet bool `help:"Do not print the final value" short:"q"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default().With(slog.String("command", "run"))

	srcs, err := openSources(ctx, r.Sources)
	if err != nil {
		return err
	}

	defer func() {
		for _, src := range srcs {
			_ = src.Close()
		}
	}()

	env := lang.NewEnv()
	result := lang.Unit

	for _, src := range srcs {
		prog, err := lang.ParseReader(ctx, src, lang.WithLogger(logger))
		if err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "run"),
					slog.String("source", src.name),
				)
		}

		logger.DebugContext(ctx, "program loaded",
			slog.String("source", src.name),
			slog.Int("statements", len(prog.Stmts)))

		if result, err = prog.Eval(env); err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "run"),
					slog.String("source", src.name),
				)
		}
	}

	if r.Quiet {
		return nil
	}

	if err := lang.FormatValue(outputFrom(ctx), result); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
