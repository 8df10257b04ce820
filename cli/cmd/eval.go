package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// Eval parses and evaluates each statement argument in order, sharing one
// environment, and prints the value of every statement.
type Eval struct {
	Stmts []string `arg:"" help:"Statements to evaluate, e.g. 'let x = 6 * 7' x" name:"statement"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default().With(slog.String("command", "eval"))
	out := outputFrom(ctx)
	env := lang.NewEnv()

	for i, src := range e.Stmts {
		parsed, err := lang.Parse(ctx, src, lang.WithLogger(logger))
		if err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "eval"),
					slog.Int("statement", i+1),
				)
		}

		val, err := parsed.Eval(env)
		if err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "eval"),
					slog.Int("statement", i+1),
				)
		}

		if err := lang.FormatValue(out, val); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
