package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/eldiro/cli/cmd/repl"
	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// Repl starts an interactive session. Bindings and functions persist across
// statements for the life of the session.
type Repl struct {
	Preload []string `help:"Evaluate program files before the first prompt" name:"preload" short:"l" type:"existingfile"`

	Plain bool `help:"Use line mode even on a terminal" short:"p"`

	History      string `default:"${cache}/history.utf8" help:"History file, or empty to keep none" type:"path"`
	HistoryLimit int    `default:"1000"                   help:"Maximum number of history entries; 0 is unbounded"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default().With(slog.String("command", "repl"))

	history := repl.NewHistory(r.History, r.HistoryLimit)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "ignoring history",
			slog.String("path", r.History),
			slog.Any("error", err))
	}

	session := repl.NewSession(logger, history)

	if err := r.preload(ctx, session); err != nil {
		return err
	}

	if r.Plain || !repl.Interactive() {
		return repl.RunPlain(ctx, session)
	}

	return repl.Run(ctx, session)
}

func (r *Repl) preload(ctx context.Context, session *repl.Session) error {
	srcs, err := openSources(ctx, r.Preload)
	if err != nil {
		return err
	}

	defer func() {
		for _, src := range srcs {
			_ = src.Close()
		}
	}()

	for _, src := range srcs {
		if err := session.Preload(ctx, src); err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "repl"),
					slog.String("source", src.name),
				)
		}
	}

	return nil
}
