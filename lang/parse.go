package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/eldiro/log"
)

// Parsed is a single statement parsed from a complete source text.
type Parsed struct {
	Stmt   Stmt
	logger log.Logger
}

// Option configures parsing or evaluation behavior.
type Option func(*options)

type options struct {
	logger log.Logger // zero value discards everything
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Parse parses exactly one statement from source.
// Whitespace may surround the statement; anything else left over fails with
// [ErrUnconsumedInput].
func Parse(ctx context.Context, source string, opts ...Option) (*Parsed, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(source)))

	rest, _ := ExtractWhitespace(source)

	rest, stmt, err := ParseStmt(rest)
	if err != nil {
		return nil, err
	}

	if rest, _ = ExtractWhitespace(rest); rest != "" {
		return nil, ErrUnconsumedInput.
			With(slog.String("remainder", rest))
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("stmt", stmt.String()))

	return &Parsed{Stmt: stmt, logger: o.logger}, nil
}

// Eval evaluates the statement against env, which the caller owns and may
// reuse across calls to accumulate bindings.
func (p *Parsed) Eval(env *Env) (Value, error) {
	val, err := p.Stmt.Eval(env)
	if err != nil {
		p.logger.Trace("eval failed", slog.Any("error", err))

		return Unit, err
	}

	p.logger.Trace("eval complete", slog.Any("value", val))

	return val, nil
}

// String renders the parsed statement as canonical source text.
func (p *Parsed) String() string { return p.Stmt.String() }
