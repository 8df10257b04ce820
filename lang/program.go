package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/eldiro/log"
)

// Program is a sequence of statements parsed from a script.
// Unlike a [Block], a program runs directly in the caller's environment.
type Program struct {
	Stmts  []Stmt
	logger log.Logger
}

// ParseProgram parses whitespace-separated statements until source is
// exhausted. Any text that does not begin a statement fails with
// [ErrUnconsumedInput].
func ParseProgram(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	o := makeOptions(opts...)

	rest, _ := ExtractWhitespace(source)
	rest, stmts := Sequence(ParseStmt, ExtractWhitespace, rest)

	if rest != "" {
		// Report why the next statement failed along with the remainder.
		_, _, cause := ParseStmt(rest)

		return nil, ErrUnconsumedInput.Wrap(cause).
			With(
				slog.Int("statement", len(stmts)+1),
				slog.String("remainder", rest),
			)
	}

	o.logger.TraceContext(ctx, "program parsed",
		slog.Int("statement_count", len(stmts)))

	return &Program{Stmts: stmts, logger: o.logger}, nil
}

// ParseReader reads all of r and parses it as a [Program].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead so the next chunk is fetched while
	// the previous one is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseProgram(ctx, string(data), opts...)
}

// Eval evaluates each statement in order against env and returns the value
// of the last one, or Unit for an empty program.
func (p *Program) Eval(env *Env) (Value, error) {
	result := Unit

	for i, stmt := range p.Stmts {
		val, err := stmt.Eval(env)
		if err != nil {
			p.logger.Trace("program failed",
				slog.Int("statement", i+1),
				slog.Any("error", err))

			return Unit, err
		}

		result = val
	}

	p.logger.Trace("program complete", slog.Any("value", result))

	return result, nil
}

// String renders the program with one statement per line.
func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, stmt := range p.Stmts {
		parts[i] = stmt.String()
	}

	return strings.Join(parts, "\n")
}
