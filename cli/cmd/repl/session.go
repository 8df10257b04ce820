package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// inputMode distinguishes statements from control commands.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// ctrlPrefix introduces a control command in line mode.
const ctrlPrefix = ":"

// Action tells a front end what to do after a submission.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionClear
	ActionEdit
)

// Reply is the outcome of one submitted line.
type Reply struct {
	Output string // printed as is; empty prints nothing
	Err    error
	Action Action
}

// ctrlCommands are the available control commands and their descriptions.
var ctrlCommands = []struct{ name, help string }{
	{"help", "Print this help"},
	{"env", "List bindings and functions"},
	{"edit", "Edit the session's definitions in $EDITOR"},
	{"clear", "Clear the screen"},
	{"quit", "Exit the REPL"},
}

// ctrlAliases maps abbreviations to control commands.
var ctrlAliases = map[string]string{
	"h": "help", "?": "help",
	"e": "env", "l": "env", "list": "env",
	"c": "clear",
	"q": "quit", "exit": "quit",
}

// Session is the interpreter state behind a REPL: one root environment that
// accumulates bindings and functions across submissions, the history, and
// the definitions evaluated so far.
//
// A Session is not safe for concurrent use.
type Session struct {
	env     *lang.Env
	defs    []lang.Stmt // successful let and fn statements, in order
	logger  log.Logger
	history *History
}

// NewSession returns a session with an empty environment.
func NewSession(logger log.Logger, history *History) *Session {
	if history == nil {
		history = NewHistory("", 0)
	}

	return &Session{
		env:     lang.NewEnv(),
		logger:  logger,
		history: history,
	}
}

// Env returns the session's root environment.
func (s *Session) Env() *lang.Env { return s.env }

// History returns the session's history.
func (s *Session) History() *History { return s.history }

// Program returns the definitions evaluated so far as a program that
// rebuilds the environment.
func (s *Session) Program() *lang.Program {
	return &lang.Program{Stmts: append([]lang.Stmt(nil), s.defs...)}
}

// Preload evaluates the program read from r in the session.
func (s *Session) Preload(ctx context.Context, r io.Reader) error {
	prog, err := lang.ParseReader(ctx, r, lang.WithLogger(s.logger))
	if err != nil {
		return err
	}

	return s.load(prog)
}

// Replace discards the environment and rebuilds it from prog.
// On failure the session is unchanged.
func (s *Session) Replace(prog *lang.Program) error {
	next := &Session{env: lang.NewEnv(), logger: s.logger}
	if err := next.load(prog); err != nil {
		return err
	}

	s.env, s.defs = next.env, next.defs

	return nil
}

func (s *Session) load(prog *lang.Program) error {
	for i, stmt := range prog.Stmts {
		if _, err := stmt.Eval(s.env); err != nil {
			return lang.WrapError(err).
				With(slog.Int("statement", i+1))
		}

		s.record(stmt)
	}

	s.logger.Trace("session loaded",
		slog.Int("statements", len(prog.Stmts)),
		slog.Int("definitions", len(s.defs)))

	return nil
}

// record remembers stmt if it defines a binding or function.
func (s *Session) record(stmt lang.Stmt) {
	switch stmt.(type) {
	case *lang.BindingDef, *lang.FuncDef:
		s.defs = append(s.defs, stmt)
	}
}

// Submit handles a line typed in line mode, where control commands start
// with a colon.
func (s *Session) Submit(ctx context.Context, line string) Reply {
	line = strings.TrimSpace(line)

	if cmd, ok := strings.CutPrefix(line, ctrlPrefix); ok {
		return s.Exec(ctx, cmd)
	}

	return s.Eval(ctx, line)
}

// Eval parses and evaluates one statement in the session environment.
// The value of an expression is the output; definitions print nothing.
func (s *Session) Eval(ctx context.Context, line string) Reply {
	line = strings.TrimSpace(line)
	if line == "" {
		return Reply{}
	}

	_, _ = s.history.WriteWithMode(line, modeEval)

	parsed, err := lang.ParseCached(ctx, line, lang.WithLogger(s.logger))
	if err != nil {
		s.logger.TraceContext(ctx, "repl parse failed", slog.Any("error", err))

		return Reply{Err: err}
	}

	val, err := parsed.Eval(s.env)
	if err != nil {
		s.logger.TraceContext(ctx, "repl eval failed", slog.Any("error", err))

		return Reply{Err: err}
	}

	s.record(parsed.Stmt)

	s.logger.TraceContext(ctx, "repl eval result",
		slog.String("kind", val.Kind.String()),
		slog.Any("value", val))

	if val.IsUnit() {
		return Reply{}
	}

	return Reply{Output: val.String()}
}

// Exec runs a control command, given without its colon.
func (s *Session) Exec(ctx context.Context, line string) Reply {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Reply{}
	}

	_, _ = s.history.WriteWithMode(line, modeCtrl)

	name := fields[0]
	if alias, ok := ctrlAliases[name]; ok {
		name = alias
	}

	s.logger.TraceContext(ctx, "repl command",
		slog.String("command", name),
		slog.Any("args", fields[1:]))

	switch name {
	case "help":
		return Reply{Output: helpMessage()}

	case "env":
		return Reply{Output: s.listEnv()}

	case "edit":
		return Reply{Action: ActionEdit}

	case "clear":
		return Reply{Action: ActionClear}

	case "quit":
		return Reply{Action: ActionQuit}

	default:
		return Reply{Err: fmt.Errorf("%w: %s (try %shelp)",
			ErrUnknownCommand, fields[0], ctrlPrefix)}
	}
}

// listEnv renders every visible binding and function as the definition
// that would recreate it.
func (s *Session) listEnv() string {
	var lines []string

	for name, val := range s.env.Bindings() {
		lines = append(lines, bindingSource(name, val))
	}

	for name, fn := range s.env.Funcs() {
		def := lang.FuncDef{Name: name, Params: fn.Params, Body: fn.Body}
		lines = append(lines, def.String())
	}

	if len(lines) == 0 {
		return "(empty)"
	}

	return strings.Join(lines, "\n")
}

// bindingSource renders a let statement binding val to name.
func bindingSource(name string, val lang.Value) string {
	def := lang.BindingDef{Name: name, Val: &lang.Block{}}

	if n, ok := val.Int(); ok {
		// Negative numbers have no literal syntax.
		if n < 0 {
			return "let " + name + " = " + val.String()
		}

		def.Val = lang.Number(n)
	}

	return def.String()
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands (prefix with " + ctrlPrefix +
		" in line mode, or press Esc to toggle command mode):\n\n")

	for _, c := range ctrlCommands {
		fmt.Fprintf(&b, "  %-6s %s\n", c.name, c.help)
	}

	b.WriteString(`
Usage:
  let x = 6 * 7        bind a name
  fn pick a b => b     define a function
  pick 1 x             call it; arguments are separated by spaces
  { let y = 1  y }     evaluate a block in a nested scope

  Tab / Shift-Tab cycle completions, Up/Down browse history,
  Ctrl+C clears the line or exits on an empty line, Ctrl+D exits.`)

	return b.String()
}
