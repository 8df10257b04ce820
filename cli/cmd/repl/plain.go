package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const (
	linePrompt = "> "
	contPrompt = ". "
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// lineReader reads lines with editing and history, as [liner.State] does.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// plain is the line-mode front end of a session.
type plain struct {
	session *Session
	reader  lineReader
	out     io.Writer
	errOut  io.Writer
	edit    func(ctx context.Context) error
}

// RunPlain starts the line-mode REPL, which needs no full-screen terminal
// and also reads statements from pipes.
func RunPlain(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrNoSession
	}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(lineCompleter(session))

	for _, entry := range session.History().Entries() {
		for _, line := range historyLines(entry.String()) {
			ln.AppendHistory(line)
		}
	}

	p := &plain{
		session: session,
		reader:  ln,
		out:     os.Stdout,
		errOut:  os.Stderr,
		edit: func(ctx context.Context) error {
			cmd := newEditCommand(ctx, session)
			if err := cmd.Run(); err != nil {
				return err
			}

			if cmd.applied {
				fmt.Fprintln(os.Stdout, "definitions updated")
			}

			return nil
		},
	}

	return p.loop(ctx)
}

// loop reads and submits statements until end of input or a quit command.
func (p *plain) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		src, err := p.read()

		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(p.out)

			return nil

		case errors.Is(err, liner.ErrPromptAborted):
			continue

		case err != nil:
			return err
		}

		if strings.TrimSpace(src) == "" {
			continue
		}

		for _, line := range historyLines(src) {
			p.reader.AppendHistory(line)
		}

		if quit := p.handle(ctx, p.session.Submit(ctx, src)); quit {
			return nil
		}
	}
}

// handle prints reply and performs its action. It reports whether the
// session should end.
func (p *plain) handle(ctx context.Context, reply Reply) bool {
	switch reply.Action {
	case ActionQuit:
		return true

	case ActionClear:
		fmt.Fprint(p.out, clearScreen)

	case ActionEdit:
		if err := p.edit(ctx); err != nil && !errors.Is(err, ErrEditDeclined) {
			fmt.Fprintln(p.errOut, "error:", err)
		}
	}

	if reply.Err != nil {
		fmt.Fprintln(p.errOut, "error:", reply.Err)
	}

	if reply.Output != "" {
		fmt.Fprintln(p.out, reply.Output)
	}

	return false
}

// read reads one submission. A statement continues onto further lines while
// it has unclosed braces. Aborting a continuation line discards the whole
// statement.
func (p *plain) read() (string, error) {
	var b strings.Builder

	prompt := linePrompt

	for {
		line, err := p.reader.Prompt(prompt)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}

			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ctrlPrefix) ||
			!unclosed(src) {
			return src, nil
		}

		prompt = contPrompt
	}
}

// unclosed reports whether src opens more braces than it closes.
func unclosed(src string) bool {
	return strings.Count(src, "{") > strings.Count(src, "}")
}

// historyLines splits a statement into the non-blank lines it was typed as.
// A recalled multi-line statement is entered again line by line.
func historyLines(s string) []string {
	var lines []string

	for line := range strings.Lines(s) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
