package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-apply-retry loop.
// It formats the session's definitions to a temp file, opens the user's
// editor, and replaces the session environment with the result. If the
// result does not parse or evaluate, the user is prompted to re-edit;
// declining ends the loop with [ErrEditDeclined].
type editCommand struct {
	session *Session
	ctxFunc func() context.Context
	logger  log.Logger
	applied bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newEditCommand(ctx context.Context, s *Session) *editCommand {
	return &editCommand{
		session: s,
		ctxFunc: func() context.Context { return ctx },
		logger:  s.logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An empty file cancels the edit and leaves the
// session unchanged.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := lang.Format(ctx, &buf, c.session.Program()); err != nil {
		return fmt.Errorf("format definitions: %w", err)
	}

	content := buf.String()

	f, err := os.CreateTemp(os.TempDir(), "eldiro-repl-*.eld")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	in := bufio.NewScanner(c.stdin)

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		applyErr := c.apply(ctx, string(data))
		c.logger.TraceContext(
			ctx,
			"editor apply attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", applyErr == nil),
		)

		if applyErr == nil {
			c.applied = true

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", applyErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !in.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(in.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = string(data)
	}
}

func (c *editCommand) apply(ctx context.Context, src string) error {
	prog, err := lang.ParseProgram(ctx, src, lang.WithLogger(c.logger))
	if err != nil {
		return err
	}

	return c.session.Replace(prog)
}

// runEditor launches the user's editor on the file at path and returns the
// edited content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	// EDITOR may carry arguments, as in "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
