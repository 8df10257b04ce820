package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/eldiro/cli/cmd"
	"github.com/ardnew/eldiro/log"
)

func noExit(t *testing.T) func(int) {
	return func(code int) { t.Fatalf("unexpected exit with code %d", code) }
}

func TestNewParser_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "repl"},
		{[]string{"--plain"}, "repl"},
		{[]string{"eval", "1"}, "eval <statement>"},
		{[]string{"run"}, "run"},
		{[]string{"fmt", "-f", "json"}, "fmt"},
		{[]string{"init", "--force"}, "init"},
	}

	for _, tt := range tests {
		var cli CLI

		parser, err := newParser(t.Context(), &cli, noExit(t))
		if err != nil {
			t.Fatalf("newParser: %v", err)
		}

		ktx, err := parser.Parse(tt.args)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.args, err)
		}

		if got := ktx.Command(); got != tt.want {
			t.Errorf("Parse(%q).Command() = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestNewParser_RunsCommand(t *testing.T) {
	var (
		cli CLI
		out bytes.Buffer
	)

	ctx := cmd.WithOutput(t.Context(), &out)

	parser, err := newParser(ctx, &cli, noExit(t))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}

	ktx, err := parser.Parse([]string{"eval", "let x = 6 * 7", "x"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := ktx.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := out.String(), "()\n42\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewParser_Configuration(t *testing.T) {
	saved := log.Default()
	t.Cleanup(func() { log.SetDefault(saved) })

	path := filepath.Join(t.TempDir(), baseConfig)

	src := "let historyLimit = 25\nlet logCaller = 1\nlet plain = 0\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantLimit int
		wantPlain bool
	}{
		{"from file", nil, 25, false},
		{"flags override", []string{"repl", "--history-limit=5", "--plain"}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI

			parser, err := newParser(t.Context(), &cli, noExit(t),
				kong.Configuration(resolve(t.Context()), path))
			if err != nil {
				t.Fatalf("newParser: %v", err)
			}

			if _, err := parser.Parse(tt.args); err != nil {
				t.Fatalf("Parse(%q): %v", tt.args, err)
			}

			if cli.Repl.HistoryLimit != tt.wantLimit {
				t.Errorf("HistoryLimit = %d, want %d", cli.Repl.HistoryLimit, tt.wantLimit)
			}

			if cli.Repl.Plain != tt.wantPlain {
				t.Errorf("Plain = %v, want %v", cli.Repl.Plain, tt.wantPlain)
			}

			if !cli.Log.Caller {
				t.Error("Caller = false, want true from configuration")
			}
		})
	}
}
