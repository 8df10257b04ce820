package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/eldiro/lang"
)

// TestRunRun tests that sources evaluate in order in one environment.
func TestRunRun(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "defs.eld", "let base = 40\nfn pick a b => b\n")
	use := writeFile(t, dir, "use.eld", "pick 0 base\n")
	bad := writeFile(t, dir, "bad.eld", "let a = 1\nmissing\n")
	broken := writeFile(t, dir, "broken.eld", "let a = 1\nlet = 2\n")

	tests := []struct {
		name    string
		run     Run
		stdin   string
		want    string
		wantErr error
	}{
		{
			name: "files",
			run:  Run{Sources: []string{defs, use}},
			want: "40\n",
		},
		{
			name:  "stdin after files",
			run:   Run{Sources: []string{"-", defs}},
			stdin: "{ let x = 2\n  x }\n",
			want:  "2\n",
		},
		{
			name: "definitions only",
			run:  Run{Sources: []string{defs}},
			want: "()\n",
		},
		{
			name: "quiet",
			run:  Run{Sources: []string{defs, use}, Quiet: true},
			want: "",
		},
		{
			name:    "eval error",
			run:     Run{Sources: []string{bad}},
			wantErr: lang.ErrBindingNotFound,
		},
		{
			name:    "parse error",
			run:     Run{Sources: []string{broken}},
			wantErr: lang.ErrUnconsumedInput,
		},
		{
			name:    "missing file",
			run:     Run{Sources: []string{dir + "/missing.eld"}},
			wantErr: ErrOpenSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithInput(WithOutput(t.Context(), &out), strings.NewReader(tt.stdin))

			err := tt.run.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run.Run() error = %v, want %v", err, tt.wantErr)
			}

			if out.String() != tt.want {
				t.Errorf("Run.Run() output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
