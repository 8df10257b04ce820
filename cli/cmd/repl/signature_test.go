package repl

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDetectFunctionCall(t *testing.T) {
	isFunc := func(name string) bool {
		return name == "pick" || name == "add"
	}

	tests := []struct {
		name       string
		input      string
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no function call", "limit", "", 0, false},
		{"typing function name", "pick", "", 0, false},
		{"first arg", "pick ", "pick", 0, true},
		{"typing first arg", "pick 1", "pick", 0, true},
		{"second arg", "pick 1 ", "pick", 1, true},
		{"typing second arg", "pick 1 2", "pick", 1, true},
		{"operation joins operands", "pick 1 + ", "pick", 0, true},
		{"operation without spaces", "pick 1+2 ", "pick", 1, true},
		{"innermost call", "pick 1 add ", "add", 0, true},
		{"block argument", "pick { 1 } ", "pick", 1, true},
		{"call inside block", "pick { add ", "add", 0, true},
		{"block closes inner call", "pick { add 1 } ", "pick", 1, true},
		{"binding resets", "let x = ", "", 0, false},
		{"call in binding", "let x = pick ", "pick", 0, true},
		{"function parameters", "fn pick a ", "", 0, false},
		{"function body", "fn twice n => add ", "add", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, len(tt.input), isFunc)
			if got.name != tt.wantName ||
				got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q) = %+v, want {%s %d %v}",
					tt.input, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestDetectFunctionCall_Cursor(t *testing.T) {
	isFunc := func(name string) bool { return name == "pick" }

	got := detectFunctionCall("pick 1 2", 5, isFunc)
	if !got.inCall || got.argIndex != 0 {
		t.Errorf("cursor on first arg = %+v, want arg 0 of pick", got)
	}

	got = detectFunctionCall("pick", 100, isFunc)
	if got.inCall {
		t.Errorf("cursor past end = %+v, want no call", got)
	}
}

func TestSignature(t *testing.T) {
	env := testEnv(t)

	params, ok := signature(env, "pick")
	if !ok || strings.Join(params, " ") != "a b" {
		t.Errorf("signature(pick) = %v, %v, want [a b], true", params, ok)
	}

	if _, ok := signature(env, "limit"); ok {
		t.Error("signature(limit) ok = true, want false")
	}
}

func TestRenderSignatureHint(t *testing.T) {
	hint := renderSignatureHint("pick", []string{"a", "b"}, 1)

	for _, part := range []string{"pick", "a", "b"} {
		if !strings.Contains(hint, part) {
			t.Errorf("hint %q missing %q", hint, part)
		}
	}

	if w := lipgloss.Width(hint); w != len("pick a b") {
		t.Errorf("hint width = %d, want %d", w, len("pick a b"))
	}
}
