package repl

import (
	"testing"
)

func TestModel_HistoryMove(t *testing.T) {
	history := NewHistory("", 0)

	for _, entry := range []struct {
		line string
		mode inputMode
	}{
		{"let a = 1", modeEval},
		{"env", modeCtrl},
		{"{\nlet y = a\ny\n}", modeEval},
	} {
		if _, err := history.WriteWithMode(entry.line, entry.mode); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		moves    []int
		inMode   bool
		wantLine string
		wantIdx  int
		wantMode inputMode
	}{
		{"skips multi-line", []int{-1}, false, "env", 1, modeCtrl},
		{"older entry", []int{-1, -1}, false, "let a = 1", 0, modeEval},
		{"within mode", []int{-1}, true, "let a = 1", 0, modeEval},
		{"past newest", []int{-1, 1, 1}, false, "", 3, modeCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t.Context(), NewSession(testLogger(), history))

			for _, dir := range tt.moves {
				m = m.historyMove(dir, tt.inMode)
			}

			if got := m.input.Value(); got != tt.wantLine {
				t.Errorf("input = %q, want %q", got, tt.wantLine)
			}

			if m.historyIdx != tt.wantIdx {
				t.Errorf("historyIdx = %d, want %d", m.historyIdx, tt.wantIdx)
			}

			if m.mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", m.mode, tt.wantMode)
			}
		})
	}
}
