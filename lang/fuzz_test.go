package lang

import (
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"1 + 2",
		"let x = 10 / 2",
		"{ let y = 1 y }",
		"fn add x y => { x }",
		"add 1 2",
		"1 / 0",
		"{",
		"}}}",
		"let",
		"99999999999999999999",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		parsed, err := Parse(t.Context(), src)
		if err != nil {
			return
		}

		// Evaluation may fail but must not panic.
		_, _ = parsed.Eval(NewEnv())

		// Canonical output must parse back to the same text.
		again, err := Parse(t.Context(), parsed.String())
		if err != nil {
			t.Fatalf("canonical form %q of %q does not parse: %v", parsed.String(), src, err)
		}

		if again.String() != parsed.String() {
			t.Fatalf("canonical form is not stable: %q != %q", again.String(), parsed.String())
		}
	})
}
