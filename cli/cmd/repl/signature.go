package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/eldiro/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside the argument list
}

// detectFunctionCall reports the call whose arguments the cursor is in.
//
// Calls take every following expression as an argument, so the innermost
// call to the left of the cursor is the current one. A word completes an
// argument once a boundary follows it; an operator joins its operands into
// one argument. Braces open a scope whose calls end at the closing brace,
// and definitions reset detection until their "=" or "=>".
func detectFunctionCall(
	input string,
	cursor int,
	isFunc func(name string) bool,
) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	var (
		call     functionCall
		outer    []functionCall
		defining bool
		start    = -1
	)

	complete := func(word string) {
		switch {
		case word == "let" || word == "fn":
			defining = true
			call = functionCall{}

		case defining:
			// names and parameters being defined

		case isFunc(word):
			call = functionCall{name: word, inCall: true}

		case call.inCall:
			call.argIndex++
		}
	}

	for i, r := range input[:cursor] {
		if !isWordBoundary(r) {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			complete(input[start:i])
			start = -1
		}

		switch r {
		case '+', '-', '*', '/':
			if call.inCall && call.argIndex > 0 {
				call.argIndex--
			}

		case '{':
			outer = append(outer, call)
			call, defining = functionCall{}, false

		case '}':
			if n := len(outer); n > 0 {
				call, outer = outer[n-1], outer[:n-1]
				if call.inCall {
					call.argIndex++
				}
			}

		case '=', '>':
			call, defining = functionCall{}, false
		}
	}

	return call
}

// signature returns the parameters of the function named name.
func signature(env *lang.Env, name string) ([]string, bool) {
	params, _, err := env.GetFunc(name)
	if err != nil {
		return nil, false
	}

	return params, true
}

// renderSignatureHint renders the function name and its parameters with the
// current parameter highlighted.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))

	for i, param := range params {
		b.WriteString(signatureStyle.Render(" "))

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	return b.String()
}
