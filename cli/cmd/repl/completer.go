package repl

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/eldiro/lang"
)

// keywords begin a definition and complete alongside names.
var keywords = []string{"let", "fn"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, operators, braces, and the characters of "=" and
// "=>".
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n',
		'+', '-', '*', '/',
		'{', '}', '=', '>':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the words that complete input in the given mode.
func candidates(env *lang.Env, mode inputMode) []string {
	if mode == modeCtrl {
		names := make([]string, len(ctrlCommands))
		for i, c := range ctrlCommands {
			names[i] = c.name
		}

		return names
	}

	return append(env.Names(), keywords...)
}

// findMatches ranks the candidates for word, best first.
// An empty word matches nothing.
func findMatches(word string, cands []string) fuzzy.Matches {
	if word == "" || len(cands) == 0 {
		return nil
	}

	return fuzzy.Find(word, cands)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor along with the word boundaries.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	word, ws, we := wordBounds(m.input.Value(), m.input.Position())

	return findMatches(word, candidates(m.session.Env(), m.mode)), ws, we
}

// lineCompleter completes the word under the cursor in line mode, where a
// leading colon selects control commands.
func lineCompleter(
	s *Session,
) func(line string, pos int) (head string, completions []string, tail string) {
	return func(line string, pos int) (string, []string, string) {
		mode, prefix := modeEval, ""

		if rest, ok := strings.CutPrefix(line, ctrlPrefix); ok && pos > 0 {
			mode, prefix = modeCtrl, ctrlPrefix
			line, pos = rest, pos-len(ctrlPrefix)
		}

		word, start, end := wordBounds(line, pos)

		var completions []string
		for _, match := range findMatches(word, candidates(s.Env(), mode)) {
			completions = append(completions, match.Str)
		}

		return prefix + line[:start], completions, line[end:]
	}
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	env *lang.Env,
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected, arity(env, match.Str))
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// arity returns the parameter count of the function named name, or -1 if
// name is not a function.
func arity(env *lang.Env, name string) int {
	params, _, err := env.GetFunc(name)
	if err != nil {
		return -1
	}

	return len(params)
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are suffixed with their arity, which is not part of
// the completion.
func renderCandidate(match fuzzy.Match, selected bool, arity int) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	if arity >= 0 {
		b.WriteString(hintStyle.Render("/" + strconv.Itoa(arity)))
	}

	return b.String()
}
