package lang

import (
	"log/slog"
	"strings"
)

// This file holds the text-scanning primitives every parser in the package
// is composed from. Each one takes the remaining input and returns the
// unconsumed remainder first, followed by whatever was matched. None of them
// keep state or modify their input.

// Parser is the shape shared by all fallible parse steps.
type Parser[T any] func(s string) (string, T, error)

// Tag consumes lit from the front of s and returns the remainder.
// The match is exact and case-sensitive; no whitespace is skipped.
func Tag(lit, s string) (string, error) {
	rest, ok := strings.CutPrefix(s, lit)
	if !ok {
		return s, ErrExpectedLiteral.Reason("expected " + lit).
			With(slog.String("literal", lit))
	}

	return rest, nil
}

// TakeWhile splits s before the first rune for which accept is false.
// It always succeeds, possibly with an empty match.
func TakeWhile(accept func(rune) bool, s string) (string, string) {
	end := len(s)

	for i, r := range s {
		if !accept(r) {
			end = i

			break
		}
	}

	return s[end:], s[:end]
}

// TakeWhileRequired is [TakeWhile] but fails with err when nothing matched.
func TakeWhileRequired(
	accept func(rune) bool,
	s string,
	err error,
) (string, string, error) {
	rest, matched := TakeWhile(accept, s)
	if matched == "" {
		return s, "", err
	}

	return rest, matched, nil
}

// ExtractDigits consumes a non-empty run of ASCII digits.
func ExtractDigits(s string) (string, string, error) {
	return TakeWhileRequired(isDigit, s, ErrExpectedDigits)
}

// ExtractWhitespace consumes any run of spaces, tabs and newlines.
func ExtractWhitespace(s string) (string, string) {
	return TakeWhile(isWhitespace, s)
}

// ExtractWhitespaceRequired consumes a non-empty run of whitespace.
func ExtractWhitespaceRequired(s string) (string, string, error) {
	return TakeWhileRequired(isWhitespace, s, ErrExpectedWhitespace)
}

// ExtractSpaces consumes a run of space characters only.
// Function call arguments are separated this way, so a call never spans lines.
func ExtractSpaces(s string) (string, string) {
	return TakeWhile(func(r rune) bool { return r == ' ' }, s)
}

// ExtractIdentifier consumes an ASCII letter followed by any run of ASCII
// letters and digits.
func ExtractIdentifier(s string) (string, string, error) {
	if s == "" || !isAlpha(rune(s[0])) {
		return s, "", ErrExpectedIdentifier
	}

	rest, ident := TakeWhile(isAlphanumeric, s)

	return rest, ident, nil
}

// Sequence applies item repeatedly, consuming separator after each success,
// and stops without error at the first failure of item.
// The separator that follows the last item is consumed too.
func Sequence[T any](
	item func(string) (string, T, error),
	separator func(string) (string, string),
	s string,
) (string, []T) {
	var items []T

	for {
		rest, it, err := item(s)
		if err != nil {
			return s, items
		}

		items = append(items, it)
		s, _ = separator(rest)
	}
}

// SequenceRequired is [Sequence] but fails when no item was parsed.
func SequenceRequired[T any](
	item func(string) (string, T, error),
	separator func(string) (string, string),
	s string,
) (string, []T, error) {
	rest, items := Sequence(item, separator, s)
	if len(items) == 0 {
		return s, nil, ErrEmptySequence
	}

	return rest, items, nil
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isAlphanumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }
