package strings

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultDetailWidth is the width event details are shortened to in summaries.
const DefaultDetailWidth = 100

// MinTruncateLen is the minimum maxLen value for Truncate.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// ShortenPlaceholder is appended by Shorten when words were dropped.
const ShortenPlaceholder = " [...]"

// Truncate truncates a string to maxLen characters and ensures single-line output.
// It collapses every run of whitespace (including newlines) into a single space
// and adds "..." if truncated. Truncation operates on runes, so multi-byte
// characters are never split.
//
// If maxLen is less than MinTruncateLen it is clamped to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// Shorten collapses whitespace and, when the result is still longer than
// width, drops whole words from the end until the remaining words plus
// ShortenPlaceholder fit. A first word that alone is too long yields just
// the trimmed placeholder.
func Shorten(s string, width int) string {
	words := strings.Fields(s)
	joined := strings.Join(words, " ")
	if len([]rune(joined)) <= width {
		return joined
	}

	placeholder := len([]rune(ShortenPlaceholder))
	var b strings.Builder
	length := 0
	for _, w := range words {
		n := len([]rune(w))
		if length > 0 {
			n++
		}
		if length+n+placeholder > width {
			break
		}
		if length > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		length += n
	}
	if length == 0 {
		return strings.TrimSpace(ShortenPlaceholder)
	}
	return b.String() + ShortenPlaceholder
}

// Wrap word-wraps s at width and indents every line after the first by
// indent spaces, so the result can be placed in the last column of a
// fixed-width row.
func Wrap(s string, width, indent int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(text.WrapSoft(s, width), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n"+strings.Repeat(" ", indent))
}
