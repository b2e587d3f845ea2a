package render

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be detected.
const DefaultWidth = 100

// minColumnWidth is the narrowest a column is squeezed to when fitting a
// table into the terminal.
const minColumnWidth = 8

// ResolveWidth returns requested when positive, otherwise the width of the
// terminal attached to stdout, otherwise DefaultWidth.
func ResolveWidth(requested int) int {
	if requested > 0 {
		return requested
	}
	if w, ok := TerminalWidth(os.Stdout); ok {
		return w
	}
	return DefaultWidth
}

// TerminalWidth reports the column count of f when it is a terminal.
func TerminalWidth(f *os.File) (int, bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// fitColumns shrinks the widest columns until a bordered row of the given
// natural widths fits into total. It returns the per column maximum, or nil
// when the table already fits.
func fitColumns(natural []int, total int) []int {
	// "| " + cells joined by " | " + " |"
	overhead := 3*len(natural) + 1
	sum := overhead
	for _, w := range natural {
		sum += w
	}
	if sum <= total {
		return nil
	}

	widths := append([]int(nil), natural...)
	for sum > total {
		widest := -1
		for i, w := range widths {
			if w > minColumnWidth && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
		sum--
	}
	return widths
}
