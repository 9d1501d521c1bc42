// Package cli draws the boxed summaries the soak command prints.
package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	dividerLeft    = "┠"
	dividerMiddle  = "─"
	dividerRight   = "┨"
	ellipsis       = "…"
)

// Alignment of banner lines inside the box.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// DefaultTerminalWidth is used when stdout is not a terminal.
const DefaultTerminalWidth = 80

const borders = 2

// TerminalWidth returns the width of the terminal on stdout, or
// DefaultTerminalWidth.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return DefaultTerminalWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= borders {
		return DefaultTerminalWidth
	}

	return w
}

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	return dividerLeft + strings.Repeat(dividerMiddle, max(0, width-borders)) + dividerRight + "\n"
}

// Banner draws s inside a box of the given width. Each line of s becomes a
// row; rows that do not fit are cut and end with an ellipsis. It returns the
// empty string for an empty s or a width that leaves no room.
func Banner(s string, width int, alignment Alignment) string {
	inner := width - borders
	if s == "" || inner <= 0 {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	parts := make([]string, 0, len(lines)+borders)

	parts = append(parts, boxTopLeft+strings.Repeat(boxTop, inner)+boxTopRight)

	for _, l := range lines {
		parts = append(parts, boxSide+pad(l, inner, alignment)+boxSide)
	}

	parts = append(parts, boxBottomLeft+strings.Repeat(boxBottom, inner)+boxBottomRight)

	return strings.Join(parts, "\n")
}

// Status colors a PASS or FAIL label. Colors are dropped when stdout is not a
// terminal (see color.NoColor).
func Status(ok bool) string {
	if ok {
		return color.New(color.FgGreen, color.Bold).Sprint("PASS")
	}

	return color.New(color.FgRed, color.Bold).Sprint("FAIL")
}

// visibleWidth counts the runes that occupy a cell. ANSI escape sequences
// from Status are skipped.
func visibleWidth(s string) int {
	count := 0
	inEscape := false

	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case unicode.IsGraphic(r):
			count++
		}
	}

	return count
}

// truncate keeps the first n graphic runes of s.
func truncate(s string, n int) string {
	var b strings.Builder

	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			if count == n {
				break
			}

			count++
		}

		b.WriteRune(r)
	}

	return b.String()
}

func pad(text string, width int, alignment Alignment) string {
	length := visibleWidth(text)
	if length > width {
		text = truncate(text, width-1) + ellipsis
		length = width
	}

	diff := width - length

	switch alignment {
	case AlignCenter:
		left := diff / 2 //nolint:mnd
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", diff-left)
	case AlignRight:
		return strings.Repeat(" ", diff) + text
	default:
		return text + strings.Repeat(" ", diff)
	}
}

// Row formats a label and value for a Banner line.
func Row(label string, value any) string {
	return fmt.Sprintf("%-12s %v", label+":", value)
}
