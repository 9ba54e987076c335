package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop distance used when rendering lines.
const DefaultTabWidth = 4

const ellipsis = "…"

// narrowCells measures ambiguous-width runes as one cell regardless of locale.
var narrowCells = &runewidth.Condition{StrictEmojiNeutral: true}

// ExpandTabs moves each tab to the next multiple of tabWidth columns.
// Columns are counted per grapheme cluster, so wide and combined characters
// advance the stop correctly.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || strings.IndexByte(text, '\t') < 0 {
		return text
	}

	out := make([]byte, 0, len(text)+tabWidth)
	column := 0
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			pad := tabWidth - column%tabWidth
			for i := 0; i < pad; i++ {
				out = append(out, ' ')
			}
			column += pad
			state = -1
			continue
		}
		out = append(out, cluster...)
		column += max(width, 1)
	}
	return string(out)
}

// SanitizeTerminalText replaces control characters so file content cannot
// inject terminal escape sequences when rendered. Tabs become a single space.
func SanitizeTerminalText(text string) string {
	if !needsSanitizing(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case isControlRune(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(text string) bool {
	for _, r := range text {
		if r == '\t' || isControlRune(r) {
			return true
		}
	}
	return false
}

func isControlRune(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// DisplayWidth reports the printable width of text accounting for wide runes
// and grapheme clusters.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// TruncateToWidth shortens text to fit width columns, marking the cut with an
// ellipsis.
func TruncateToWidth(text string, width int) string {
	switch {
	case width <= 0:
		return ""
	case DisplayWidth(text) <= width:
		return text
	case width == 1:
		return ellipsis
	}
	return narrowCells.Truncate(text, width, ellipsis)
}

// WrapToWidth breaks text into rows of at most width columns without
// splitting grapheme clusters. Nothing is dropped: joining the rows gives text
// back. A cluster wider than width gets a row of its own. Empty text and
// width <= 0 yield a single row.
func WrapToWidth(text string, width int) []string {
	if width <= 0 || DisplayWidth(text) <= width {
		return []string{text}
	}

	var rows []string
	rowStart, pos, column := 0, 0, 0
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if column > 0 && column+w > width {
			rows = append(rows, text[rowStart:pos])
			rowStart, column = pos, 0
		}
		pos += len(cluster)
		column += w
	}
	return append(rows, text[rowStart:])
}

// DisplayRows prepares a stored line for the terminal: tabs are expanded,
// control characters neutralised, and the result wrapped into rows of width
// columns. A width of zero or less keeps the line on one row.
func DisplayRows(text string, tabWidth, width int) []string {
	return WrapToWidth(SanitizeTerminalText(ExpandTabs(text, tabWidth)), width)
}
