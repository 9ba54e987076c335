package pager

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/cless/internal/textutil"
)

// RenderOptions controls how a frame is painted.
type RenderOptions struct {
	Clear       string // clear-screen sequence written before the frame
	Width       int    // terminal columns; longer rows are wrapped when > 0
	TabWidth    int
	LineNumbers bool
}

// Render paints lines [startLine, startLine+viewHeight) clipped to the
// sequence, prefixed with their 1-indexed number, followed by the status
// line. A line wider than the terminal continues on the next row under its
// text, and painting stops once viewHeight rows are used. The whole frame is
// written with a single Write.
func Render(w io.Writer, lines *textutil.LineSequence, startLine, viewHeight int, opts RenderOptions) error {
	var b strings.Builder
	b.WriteString(opts.Clear)

	total := lines.Len()
	if startLine < 0 {
		startLine = 0
	}
	end := startLine + viewHeight
	if end > total {
		end = total
	}
	rows := 0
	for i := startLine; i < end && rows < viewHeight; i++ {
		prefix := ""
		if opts.LineNumbers {
			prefix = strconv.Itoa(i+1) + " "
		}
		for j, row := range textutil.DisplayRows(lines.Line(i), opts.TabWidth, rowWidth(opts.Width, len(prefix))) {
			if rows == viewHeight {
				break
			}
			if j == 0 {
				b.WriteString(prefix)
			} else {
				b.WriteString(strings.Repeat(" ", len(prefix)))
			}
			b.WriteString(row)
			b.WriteByte('\n')
			rows++
		}
	}

	status := statusLine(startLine, viewHeight, total)
	if opts.Width > 0 {
		status = textutil.TruncateToWidth(status, opts.Width)
	}
	b.WriteString(status)

	_, err := io.WriteString(w, b.String())
	return err
}

// statusLine reports the bottom visible line against the index of the last
// line, so a 10-line file scrolled to the end reads "10/9".
func statusLine(startLine, viewHeight, total int) string {
	bottom := startLine + viewHeight
	if bottom > total {
		bottom = total
	}
	return fmt.Sprintf(": (lines %d/%d)", bottom, total-1)
}

func rowWidth(width, prefix int) int {
	if width <= 0 {
		return 0
	}
	if avail := width - prefix; avail > 0 {
		return avail
	}
	return 1
}
