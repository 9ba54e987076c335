package textutil

import (
	"bytes"
	"errors"
)

// DefaultMaxWidth is the width at which lines are hard-wrapped when no
// other width is configured.
const DefaultMaxWidth = 80

// ErrInvalidWidth is returned by SplitLines when the maximum width is not positive.
var ErrInvalidWidth = errors.New("max line width must be greater than zero")

// LineSequence is an ordered, indexable set of lines produced by SplitLines.
// It always holds at least one line.
type LineSequence struct {
	lines   []string
	wrapped []bool
}

// SplitLines partitions text into lines of at most maxWidth bytes.
//
// A delimiter byte ends the current line and is dropped. A line that reaches
// maxWidth bytes before a delimiter is closed as-is and the next byte starts
// the following line; no input is consumed by that break. A delimiter seen
// exactly when the line is full is still treated as a delimiter. Whatever is
// left at the end of input, even an empty string, becomes the last line.
func SplitLines(text []byte, delim byte, maxWidth int) (*LineSequence, error) {
	if maxWidth <= 0 {
		return nil, ErrInvalidWidth
	}

	estimate := bytes.Count(text, []byte{delim}) + len(text)/maxWidth + 1
	seq := &LineSequence{
		lines:   make([]string, 0, estimate),
		wrapped: make([]bool, 0, estimate),
	}

	start := 0
	for i := 0; i < len(text); {
		switch {
		case text[i] == delim:
			seq.push(text[start:i], false)
			i++
			start = i
		case i-start == maxWidth:
			seq.push(text[start:i], true)
			start = i
		default:
			i++
		}
	}
	seq.push(text[start:], false)
	return seq, nil
}

func (s *LineSequence) push(line []byte, wrapped bool) {
	s.lines = append(s.lines, string(line))
	s.wrapped = append(s.wrapped, wrapped)
}

// NewLineSequence builds a sequence from already split lines. An empty input
// yields a single empty line.
func NewLineSequence(lines ...string) *LineSequence {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &LineSequence{
		lines:   append([]string(nil), lines...),
		wrapped: make([]bool, len(lines)),
	}
}

// Len returns the number of lines.
func (s *LineSequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Line returns the line at idx, or "" when idx is out of range.
func (s *LineSequence) Line(idx int) string {
	if s == nil || idx < 0 || idx >= len(s.lines) {
		return ""
	}
	return s.lines[idx]
}

// HardWrapped reports whether the line at idx was closed by the width limit
// rather than by a delimiter.
func (s *LineSequence) HardWrapped(idx int) bool {
	if s == nil || idx < 0 || idx >= len(s.wrapped) {
		return false
	}
	return s.wrapped[idx]
}

// Join reassembles the original bytes: the delimiter is reinserted after every
// line that ended on one, hard-wrapped lines are concatenated directly.
func (s *LineSequence) Join(delim byte) []byte {
	if s == nil {
		return nil
	}
	var buf bytes.Buffer
	for i, line := range s.lines {
		buf.WriteString(line)
		if i < len(s.lines)-1 && !s.wrapped[i] {
			buf.WriteByte(delim)
		}
	}
	return buf.Bytes()
}
