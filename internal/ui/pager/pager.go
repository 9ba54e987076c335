package pager

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/kk-code-lab/cless/internal/textutil"
)

// Options tune a Session.
type Options struct {
	TabWidth    int
	LineNumbers bool
	// Size, when set, is polled before every frame for the live window size.
	Size func() (columns, lines int, ok bool)
}

// Session is the scroll state of one paging run: the lines being shown, the
// index of the top visible line, and the terminal it reads keys from.
type Session struct {
	lines  *textutil.LineSequence
	reader *bufio.Reader
	writer *bufio.Writer
	caps   Capabilities
	opts   Options

	mu        sync.Mutex
	startLine int
}

// NewSession prepares a session that reads keystrokes from in and paints
// frames to out. lines must hold at least one line.
func NewSession(lines *textutil.LineSequence, in io.Reader, out io.Writer, caps Capabilities, opts Options) *Session {
	if lines == nil || lines.Len() == 0 {
		lines = textutil.NewLineSequence()
	}
	return &Session{
		lines:  lines,
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
		caps:   caps,
		opts:   opts,
	}
}

// StartLine returns the index of the first visible line.
func (s *Session) StartLine() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLine
}

// ViewHeight returns the number of content rows per frame.
func (s *Session) ViewHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps.ViewHeight()
}

// Redraw repaints the current view. It may be called from another goroutine
// while Run is waiting for a key, for example after the terminal is resumed.
func (s *Session) Redraw() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

// Run paints a frame, waits for one keystroke, and repeats until the user
// quits or input ends.
func (s *Session) Run() error {
	for {
		if err := s.Redraw(); err != nil {
			return err
		}

		b, err := s.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if quit := s.HandleKey(b); quit {
			return nil
		}
	}
}

// HandleKey applies one keystroke and reports whether the session should end.
// j scrolls down, k scrolls up, q quits; anything else is ignored.
func (s *Session) HandleKey(b byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handleKey(b)
}

func (s *Session) handleKey(b byte) bool {
	switch b {
	case 'q':
		return true
	case 'j':
		if s.startLine < s.maxStartLine() {
			s.startLine++
		}
	case 'k':
		if s.startLine > 0 {
			s.startLine--
		}
	}
	return false
}

func (s *Session) maxStartLine() int {
	maxOffset := s.lines.Len() - s.caps.ViewHeight()
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

func (s *Session) updateSize() {
	if s.opts.Size == nil {
		return
	}
	if columns, lines, ok := s.opts.Size(); ok {
		s.caps = s.caps.WithSize(columns, lines)
	}
	if s.startLine > s.maxStartLine() {
		s.startLine = s.maxStartLine()
	}
}

func (s *Session) render() error {
	s.updateSize()
	err := Render(s.writer, s.lines, s.startLine, s.caps.ViewHeight(), RenderOptions{
		Clear:       s.caps.Clear,
		Width:       s.caps.Columns,
		TabWidth:    s.opts.TabWidth,
		LineNumbers: s.opts.LineNumbers,
	})
	if err != nil {
		return err
	}
	return s.writer.Flush()
}
