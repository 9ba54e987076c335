package pager

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kk-code-lab/cless/internal/textutil"
)

const testClear = "<CLR>"

func numberedLines(n int) *textutil.LineSequence {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	return textutil.NewLineSequence(lines...)
}

func newTestSession(lineCount, termLines int, input string, out *bytes.Buffer) *Session {
	caps := Capabilities{Clear: testClear, Lines: termLines}
	return NewSession(numberedLines(lineCount), strings.NewReader(input), out, caps, Options{LineNumbers: true})
}

func TestHandleKeyScrollsWithinBounds(t *testing.T) {
	s := newTestSession(30, 11, "", &bytes.Buffer{})
	if s.ViewHeight() != 10 {
		t.Fatalf("ViewHeight=%d want 10", s.ViewHeight())
	}

	s.HandleKey('k')
	if s.StartLine() != 0 {
		t.Fatalf("scroll up at top should be a no-op, got %d", s.StartLine())
	}

	for i := 0; i < 50; i++ {
		s.HandleKey('j')
	}
	if s.StartLine() != 20 {
		t.Fatalf("expected to stop at line_count-view_height=20, got %d", s.StartLine())
	}
	s.HandleKey('j')
	if s.StartLine() != 20 {
		t.Fatalf("scroll down at bottom should be a no-op, got %d", s.StartLine())
	}

	s.HandleKey('k')
	if s.StartLine() != 19 {
		t.Fatalf("expected scroll up to 19, got %d", s.StartLine())
	}
}

func TestHandleKeyShortFileNeverScrolls(t *testing.T) {
	s := newTestSession(3, 25, "", &bytes.Buffer{})
	for _, key := range []byte("jjjkj") {
		s.HandleKey(key)
		if s.StartLine() != 0 {
			t.Fatalf("file shorter than the screen scrolled to %d after %q", s.StartLine(), key)
		}
	}
}

func TestHandleKeyIgnoresOtherBytes(t *testing.T) {
	s := newTestSession(30, 11, "", &bytes.Buffer{})
	s.HandleKey('j')
	for _, key := range []byte("JKQx \r\n\x1b[A\x00") {
		if quit := s.HandleKey(key); quit {
			t.Fatalf("key %q should not quit", key)
		}
		if s.StartLine() != 1 {
			t.Fatalf("key %q changed start line to %d", key, s.StartLine())
		}
	}
}

func TestHandleKeyQuitFromAnyOffset(t *testing.T) {
	for offset := 0; offset <= 20; offset++ {
		s := newTestSession(30, 11, "", &bytes.Buffer{})
		for i := 0; i < offset; i++ {
			s.HandleKey('j')
		}
		if !s.HandleKey('q') {
			t.Fatalf("q did not quit at offset %d", offset)
		}
	}
}

func TestRunRendersBeforeEveryKeyButQuit(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(30, 11, "jjxkq", &out)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.StartLine() != 1 {
		t.Fatalf("StartLine=%d want 1", s.StartLine())
	}
	if frames := strings.Count(out.String(), testClear); frames != 5 {
		t.Fatalf("expected 5 frames, got %d", frames)
	}
	last := out.String()[strings.LastIndex(out.String(), testClear):]
	if !strings.HasPrefix(last, testClear+"2 line-1\n") {
		t.Fatalf("last frame should start at line 2, got %q", last)
	}
	if !strings.HasSuffix(last, ": (lines 11/29)") {
		t.Fatalf("unexpected status in last frame %q", last)
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(5, 11, "j", &out)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames := strings.Count(out.String(), testClear); frames != 2 {
		t.Fatalf("expected 2 frames, got %d", frames)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("tty gone")
}

func TestRunReturnsReadErrors(t *testing.T) {
	s := NewSession(numberedLines(3), failingReader{}, &bytes.Buffer{}, Capabilities{Lines: 5}, Options{})
	if err := s.Run(); err == nil || err.Error() != "tty gone" {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestRunClampsAfterResize(t *testing.T) {
	var out bytes.Buffer
	lines := 11
	s := NewSession(numberedLines(30), strings.NewReader(strings.Repeat("j", 25)+"q"), &out,
		Capabilities{Clear: testClear, Lines: 11}, Options{
			Size: func() (int, int, bool) { return 0, lines, true },
		})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.StartLine() != 20 {
		t.Fatalf("StartLine=%d want 20", s.StartLine())
	}

	lines = 21
	if err := s.render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if s.StartLine() != 10 {
		t.Fatalf("expected offset clamped to 10 after growing the window, got %d", s.StartLine())
	}
}

func TestNewSessionWithoutLines(t *testing.T) {
	s := NewSession(nil, strings.NewReader("jq"), &bytes.Buffer{}, Capabilities{Lines: 3}, Options{})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.StartLine() != 0 {
		t.Fatalf("StartLine=%d want 0", s.StartLine())
	}
}

func TestRedrawRepaintsCurrentView(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(30, 11, "", &out)
	s.HandleKey('j')
	s.HandleKey('j')
	if err := s.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if got := out.String(); !strings.HasPrefix(got, testClear+"3 line-2\n") || !strings.HasSuffix(got, ": (lines 12/29)") {
		t.Fatalf("unexpected frame %q", got)
	}
}
