//go:build !windows

package app

import (
	"bytes"
	"os"
	"syscall"
	"testing"

	pagerui "github.com/kk-code-lab/cless/internal/ui/pager"
)

func stubStop(t *testing.T) *int {
	t.Helper()
	original := stopProcess
	t.Cleanup(func() {
		stopProcess = original
	})
	stops := 0
	stopProcess = func() error {
		stops++
		return nil
	}
	return &stops
}

func TestHandleSignalSuspendBeforeEnterOnlyStops(t *testing.T) {
	stops := stubStop(t)
	var screen bytes.Buffer
	tty := pagerui.NewTerminal(os.Stdin, &screen)

	redraws := 0
	code, exit := handleSignal(syscall.SIGTSTP, tty, func() error {
		redraws++
		return nil
	})
	if exit || code != 0 {
		t.Fatalf("handleSignal=(%d,%v) want (0,false)", code, exit)
	}
	if *stops != 1 || redraws != 0 {
		t.Fatalf("stops=%d redraws=%d want 1/0", *stops, redraws)
	}
	if screen.Len() != 0 {
		t.Fatalf("terminal was not entered, yet output %q", screen.String())
	}
}

func TestHandleSignalSuspendRestoresScreenBeforeStopping(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	var screen bytes.Buffer
	tty := pagerui.NewTerminal(r, &screen)
	_ = tty.Enter()

	original := stopProcess
	t.Cleanup(func() {
		stopProcess = original
	})
	var atStop string
	stopProcess = func() error {
		atStop = screen.String()
		return nil
	}

	// Raw mode cannot be re-entered on a pipe, so resuming fails and the
	// terminal is released.
	code, exit := handleSignal(syscall.SIGTSTP, tty, func() error { return nil })
	if !exit || code != 1 {
		t.Fatalf("handleSignal=(%d,%v) want (1,true)", code, exit)
	}
	if atStop != "\x1b[?1049h\x1b[?1049l" {
		t.Fatalf("primary screen not restored before stopping: %q", atStop)
	}
	if got := screen.String(); got != "\x1b[?1049h\x1b[?1049l\x1b[?1049h\x1b[?1049l" {
		t.Fatalf("unexpected screen sequence %q", got)
	}
}

func TestSignalExitCode(t *testing.T) {
	if got := signalExitCode(syscall.SIGTERM); got != 128+int(syscall.SIGTERM) {
		t.Fatalf("signalExitCode(SIGTERM)=%d", got)
	}
}
