package pager

import (
	"errors"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
)

var (
	termGetSize  = term.GetSize
	rawModeEnter = EnterRawMode
	rawModeExit  = ExitRawMode
)

var errTerminalReleased = errors.New("terminal already released")

// Terminal owns the controlling terminal for the length of a paging session.
// Enter switches to the alternate screen and raw mode; Release undoes both
// exactly once. Suspend and Resume hand the terminal back to the shell
// around a job-control stop. All methods are safe to call from a signal
// handling goroutine while another goroutine is reading input.
type Terminal struct {
	input   *os.File
	output  io.Writer
	ownsTTY bool

	mu        sync.Mutex
	settings  *TerminalSettings
	entered   bool
	suspended bool
	released  bool

	releaseErr error
}

// OpenTerminal opens /dev/tty so keystrokes are read from the terminal even
// when stdin is redirected. Windows falls back to the standard streams.
func OpenTerminal() (*Terminal, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return nil, err
		}
		return NewTerminal(os.Stdin, os.Stdout), nil
	}
	t := NewTerminal(tty, tty)
	t.ownsTTY = true
	return t, nil
}

// NewTerminal wraps an already open input and output pair.
func NewTerminal(input *os.File, output io.Writer) *Terminal {
	return &Terminal{input: input, output: output}
}

// Input returns the stream keystrokes arrive on.
func (t *Terminal) Input() io.Reader {
	return t.input
}

// Output returns the stream frames are painted to.
func (t *Terminal) Output() io.Writer {
	return t.output
}

// Size reports the live window size of the terminal.
func (t *Terminal) Size() (columns, lines int, ok bool) {
	if t.input == nil {
		return 0, 0, false
	}
	columns, lines, err := termGetSize(int(t.input.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return columns, lines, true
}

// Enter switches to the alternate screen buffer and then to raw input mode.
// If raw mode fails the alternate screen is still active; call Release.
func (t *Terminal) Enter() error {
	if t.input == nil || t.output == nil {
		return errors.New("no tty available")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return errTerminalReleased
	}
	return t.enterLocked()
}

func (t *Terminal) enterLocked() error {
	if _, err := io.WriteString(t.output, enterAltScreen); err != nil {
		return err
	}
	t.entered = true

	settings, err := rawModeEnter(int(t.input.Fd()))
	if err != nil {
		return err
	}
	t.settings = settings
	return nil
}

// leaveLocked restores the saved settings and returns to the primary screen.
func (t *Terminal) leaveLocked() error {
	var errs []error
	if t.settings != nil {
		errs = append(errs, rawModeExit(t.settings))
		t.settings = nil
	}
	if t.entered {
		_, err := io.WriteString(t.output, exitAltScreen)
		errs = append(errs, err)
		t.entered = false
	}
	return errors.Join(errs...)
}

// Suspend gives the terminal back to the shell before the process stops:
// the original settings are restored and the primary screen is shown. It
// reports whether there was anything to hand back.
func (t *Terminal) Suspend() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || t.suspended {
		return false, nil
	}
	if !t.entered && t.settings == nil {
		return false, nil
	}
	t.suspended = true
	return true, t.leaveLocked()
}

// Resume takes the terminal back after Suspend, switching to the alternate
// screen and raw mode again. The caller repaints.
func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || !t.suspended {
		return nil
	}
	t.suspended = false
	return t.enterLocked()
}

// Release restores the saved terminal settings, returns to the primary
// screen buffer, and closes the tty if OpenTerminal opened it. Later calls
// return the first result.
func (t *Terminal) Release() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return t.releaseErr
	}
	t.released = true

	errs := []error{t.leaveLocked()}
	if t.ownsTTY {
		errs = append(errs, t.input.Close())
	}
	t.releaseErr = errors.Join(errs...)
	return t.releaseErr
}
