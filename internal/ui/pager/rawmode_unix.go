//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pager

import "golang.org/x/sys/unix"

// TerminalSettings is the terminal configuration captured by EnterRawMode.
type TerminalSettings struct {
	fd      int
	termios unix.Termios
}

// EnterRawMode switches fd to non-canonical, non-echoing input and returns
// the previous configuration. Keystrokes are delivered one byte at a time
// with no read timeout; output processing and signal keys are left alone.
func EnterRawMode(fd int) (*TerminalSettings, error) {
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}

	raw := *orig
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermiosFlush, &raw); err != nil {
		return nil, err
	}
	return &TerminalSettings{fd: fd, termios: *orig}, nil
}

// ExitRawMode reapplies settings captured by EnterRawMode.
func ExitRawMode(settings *TerminalSettings) error {
	if settings == nil {
		return nil
	}
	return unix.IoctlSetTermios(settings.fd, ioctlWriteTermiosFlush, &settings.termios)
}
