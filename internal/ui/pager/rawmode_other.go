//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package pager

import "golang.org/x/term"

// TerminalSettings is the terminal configuration captured by EnterRawMode.
type TerminalSettings struct {
	fd    int
	state *term.State
}

// EnterRawMode puts fd into raw mode and returns the previous configuration.
func EnterRawMode(fd int) (*TerminalSettings, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &TerminalSettings{fd: fd, state: state}, nil
}

// ExitRawMode reapplies settings captured by EnterRawMode.
func ExitRawMode(settings *TerminalSettings) error {
	if settings == nil {
		return nil
	}
	return term.Restore(settings.fd, settings.state)
}
