package pager

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2/terminfo"
	// Registers the built-in terminal descriptions LookupTerminfo searches.
	_ "github.com/gdamore/tcell/v2/terminfo/extended"
)

const defaultTermLines = 24

var terminfoLookup = terminfo.LookupTerminfo

// Capabilities are the terminal properties the pager needs from terminfo.
type Capabilities struct {
	Clear   string
	Lines   int
	Columns int
}

// CapabilityError reports that no usable description exists for a terminal type.
type CapabilityError struct {
	Term string
	Err  error
}

func (e *CapabilityError) Error() string {
	if e.Term == "" {
		return fmt.Sprintf("terminal capabilities: %v", e.Err)
	}
	return fmt.Sprintf("terminal capabilities for %q: %v", e.Term, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// LookupCapabilities resolves the clear-screen sequence and screen size for
// the terminal type name, normally the value of $TERM.
func LookupCapabilities(name string) (Capabilities, error) {
	if name == "" {
		return Capabilities{}, &CapabilityError{Err: errors.New("TERM is not set")}
	}
	ti, err := terminfoLookup(name)
	if err != nil {
		return Capabilities{}, &CapabilityError{Term: name, Err: err}
	}
	if ti.Clear == "" {
		return Capabilities{}, &CapabilityError{Term: name, Err: errors.New("no clear-screen capability")}
	}
	return Capabilities{
		Clear:   ti.Clear,
		Lines:   ti.Lines,
		Columns: ti.Columns,
	}, nil
}

// WithSize returns a copy with the live window size applied. Non-positive
// values keep the terminfo defaults.
func (c Capabilities) WithSize(columns, lines int) Capabilities {
	if columns > 0 {
		c.Columns = columns
	}
	if lines > 0 {
		c.Lines = lines
	}
	return c
}

// ViewHeight is the number of content rows: every line but the status line.
func (c Capabilities) ViewHeight() int {
	lines := c.Lines
	if lines <= 0 {
		lines = defaultTermLines
	}
	if lines < 2 {
		return 1
	}
	return lines - 1
}
