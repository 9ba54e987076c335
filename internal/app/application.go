package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/kk-code-lab/cless/internal/config"
	fsutil "github.com/kk-code-lab/cless/internal/fs"
	"github.com/kk-code-lab/cless/internal/textutil"
	pagerui "github.com/kk-code-lab/cless/internal/ui/pager"
)

var (
	isTerminal = func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	openTerminal = pagerui.OpenTerminal
	exitProcess  = os.Exit
	stopProcess  = stopSelf
)

// Application is one paging run over a single file.
type Application struct {
	cfg    config.Config
	lines  *textutil.LineSequence
	stdout *os.File
	getenv func(string) string
}

// NewApplication loads and splits the file at path. Nothing touches the
// terminal until Run, so a failure here leaves the screen as it was.
func NewApplication(path string, cfg config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw, err := fsutil.Load(path)
	if err != nil {
		return nil, err
	}

	lines, err := textutil.SplitLines(fsutil.DecodeText(raw), cfg.DelimiterByte(), cfg.MaxWidth)
	if err != nil {
		return nil, err
	}

	return &Application{
		cfg:    cfg,
		lines:  lines,
		stdout: os.Stdout,
		getenv: os.Getenv,
	}, nil
}

// Lines returns the split content.
func (app *Application) Lines() *textutil.LineSequence {
	return app.lines
}

// Run pages the content interactively, or prints it when stdout is not a terminal.
func (app *Application) Run() error {
	if !isTerminal(app.stdout.Fd()) {
		return app.writePlain(app.stdout)
	}

	caps, err := pagerui.LookupCapabilities(app.getenv("TERM"))
	if err != nil {
		return err
	}

	tty, err := openTerminal()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		_ = tty.Release()
	}()

	session := pagerui.NewSession(app.lines, tty.Input(), tty.Output(), caps, pagerui.Options{
		TabWidth:    app.cfg.TabWidth,
		LineNumbers: app.cfg.LineNumbers,
		Size:        tty.Size,
	})

	done := make(chan struct{})
	defer close(done)
	watchSignals(tty, session.Redraw, done)

	if err := tty.Enter(); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	if err := session.Run(); err != nil {
		return err
	}
	return tty.Release()
}

// watchSignals keeps the terminal usable across signals that arrive while the
// pager owns it: job-control stops hand the tty back to the shell and repaint
// on return, anything else restores the terminal and exits.
func watchSignals(tty *pagerui.Terminal, redraw func() error, done <-chan struct{}) {
	sigs := watchedSignals()
	if len(sigs) == 0 {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)
	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case sig := <-sigCh:
				if code, exit := handleSignal(sig, tty, redraw); exit {
					exitProcess(code)
					return
				}
			case <-done:
				return
			}
		}
	}()
}

// handleSignal reacts to one signal and reports whether the process should
// exit, and with which code.
func handleSignal(sig os.Signal, tty *pagerui.Terminal, redraw func() error) (int, bool) {
	if !isSuspendSignal(sig) {
		_ = tty.Release()
		return signalExitCode(sig), true
	}

	suspended, err := tty.Suspend()
	if err == nil {
		// Execution continues here once the shell resumes the job.
		_ = stopProcess()
	}
	if !suspended {
		return 0, false
	}
	if err := tty.Resume(); err != nil {
		_ = tty.Release()
		return 1, true
	}
	_ = redraw()
	return 0, false
}

// writePlain prints every line the way the pager would show it, for pipes
// and redirected output.
func (app *Application) writePlain(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < app.lines.Len(); i++ {
		line := app.lines.Line(i)
		if app.cfg.LineNumbers {
			if _, err := fmt.Fprintf(bw, "%d %s\n", i+1, line); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
