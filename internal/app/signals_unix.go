//go:build !windows

package app

import (
	"os"
	"syscall"
)

func watchedSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGTSTP}
}

func isSuspendSignal(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

// stopSelf stops only this process; SIGTSTP is being caught, so the
// uncatchable SIGSTOP is sent instead. The call returns after SIGCONT.
func stopSelf() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGSTOP)
}

func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
