package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	apppkg "github.com/kk-code-lab/cless/internal/app"
	"github.com/kk-code-lab/cless/internal/config"
)

const (
	usageText = "Usage: cless [--h] <file>.\n"
	helpText  = "cless: use 'j' to scroll down, 'k' to scroll up and 'q' to quit.\n"
)

var newApplication = func(path string, cfg config.Config) (runner, error) {
	return apppkg.NewApplication(path, cfg)
}

type runner interface {
	Run() error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stdout, usageText)
		return 1
	}

	// Only the first three bytes of the first argument are compared, so
	// --help and --hello both print help.
	if strings.HasPrefix(args[0], "--h") {
		fmt.Fprint(stdout, helpText)
		return 0
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(stderr, "cless: %v\n", err)
		return 1
	}

	app, err := newApplication(args[0], cfg)
	if err != nil {
		fmt.Fprintf(stderr, "cless: %v\n", err)
		return 1
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(stderr, "cless: %v\n", err)
		return 1
	}
	return 0
}
