package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/akarpov-91/fixtree/internal/cli"
	"github.com/akarpov-91/fixtree/pkg/fixtree"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(fixtree.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(fixtree.ExitCodeForError(err))
	}
}
