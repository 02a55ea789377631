package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanups  []func()
)

// RegisterCleanup adds a function to run before a crash report is printed.
// Used to restore the terminal so the stack trace is readable.
func RegisterCleanup(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanups = append(cleanups, fn)
}

// HandleCrash is the unified panic handler: runs registered cleanups,
// prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	cleanupMu.Lock()
	fns := cleanups
	cleanupMu.Unlock()
	for _, fn := range fns {
		fn()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
