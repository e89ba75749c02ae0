package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashCleanup holds an optional func() invoked before the crash report,
// typically a terminal restore installed by the frontend
var crashCleanup atomic.Value

// SetCrashCleanup registers a cleanup function run before the crash report is printed
func SetCrashCleanup(fn func()) {
	crashCleanup.Store(fn)
}

// HandleCrash is the unified panic handler: restores the frontend and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn, ok := crashCleanup.Load().(func()); ok && fn != nil {
		fn()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure frontend cleanup on crash.
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
