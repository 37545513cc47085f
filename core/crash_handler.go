package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/terminal"
)

var (
	crashMu       sync.Mutex
	crashTerminal terminal.Lifecycle
	crashTTY      *terminal.TTYState
	crashLog      = zap.NewNop()

	// Replaced in tests
	exitFunc            = os.Exit
	crashOut  io.Writer = os.Stderr
	resetFunc           = func() { terminal.EmergencyReset(os.Stdout) }
)

// SetCrashTerminal registers the console to finalize and the tty mode to
// restore when the process dies on a fatal assertion
func SetCrashTerminal(t terminal.Lifecycle, tty *terminal.TTYState) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = t
	crashTTY = tty
}

// SetCrashLogger registers the logger that records the crash before exit
func SetCrashLogger(l *zap.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	crashLog = l
}

// HandleCrash is the unified fatal path: it restores the console to cooked,
// echoed mode, prints the origin and stack trace and exits with status 1
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t, tty, log := crashTerminal, crashTTY, crashLog
	crashMu.Unlock()

	stack := debug.Stack()
	log.Error("fatal", zap.Any("cause", r), zap.ByteString("stack", stack))
	_ = log.Sync()

	if t != nil {
		func() {
			// A console that fails to finalize must not hide the crash report
			defer func() { recover() }()
			t.Fini()
		}()
	}
	if tty != nil {
		_ = tty.Restore()
	}
	resetFunc()

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", stack)
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	exitFunc(1)
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
