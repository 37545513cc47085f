package core

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// AssertionError is an internal invariant violation
type AssertionError struct {
	Origin  string // file:line of the failed assertion
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed at %s: %s", e.Origin, e.Message)
}

// Assertf panics with an *AssertionError when cond is false
// Inside an actor the panic reaches HandleCrash through the scheduler
func Assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	origin := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		origin = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	panic(&AssertionError{Origin: origin, Message: fmt.Sprintf(format, args...)})
}
