package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type fakeConsole struct {
	inits, finis int
}

func (f *fakeConsole) Init() error { f.inits++; return nil }
func (f *fakeConsole) Fini()       { f.finis++ }

// captureCrash swaps the process hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, *int, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	resets := 0

	oldExit, oldOut, oldReset := exitFunc, crashOut, resetFunc
	exitFunc = func(c int) { code = c }
	crashOut = &out
	resetFunc = func() { resets++ }
	t.Cleanup(func() {
		exitFunc, crashOut, resetFunc = oldExit, oldOut, oldReset
		SetCrashTerminal(nil, nil)
		SetCrashLogger(nil)
	})
	return &out, &code, &resets
}

func TestHandleCrashRestoresAndExits(t *testing.T) {
	out, code, resets := captureCrash(t)
	console := &fakeConsole{}
	SetCrashTerminal(console, nil)

	HandleCrash("section table corrupt")

	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if console.finis != 1 {
		t.Errorf("console finalized %d times, want 1", console.finis)
	}
	if *resets != 1 {
		t.Errorf("emergency reset ran %d times, want 1", *resets)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: section table corrupt") {
		t.Errorf("missing diagnostic: %q", out.String())
	}
	if !strings.Contains(out.String(), "Stack Trace:") {
		t.Error("missing stack trace")
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	out, code, _ := captureCrash(t)
	HandleCrash(nil)
	if *code != -1 || out.Len() != 0 {
		t.Error("nil crash must not exit")
	}
}

type panickingConsole struct{}

func (panickingConsole) Init() error { return nil }
func (panickingConsole) Fini()       { panic("fini failed") }

func TestHandleCrashSurvivesFiniPanic(t *testing.T) {
	out, code, _ := captureCrash(t)
	SetCrashTerminal(panickingConsole{}, nil)

	HandleCrash("boom")

	if *code != 1 || !strings.Contains(out.String(), "boom") {
		t.Errorf("code = %d, out = %q", *code, out.String())
	}
}

func TestGoRecoversIntoHandleCrash(t *testing.T) {
	var mu sync.Mutex
	done := make(chan struct{})
	var got int

	oldExit, oldOut, oldReset := exitFunc, crashOut, resetFunc
	exitFunc = func(c int) {
		mu.Lock()
		got = c
		mu.Unlock()
		close(done)
	}
	crashOut = &bytes.Buffer{}
	resetFunc = func() {}
	defer func() { exitFunc, crashOut, resetFunc = oldExit, oldOut, oldReset }()

	Go(func() { panic("worker died") })
	<-done

	mu.Lock()
	defer mu.Unlock()
	if got != 1 {
		t.Errorf("exit code = %d", got)
	}
}

func TestAssertf(t *testing.T) {
	Assertf(true, "never")

	defer func() {
		r := recover()
		ae, ok := r.(*AssertionError)
		if !ok {
			t.Fatalf("panic value = %T, want *AssertionError", r)
		}
		if ae.Message != "layer 7 out of range" {
			t.Errorf("message = %q", ae.Message)
		}
		if !strings.HasPrefix(ae.Origin, "crash_handler_test.go:") {
			t.Errorf("origin = %q", ae.Origin)
		}
		if !strings.Contains(ae.Error(), "assertion failed") {
			t.Errorf("error = %q", ae.Error())
		}
	}()
	Assertf(false, "layer %d out of range", 7)
}
