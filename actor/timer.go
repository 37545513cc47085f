package actor

import "github.com/lixenwraith/vi-compositor/message"

// Timer counts system ticks and posts its signal to the owner on expiry
// Timers are manipulated only from the run loop
type Timer struct {
	sys      *System
	owner    ID
	signal   message.Signal
	counter  int
	interval int
}

// Arm starts the timer to expire after ticks ticks
// A zero interval makes it one-shot; otherwise it re-arms with interval
// after every expiry. Arming an armed timer restarts it
func (t *Timer) Arm(ticks, interval int) {
	if ticks < 1 {
		ticks = 1
	}
	if interval < 0 {
		interval = 0
	}
	t.counter = ticks
	t.interval = interval
}

// Disarm stops the timer, reporting whether it was armed
func (t *Timer) Disarm() bool {
	was := t.counter > 0
	t.counter = 0
	t.interval = 0
	return was
}

// Armed reports whether the timer will fire
func (t *Timer) Armed() bool {
	return t.counter > 0
}

// Signal returns the signal posted on expiry
func (t *Timer) Signal() message.Signal {
	return t.signal
}

func (t *Timer) tick() {
	if t.counter == 0 {
		return
	}
	t.counter--
	if t.counter > 0 {
		return
	}
	t.counter = t.interval
	t.sys.Post(t.owner, message.New(t.signal, nil))
}
