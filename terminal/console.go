package terminal

// Lifecycle sets up and tears down the console mode
type Lifecycle interface {
	// Init enters raw, echo-off mode with a hidden cursor
	Init() error
	// Fini restores the console. Safe to call multiple times
	Fini()
}

// Painter draws on the console; writes become visible on Show
type Painter interface {
	// WriteAt writes text without attributes starting at (row, col)
	// Cells outside the console are clipped
	WriteAt(row, col int, text string)
	// Show makes every pending write visible
	Show()
}

// KeySource reads single keypresses without blocking
type KeySource interface {
	// PollKey returns the next key code, false when no key is pending
	PollKey() (int, bool)
}

// Console is the full capability set
type Console interface {
	Lifecycle
	Painter
	KeySource
}
