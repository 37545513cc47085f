package parameter

import "time"

// Scheduler Timing
const (
	// TicksPerSecond is the default wall-clock tick rate driving actor timers
	TicksPerSecond = 100

	// TickInterval is the period of a single tick at the default rate
	TickInterval = time.Second / TicksPerSecond

	// DefaultRunFor is how long the engine runs before broadcasting Stop
	DefaultRunFor = 5 * time.Second
)

// Message Storage Limits
const (
	// MailboxDepth is the default capacity of each actor mailbox
	MailboxDepth = 64

	// TinyPoolSize bounds concurrently live single-integer messages
	TinyPoolSize = 128

	// SmallPoolSize bounds concurrently live section descriptor messages
	SmallPoolSize = 64

	// MediumPoolSize bounds concurrently live row-text messages
	MediumPoolSize = 32

	// KeyBufferSize is the capacity of the console key pump channel
	KeyBufferSize = 64
)
