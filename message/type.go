package message

// Signal identifies the meaning of a message
// Topic signals occupy the range below MaxTopic and are delivered by broadcast;
// the rest are point-to-point
type Signal int

const (
	// === Topic Signals ===

	// Started announces the console is set up
	// Trigger: Engine entry | Subscribers: InputMonitor, ScreenCompositor, Engine | Payload: nil
	Started Signal = iota + 1

	// Stop announces shutdown
	// Trigger: Engine timer or quit key | Subscribers: InputMonitor, Engine | Payload: nil
	Stop

	// KeyDetect re-broadcasts a key read from the console
	// Trigger: KeyDispatcher | Subscribers: RenderEngine, Engine | Payload: KeyPayload
	KeyDetect

	// MaxTopic must follow the last topic signal
	MaxTopic

	// === Point-to-Point Signals ===

	// Timeout is the default signal of an expiring actor timer
	// Consumer: timer owner | Payload: nil
	Timeout

	// KeyScan drives one console poll
	// Consumer: InputMonitor | Payload: nil
	KeyScan

	// Key carries a raw key from the monitor
	// Consumer: KeyDispatcher | Payload: KeyPayload
	Key

	// CreateSection registers a section into a layer
	// Consumer: RenderEngine | Payload: SectionPayload
	CreateSection

	// DeleteSection removes a section and erases its artwork
	// Consumer: RenderEngine | Payload: DeletePayload
	DeleteSection

	// PaintLine writes text into a section interior
	// Consumer: RenderEngine | Payload: PaintLinePayload
	PaintLine

	// PaintRow draws a fragment of a composited row on the display
	// Consumer: ScreenCompositor | Payload: PaintRowPayload
	PaintRow

	// Flush makes queued paint operations visible
	// Consumer: ScreenCompositor | Payload: nil
	Flush

	// MaxSignal must always be last
	MaxSignal
)

// IsTopic reports whether the signal is delivered by broadcast
func (s Signal) IsTopic() bool {
	return s > 0 && s < MaxTopic
}

// String returns the registered name of the signal
func (s Signal) String() string {
	return SignalName(s)
}
