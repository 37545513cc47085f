package message

// Message is an immutable signal with an optional payload
// Messages are passed by value; the holding mailbox owns the copy
type Message struct {
	Signal  Signal
	Payload Payload
}

// Weight returns the storage class of the message
func (m Message) Weight() Weight {
	if m.Payload == nil {
		return Tiny
	}
	return m.Payload.Weight()
}

// New returns a message for sig with payload p (nil for a bare signal)
func New(sig Signal, p Payload) Message {
	return Message{Signal: sig, Payload: p}
}

// NewKey returns a key-carrying message
func NewKey(sig Signal, key int) Message {
	return Message{Signal: sig, Payload: KeyPayload{Key: key}}
}

// NewCreateSection returns a section creation request with the key clamped
func NewCreateSection(layer int, s Section) Message {
	s.Key = ClampKey(s.Key)
	return Message{Signal: CreateSection, Payload: SectionPayload{Layer: layer, Section: s}}
}

// NewDeleteSection returns a section removal request
func NewDeleteSection(layer int, key string) Message {
	return Message{Signal: DeleteSection, Payload: DeletePayload{Layer: layer, Key: ClampKey(key)}}
}

// NewPaintLine returns a section paint request with text clamped to a row
func NewPaintLine(layer int, key string, rowOffset, colOffset int, text string) Message {
	return Message{Signal: PaintLine, Payload: PaintLinePayload{
		Layer:     layer,
		Key:       ClampKey(key),
		RowOffset: rowOffset,
		ColOffset: colOffset,
		Text:      ClampRow(text),
	}}
}

// NewPaintRow returns a display row fragment with text clamped to a row
func NewPaintRow(row, col int, text string) Message {
	return Message{Signal: PaintRow, Payload: PaintRowPayload{Row: row, Col: col, Text: ClampRow(text)}}
}
