package message

import (
	"unicode/utf8"

	"github.com/lixenwraith/vi-compositor/parameter"
)

// Weight is the storage class a message is carried in
type Weight uint8

const (
	// Tiny carries a bare signal or a single integer
	Tiny Weight = iota
	// Small carries a section descriptor
	Small
	// Medium carries a canvas row
	Medium

	numWeights
)

// Weights lists every storage class in increasing size
var Weights = [numWeights]Weight{Tiny, Small, Medium}

func (w Weight) String() string {
	switch w {
	case Tiny:
		return "tiny"
	case Small:
		return "small"
	case Medium:
		return "medium"
	}
	return "unknown"
}

// Payload is the signal-specific body of a message
type Payload interface {
	// Weight returns the smallest storage class that fits the payload
	Weight() Weight
}

// Section describes a rectangular region of a layer
// Row/Col anchor the first content row and the left border column;
// Height/Width are the interior extent
type Section struct {
	Key    string `toml:"key"`
	Row    int    `toml:"row"`
	Col    int    `toml:"col"`
	Height int    `toml:"height"`
	Width  int    `toml:"width"`
}

// Top returns the row of the top border
func (s Section) Top() int { return s.Row - 1 }

// Bottom returns the row of the bottom border
func (s Section) Bottom() int { return s.Row + s.Height }

// Left returns the column of the left border
func (s Section) Left() int { return s.Col }

// Right returns the column of the right border
func (s Section) Right() int { return s.Col + s.Width + 1 }

// InteriorCol returns the first content column
func (s Section) InteriorCol() int { return s.Col + 1 }

// InGrid reports whether the bordered frame lies inside the screen grid
// Extents are compared by subtraction so huge values cannot wrap an edge
func (s Section) InGrid() bool {
	if s.Height < 1 || s.Width < 1 {
		return false
	}
	if s.Row < 1 || s.Col < 0 {
		return false
	}
	return s.Height < parameter.MaxScreenHeight-s.Row &&
		s.Width < parameter.MaxScreenWidth-1-s.Col
}

// Spans reports whether row lies within the bordered frame
func (s Section) Spans(row int) bool {
	return row >= s.Top() && row <= s.Bottom()
}

// Overlaps reports whether the bordered frames of s and o share any cell
func (s Section) Overlaps(o Section) bool {
	return s.Top() <= o.Bottom() && o.Top() <= s.Bottom() &&
		s.Left() <= o.Right() && o.Left() <= s.Right()
}

// KeyPayload carries a console key code
type KeyPayload struct {
	Key int
}

func (KeyPayload) Weight() Weight { return Tiny }

// SectionPayload carries a section descriptor for a layer
type SectionPayload struct {
	Layer   int
	Section Section
}

func (SectionPayload) Weight() Weight { return Small }

// DeletePayload names a section to remove from a layer
type DeletePayload struct {
	Layer int
	Key   string
}

func (DeletePayload) Weight() Weight { return Small }

// PaintLinePayload carries text for a section interior row
type PaintLinePayload struct {
	Layer     int
	Key       string
	RowOffset int
	ColOffset int
	Text      string
}

func (PaintLinePayload) Weight() Weight { return Medium }

// PaintRowPayload carries composited text for a display row starting at Col
type PaintRowPayload struct {
	Row  int
	Col  int
	Text string
}

func (PaintRowPayload) Weight() Weight { return Medium }

// ClampKey truncates a section key to SectionKeyLen bytes without splitting a rune
func ClampKey(key string) string {
	if len(key) <= parameter.SectionKeyLen {
		return key
	}
	cut := parameter.SectionKeyLen
	for cut > 0 && !utf8.RuneStart(key[cut]) {
		cut--
	}
	return key[:cut]
}

// ClampRow truncates text to MaxScreenWidth runes
func ClampRow(text string) string {
	n := 0
	for i := range text {
		if n == parameter.MaxScreenWidth {
			return text[:i]
		}
		n++
	}
	return text
}
