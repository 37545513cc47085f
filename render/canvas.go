package render

import (
	"strconv"

	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
)

// Canvas owns the layers of the compositor
// It is not safe for concurrent use; the Render Engine actor is its only user
type Canvas struct {
	layers [parameter.NumLayers]*Layer
}

// NewCanvas creates blank layers using glyphs for borders
func NewCanvas(glyphs Glyphs) *Canvas {
	c := &Canvas{}
	for i := range c.layers {
		c.layers[i] = NewLayer("layer"+strconv.Itoa(i), glyphs)
	}
	return c
}

// Layer returns layer id, nil when out of range
func (c *Canvas) Layer(id int) *Layer {
	if id < 0 || id >= len(c.layers) {
		return nil
	}
	return c.layers[id]
}

// CreateSection registers s into layer id and draws its frame
// Returns the rows the frame spans; false when rejected
func (c *Canvas) CreateSection(id int, s message.Section) ([]int, bool) {
	l := c.Layer(id)
	if l == nil {
		return nil, false
	}
	s.Key = message.ClampKey(s.Key)
	if !l.create(s) {
		return nil, false
	}
	return spannedRows(s), true
}

// PaintLine writes text into an interior row of section key
// Returns the absolute row written; false for an unknown key or an offset
// outside the interior
func (c *Canvas) PaintLine(id int, key string, rowOffset, colOffset int, text string) (int, bool) {
	l := c.Layer(id)
	if l == nil {
		return 0, false
	}
	return l.paint(message.ClampKey(key), rowOffset, colOffset, text)
}

// DeleteSection removes section key from layer id and erases its artwork
// Returns the removed section
func (c *Canvas) DeleteSection(id int, key string) (message.Section, bool) {
	l := c.Layer(id)
	if l == nil {
		return message.Section{}, false
	}
	return l.remove(message.ClampKey(key))
}

// RowText renders a row of layer id starting at column from
func (c *Canvas) RowText(id, row, from int) string {
	l := c.Layer(id)
	if l == nil {
		return ""
	}
	return l.RowText(row, from)
}

func spannedRows(s message.Section) []int {
	rows := make([]int, 0, s.Bottom()-s.Top()+1)
	for row := s.Top(); row <= s.Bottom(); row++ {
		rows = append(rows, row)
	}
	return rows
}
