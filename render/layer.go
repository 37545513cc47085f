package render

import (
	"strings"

	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
)

// Layer is one composable canvas: a fixed character grid, the sections
// drawn into it and the leftmost dirty column of every row
// A zero cell is blank
type Layer struct {
	name     string
	grid     [parameter.MaxScreenHeight][parameter.MaxScreenWidth]rune
	dirty    [parameter.MaxScreenHeight]int
	sections []message.Section
	glyphs   Glyphs
}

// NewLayer creates a blank layer with no dirty rows
func NewLayer(name string, glyphs Glyphs) *Layer {
	l := &Layer{
		name:     name,
		sections: make([]message.Section, 0, parameter.SectionsPerLayer),
		glyphs:   glyphs,
	}
	for i := range l.dirty {
		l.dirty[i] = parameter.DirtyNone
	}
	return l
}

// Name returns the layer name
func (l *Layer) Name() string { return l.name }

// Cell returns the rune at (row, col), zero when blank or out of range
func (l *Layer) Cell(row, col int) rune {
	if !inGrid(row, col) {
		return 0
	}
	return l.grid[row][col]
}

// Dirty returns the leftmost dirty column of row, DirtyNone when clean
func (l *Layer) Dirty(row int) int {
	if row < 0 || row >= parameter.MaxScreenHeight {
		return parameter.DirtyNone
	}
	return l.dirty[row]
}

// Sections returns a copy of the registered sections in creation order
func (l *Layer) Sections() []message.Section {
	out := make([]message.Section, len(l.sections))
	copy(out, l.sections)
	return out
}

// Section returns the first section registered under key
func (l *Layer) Section(key string) (message.Section, bool) {
	if i := l.find(key); i >= 0 {
		return l.sections[i], true
	}
	return message.Section{}, false
}

// RowText renders row from column from through its last non-blank cell
// Blank cells become spaces; an empty row renders as ""
func (l *Layer) RowText(row, from int) string {
	return l.Span(row, from, l.lastCell(row))
}

// Span renders the cells of row in columns from..to inclusive, blanks as spaces
func (l *Layer) Span(row, from, to int) string {
	if row < 0 || row >= parameter.MaxScreenHeight {
		return ""
	}
	if from < 0 {
		from = 0
	}
	if to >= parameter.MaxScreenWidth {
		to = parameter.MaxScreenWidth - 1
	}
	if to < from {
		return ""
	}
	var b strings.Builder
	b.Grow(to - from + 1)
	for c := from; c <= to; c++ {
		r := l.grid[row][c]
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// create validates and registers s, then draws its frame
func (l *Layer) create(s message.Section) bool {
	if s.Key == "" || !s.InGrid() {
		return false
	}
	if len(l.sections) >= parameter.SectionsPerLayer || l.find(s.Key) >= 0 {
		return false
	}
	l.sections = append(l.sections, s)
	l.drawFrame(s)
	for row := s.Top(); row <= s.Bottom(); row++ {
		l.markDirty(row, s.Left())
	}
	return true
}

// paint writes text into the interior row rowOffset of section key
// Returns the absolute row written
func (l *Layer) paint(key string, rowOffset, colOffset int, text string) (int, bool) {
	i := l.find(key)
	if i < 0 {
		return 0, false
	}
	s := l.sections[i]
	if rowOffset < 0 || rowOffset >= s.Height || colOffset < 0 || colOffset >= s.Width {
		return 0, false
	}

	row := s.Row + rowOffset
	col := s.InteriorCol() + colOffset
	last := s.InteriorCol() + s.Width - 1
	n := 0
	for _, r := range text {
		if n == s.Width || col > last {
			break
		}
		l.grid[row][col] = r
		col++
		n++
	}
	return row, true
}

// remove unregisters section key, erases its frame and interior, restores
// the frames of overlapping sections and recomputes dirty columns of the
// rows it spanned
func (l *Layer) remove(key string) (message.Section, bool) {
	i := l.find(key)
	if i < 0 {
		return message.Section{}, false
	}
	s := l.sections[i]
	l.sections = append(l.sections[:i], l.sections[i+1:]...)

	for row := s.Top(); row <= s.Bottom(); row++ {
		for col := s.Left(); col <= s.Right(); col++ {
			l.grid[row][col] = 0
		}
	}
	for _, o := range l.sections {
		if o.Overlaps(s) {
			l.drawFrame(o)
		}
	}
	for row := s.Top(); row <= s.Bottom(); row++ {
		l.dirty[row] = parameter.DirtyNone
		for _, o := range l.sections {
			if o.Spans(row) {
				l.markDirty(row, o.Left())
			}
		}
	}
	return s, true
}

// drawFrame draws the border of s; corners always win over edges
func (l *Layer) drawFrame(s message.Section) {
	top, bottom, left, right := s.Top(), s.Bottom(), s.Left(), s.Right()
	for col := left + 1; col < right; col++ {
		l.plotEdge(top, col, l.glyphs.Horizontal)
		l.plotEdge(bottom, col, l.glyphs.Horizontal)
	}
	for row := top + 1; row < bottom; row++ {
		l.plotEdge(row, left, l.glyphs.Vertical)
		l.plotEdge(row, right, l.glyphs.Vertical)
	}
	l.grid[top][left] = l.glyphs.Corner
	l.grid[top][right] = l.glyphs.Corner
	l.grid[bottom][left] = l.glyphs.Corner
	l.grid[bottom][right] = l.glyphs.Corner
}

// plotEdge writes an edge glyph unless the cell already holds a corner
func (l *Layer) plotEdge(row, col int, r rune) {
	if l.grid[row][col] == l.glyphs.Corner {
		return
	}
	l.grid[row][col] = r
}

// markDirty lowers the dirty column of row to col; DirtyNone counts as
// larger than any column
func (l *Layer) markDirty(row, col int) {
	if cur := l.dirty[row]; cur == parameter.DirtyNone || col < cur {
		l.dirty[row] = col
	}
}

func (l *Layer) find(key string) int {
	for i := range l.sections {
		if l.sections[i].Key == key {
			return i
		}
	}
	return -1
}

func (l *Layer) lastCell(row int) int {
	if row < 0 || row >= parameter.MaxScreenHeight {
		return -1
	}
	for col := parameter.MaxScreenWidth - 1; col >= 0; col-- {
		if l.grid[row][col] != 0 {
			return col
		}
	}
	return -1
}

func inGrid(row, col int) bool {
	return row >= 0 && row < parameter.MaxScreenHeight && col >= 0 && col < parameter.MaxScreenWidth
}
