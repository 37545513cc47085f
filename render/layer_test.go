package render

import (
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
)

func sectionA() message.Section {
	return message.Section{Key: "A", Row: 1, Col: 1, Height: 4, Width: 9}
}

func sectionB() message.Section {
	return message.Section{Key: "B", Row: 1, Col: 11, Height: 7, Width: 6}
}

func mustCreate(t *testing.T, c *Canvas, s message.Section) {
	t.Helper()
	if _, ok := c.CreateSection(0, s); !ok {
		t.Fatalf("section %q rejected", s.Key)
	}
}

func TestCreateSectionDrawsFrame(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	rows, ok := c.CreateSection(0, sectionA())
	if !ok {
		t.Fatal("section rejected")
	}
	if len(rows) != 6 || rows[0] != 0 || rows[5] != 5 {
		t.Errorf("spanned rows = %v, want 0..5", rows)
	}

	want := []string{
		"+---------+",
		"|         |",
		"|         |",
		"|         |",
		"|         |",
		"+---------+",
	}
	for i, w := range want {
		if got := c.RowText(0, i, 1); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
	if got := c.RowText(0, 6, 0); got != "" {
		t.Errorf("row 6 = %q, want empty", got)
	}
}

func TestCreateSectionLeavesInteriorBlank(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	l := c.Layer(0)
	for row := 1; row <= 4; row++ {
		for col := 2; col <= 10; col++ {
			if r := l.Cell(row, col); r != 0 {
				t.Fatalf("interior cell (%d,%d) = %q, want blank", row, col, r)
			}
		}
	}
}

func TestAdjacentSections(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	mustCreate(t, c, sectionB())
	l := c.Layer(0)

	if r := l.Cell(1, 10); r != 0 {
		t.Errorf("cell (1,10) = %q, want untouched", r)
	}
	if r := l.Cell(0, 11); r != '+' {
		t.Errorf("shared top corner = %q, want '+'", r)
	}
	if r := l.Cell(5, 11); r != '+' {
		t.Errorf("A corner on B edge = %q, want '+'", r)
	}
	if r := l.Cell(3, 11); r != '|' {
		t.Errorf("shared edge = %q, want '|'", r)
	}
	if r := l.Cell(8, 18); r != '+' {
		t.Errorf("B bottom right = %q, want '+'", r)
	}
}

func TestBorderCoalescingIsOrderIndependent(t *testing.T) {
	forward := NewCanvas(ASCIIGlyphs)
	mustCreate(t, forward, sectionA())
	mustCreate(t, forward, sectionB())

	reverse := NewCanvas(ASCIIGlyphs)
	mustCreate(t, reverse, sectionB())
	mustCreate(t, reverse, sectionA())

	if forward.Layer(0).grid != reverse.Layer(0).grid {
		t.Fatal("grids differ by creation order")
	}
	for _, cell := range [][2]int{{0, 11}, {5, 11}} {
		if r := reverse.Layer(0).Cell(cell[0], cell[1]); r != '+' {
			t.Errorf("cell %v = %q, want corner", cell, r)
		}
	}
}

func TestCreateSectionBounds(t *testing.T) {
	tests := []struct {
		name string
		sec  message.Section
		ok   bool
	}{
		{"top border above grid", message.Section{Key: "k", Row: 0, Col: 1, Height: 2, Width: 2}, false},
		{"left edge at zero", message.Section{Key: "k", Row: 1, Col: 0, Height: 2, Width: 2}, true},
		{"negative col", message.Section{Key: "k", Row: 1, Col: -1, Height: 2, Width: 2}, false},
		{"bottom on last row", message.Section{Key: "k", Row: 20, Col: 1, Height: 3, Width: 2}, true},
		{"bottom below grid", message.Section{Key: "k", Row: 20, Col: 1, Height: 4, Width: 2}, false},
		{"right on last col", message.Section{Key: "k", Row: 1, Col: 70, Height: 2, Width: 8}, true},
		{"right beyond grid", message.Section{Key: "k", Row: 1, Col: 70, Height: 2, Width: 9}, false},
		{"zero height", message.Section{Key: "k", Row: 1, Col: 1, Height: 0, Width: 2}, false},
		{"zero width", message.Section{Key: "k", Row: 1, Col: 1, Height: 2, Width: 0}, false},
		{"empty key", message.Section{Key: "", Row: 1, Col: 1, Height: 2, Width: 2}, false},
		{"height wraps bottom edge", message.Section{Key: "k", Row: 1, Col: 1, Height: math.MaxInt, Width: 2}, false},
		{"width wraps right edge", message.Section{Key: "k", Row: 1, Col: 1, Height: 2, Width: math.MaxInt}, false},
		{"row wraps bottom edge", message.Section{Key: "k", Row: math.MaxInt, Col: 1, Height: 1, Width: 2}, false},
		{"col wraps right edge", message.Section{Key: "k", Row: 1, Col: math.MaxInt - 1, Height: 2, Width: 1}, false},
		{"negative height", message.Section{Key: "k", Row: 1, Col: 1, Height: math.MinInt, Width: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(ASCIIGlyphs)
			before := c.Layer(0).grid
			_, ok := c.CreateSection(0, tt.sec)
			if ok != tt.ok {
				t.Fatalf("CreateSection ok = %v, want %v", ok, tt.ok)
			}
			if !ok && c.Layer(0).grid != before {
				t.Error("rejected section modified the grid")
			}
		})
	}
}

func TestCreateSectionRejectsUnknownLayer(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	if _, ok := c.CreateSection(parameter.NumLayers, sectionA()); ok {
		t.Error("layer out of range accepted")
	}
	if _, ok := c.CreateSection(-1, sectionA()); ok {
		t.Error("negative layer accepted")
	}
	if _, ok := c.CreateSection(parameter.NumLayers-1, sectionA()); !ok {
		t.Error("last layer rejected")
	}
}

func TestCreateSectionRejectsDuplicateKey(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	dup := sectionB()
	dup.Key = "A"
	if _, ok := c.CreateSection(0, dup); ok {
		t.Fatal("duplicate key accepted")
	}
	if n := len(c.Layer(0).Sections()); n != 1 {
		t.Errorf("sections = %d, want 1", n)
	}
}

func TestSlotExhaustion(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	for i := 0; i < parameter.SectionsPerLayer; i++ {
		s := message.Section{
			Key:    string(rune('a' + i)),
			Row:    1 + 3*(i/8),
			Col:    3 * (i % 8),
			Height: 1,
			Width:  1,
		}
		mustCreate(t, c, s)
	}
	before := c.Layer(0).grid
	extra := message.Section{Key: "extra", Row: 10, Col: 1, Height: 1, Width: 1}
	if _, ok := c.CreateSection(0, extra); ok {
		t.Fatal("section accepted into full layer")
	}
	if c.Layer(0).grid != before {
		t.Error("rejected section modified the grid")
	}
	// Other layers keep their own slots
	if _, ok := c.CreateSection(1, extra); !ok {
		t.Error("layer 1 rejected section")
	}
}

func TestPaintAfterCreation(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, message.Section{Key: "topLeft", Row: 1, Col: 1, Height: 4, Width: 9})

	row, ok := c.PaintLine(0, "topLeft", 0, 0, "5")
	if !ok || row != 1 {
		t.Fatalf("PaintLine = (%d, %v), want (1, true)", row, ok)
	}
	l := c.Layer(0)
	if r := l.Cell(1, 2); r != '5' {
		t.Errorf("cell (1,2) = %q, want '5'", r)
	}
	if r := l.Cell(1, 1); r != '|' {
		t.Errorf("cell (1,1) = %q, want border", r)
	}
	if got := l.RowText(1, l.Dirty(1)); got != "|5        |" {
		t.Errorf("row text = %q", got)
	}
}

func TestPaintUnknownKeyIsNoop(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	before := c.Layer(0).grid
	if _, ok := c.PaintLine(0, "missing", 0, 0, "hello"); ok {
		t.Fatal("paint into unknown key reported success")
	}
	if _, ok := c.PaintLine(0, "a", 0, 0, "hello"); ok {
		t.Fatal("key comparison must be case-sensitive")
	}
	if c.Layer(0).grid != before {
		t.Error("grid changed")
	}
}

func TestPaintTruncatesToWidth(t *testing.T) {
	long := strings.Repeat("x", 40)
	for colOffset := 0; colOffset < 9; colOffset++ {
		c := NewCanvas(ASCIIGlyphs)
		mustCreate(t, c, sectionA())
		mustCreate(t, c, sectionB())
		if _, ok := c.PaintLine(0, "A", 2, colOffset, long); !ok {
			t.Fatalf("offset %d rejected", colOffset)
		}
		l := c.Layer(0)
		written := 0
		for col := 0; col < parameter.MaxScreenWidth; col++ {
			if l.Cell(3, col) == 'x' {
				written++
				if col < 2 || col > 10 {
					t.Errorf("offset %d wrote outside span at col %d", colOffset, col)
				}
			}
		}
		if want := 9 - colOffset; written != want {
			t.Errorf("offset %d wrote %d cells, want %d", colOffset, written, want)
		}
		if l.Cell(3, 11) != '|' {
			t.Errorf("offset %d overwrote shared border", colOffset)
		}
	}

	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	c.PaintLine(0, "A", 0, 0, long)
	if got := c.RowText(0, 1, 2); got != "xxxxxxxxx|" {
		t.Errorf("row = %q, want exactly width cells", got)
	}
}

func TestPaintOutsideInteriorIsNoop(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	before := c.Layer(0).grid
	for _, off := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 9}} {
		if _, ok := c.PaintLine(0, "A", off[0], off[1], "z"); ok {
			t.Errorf("offset %v accepted", off)
		}
	}
	if c.Layer(0).grid != before {
		t.Error("grid changed")
	}
}

func TestPaintMultibyteText(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, message.Section{Key: "w", Row: 1, Col: 0, Height: 1, Width: 3})
	c.PaintLine(0, "w", 0, 0, "héllo")
	if got := c.RowText(0, 1, 0); got != "|hél|" {
		t.Errorf("row = %q", got)
	}
}

func TestDirtyIndexMonotonicity(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	l := c.Layer(0)
	for row := 0; row < parameter.MaxScreenHeight; row++ {
		if d := l.Dirty(row); d != parameter.DirtyNone {
			t.Fatalf("fresh row %d dirty = %d", row, d)
		}
	}

	mustCreate(t, c, sectionB())
	mustCreate(t, c, sectionA())
	mustCreate(t, c, message.Section{Key: "C", Row: 10, Col: 30, Height: 2, Width: 5})

	want := map[int]int{}
	for _, s := range l.Sections() {
		for row := s.Top(); row <= s.Bottom(); row++ {
			if cur, ok := want[row]; !ok || s.Left() < cur {
				want[row] = s.Left()
			}
		}
	}
	for row := 0; row < parameter.MaxScreenHeight; row++ {
		w, ok := want[row]
		if !ok {
			w = parameter.DirtyNone
		}
		if d := l.Dirty(row); d != w {
			t.Errorf("row %d dirty = %d, want %d", row, d, w)
		}
	}
}

func TestDeleteSectionErasesAndRestores(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionA())
	mustCreate(t, c, sectionB())
	c.PaintLine(0, "A", 0, 0, "gone")

	s, ok := c.DeleteSection(0, "A")
	if !ok || s.Key != "A" {
		t.Fatalf("DeleteSection = (%v, %v)", s, ok)
	}
	l := c.Layer(0)
	for row := 0; row <= 5; row++ {
		for col := 1; col <= 10; col++ {
			if r := l.Cell(row, col); r != 0 {
				t.Fatalf("cell (%d,%d) = %q after delete", row, col, r)
			}
		}
	}
	if r := l.Cell(0, 11); r != '+' {
		t.Errorf("B corner = %q", r)
	}
	if r := l.Cell(5, 11); r != '|' {
		t.Errorf("B edge not restored: %q", r)
	}
	for row := 0; row <= 8; row++ {
		if d := l.Dirty(row); d != 11 {
			t.Errorf("row %d dirty = %d, want 11", row, d)
		}
	}

	if _, ok := c.DeleteSection(0, "A"); ok {
		t.Error("second delete succeeded")
	}
	if _, ok := c.CreateSection(0, sectionA()); !ok {
		t.Error("key not reusable after delete")
	}
}

func TestDeleteLastSectionClearsDirty(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	mustCreate(t, c, sectionB())
	c.DeleteSection(0, "B")
	l := c.Layer(0)
	var blank [parameter.MaxScreenHeight][parameter.MaxScreenWidth]rune
	if l.grid != blank {
		t.Error("grid not blank")
	}
	for row := 0; row < parameter.MaxScreenHeight; row++ {
		if d := l.Dirty(row); d != parameter.DirtyNone {
			t.Errorf("row %d dirty = %d", row, d)
		}
	}
}

func TestLongKeysAreClamped(t *testing.T) {
	c := NewCanvas(ASCIIGlyphs)
	key := strings.Repeat("k", parameter.SectionKeyLen+4)
	s := sectionA()
	s.Key = key
	mustCreate(t, c, s)
	got, ok := c.Layer(0).Section(key[:parameter.SectionKeyLen])
	if !ok || len(got.Key) != parameter.SectionKeyLen {
		t.Fatalf("stored key = %q", got.Key)
	}
	if _, ok := c.PaintLine(0, key, 0, 0, "1"); !ok {
		t.Error("paint with the long key did not match")
	}
}

func TestBoxGlyphs(t *testing.T) {
	c := NewCanvas(BoxGlyphs)
	mustCreate(t, c, sectionA())
	if got := c.RowText(0, 0, 1); got != "┼─────────┼" {
		t.Errorf("top = %q", got)
	}
	if got := c.RowText(0, 1, 1); got != "│         │" {
		t.Errorf("side = %q", got)
	}
	if _, ok := GlyphsByName("box"); !ok {
		t.Error("box preset missing")
	}
	if _, ok := GlyphsByName("double"); ok {
		t.Error("unknown preset found")
	}
	if names := GlyphNames(); len(names) != 2 || names[0] != "ascii" {
		t.Errorf("names = %v", names)
	}
}
