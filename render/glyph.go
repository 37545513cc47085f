package render

import (
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs is the border character set of a layer
// Corner is used for all four corners and for every shared joint
type Glyphs struct {
	Corner     rune
	Horizontal rune
	Vertical   rune
}

// ASCIIGlyphs is the default border set
var ASCIIGlyphs = Glyphs{Corner: '+', Horizontal: '-', Vertical: '|'}

// BoxGlyphs draws single-line box borders; joints use the cross glyph so a
// coalesced corner reads correctly from every side
var BoxGlyphs = fromBorder(lipgloss.NormalBorder())

var glyphsByName = map[string]Glyphs{
	"ascii": ASCIIGlyphs,
	"box":   BoxGlyphs,
}

// GlyphsByName returns the border preset registered under name
func GlyphsByName(name string) (Glyphs, bool) {
	g, ok := glyphsByName[name]
	return g, ok
}

// GlyphNames returns the registered preset names in sorted order
func GlyphNames() []string {
	names := make([]string, 0, len(glyphsByName))
	for name := range glyphsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fromBorder(b lipgloss.Border) Glyphs {
	return Glyphs{
		Corner:     firstRune(b.Middle, '+'),
		Horizontal: firstRune(b.Top, '-'),
		Vertical:   firstRune(b.Left, '|'),
	}
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
