package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key codes share one int space:
//   - printable keys are their rune value
//   - control keys are their ASCII value (0..31, 127), however tcell reports them
//   - named keys (arrows, function keys, ...) start at NamedKeyBase, above every rune
const NamedKeyBase = utf8.MaxRune + 1

// codeOf maps a non-rune tcell key into the compositor code space
func codeOf(k tcell.Key) int {
	switch {
	case k >= tcell.KeyCtrlSpace && k <= tcell.KeyCtrlUnderscore:
		return int(k - tcell.KeyCtrlSpace)
	case k < tcell.KeyRune:
		return int(k)
	default:
		return NamedKeyBase + int(k-tcell.KeyRune)
	}
}

// keyToName maps special key codes to canonical config names
var keyToName = map[int]string{
	codeOf(tcell.KeyEscape):     "esc",
	codeOf(tcell.KeyEnter):      "enter",
	codeOf(tcell.KeyTab):        "tab",
	codeOf(tcell.KeyBacktab):    "backtab",
	codeOf(tcell.KeyBackspace):  "backspace",
	codeOf(tcell.KeyBackspace2): "backspace2",
	codeOf(tcell.KeyDelete):     "delete",

	codeOf(tcell.KeyUp):     "up",
	codeOf(tcell.KeyDown):   "down",
	codeOf(tcell.KeyLeft):   "left",
	codeOf(tcell.KeyRight):  "right",
	codeOf(tcell.KeyHome):   "home",
	codeOf(tcell.KeyEnd):    "end",
	codeOf(tcell.KeyPgUp):   "page_up",
	codeOf(tcell.KeyPgDn):   "page_down",
	codeOf(tcell.KeyInsert): "insert",

	codeOf(tcell.KeyF1):  "f1",
	codeOf(tcell.KeyF2):  "f2",
	codeOf(tcell.KeyF3):  "f3",
	codeOf(tcell.KeyF4):  "f4",
	codeOf(tcell.KeyF5):  "f5",
	codeOf(tcell.KeyF6):  "f6",
	codeOf(tcell.KeyF7):  "f7",
	codeOf(tcell.KeyF8):  "f8",
	codeOf(tcell.KeyF9):  "f9",
	codeOf(tcell.KeyF10): "f10",
	codeOf(tcell.KeyF11): "f11",
	codeOf(tcell.KeyF12): "f12",
}

// nameToKey is the reverse lookup, built from keyToName plus ctrl_a..ctrl_z
var nameToKey map[string]int

func init() {
	nameToKey = make(map[string]int, len(keyToName)+26)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// ctrl_h, ctrl_i and ctrl_m share codes with backspace, tab and enter;
	// those keep their plain names
	for c := 'a'; c <= 'z'; c++ {
		code := int(c-'a') + 1
		name := "ctrl_" + string(c)
		nameToKey[name] = code
		if _, ok := keyToName[code]; !ok {
			keyToName[code] = name
		}
	}
	// Aliases
	nameToKey["escape"] = codeOf(tcell.KeyEscape)
	nameToKey["shift_tab"] = codeOf(tcell.KeyBacktab)
}

// KeyCode converts a tcell key event to the compositor key code
func KeyCode(ev *tcell.EventKey) int {
	if ev.Key() == tcell.KeyRune {
		return int(ev.Rune())
	}
	return codeOf(ev.Key())
}

// KeyByName resolves a config key name to a key code
// A single character resolves to its rune value; "space" is ' '
// Names are case-insensitive except single characters
func KeyByName(name string) (int, bool) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return int(r), true
	}
	name = strings.ToLower(name)
	if name == "space" {
		return ' ', true
	}
	k, ok := nameToKey[name]
	return k, ok
}

// KeyName returns the config name of a key code
func KeyName(code int) string {
	if name, ok := keyToName[code]; ok {
		return name
	}
	if code == ' ' {
		return "space"
	}
	if code > ' ' && code < NamedKeyBase && utf8.ValidRune(rune(code)) {
		return string(rune(code))
	}
	return ""
}
