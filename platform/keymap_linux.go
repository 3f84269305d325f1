//go:build linux

package platform

import (
	"fmt"

	"github.com/micmonay/keybd_event"

	"macrodeck/keystroke"
)

// shiftSentinel stands in for the shift modifier key in compiled sequences.
// keybd_event handles shift as a modifier flag rather than a key of its own,
// so the injector consumes these events instead of sending them.
const shiftSentinel keystroke.KeyCode = 0xFFFF

type keySet struct {
	code  int
	shift bool
}

// usLayout maps characters to keybd_event codes for a US QWERTY layout.
var usLayout = map[rune]keySet{
	'a': {keybd_event.VK_A, false}, 'b': {keybd_event.VK_B, false},
	'c': {keybd_event.VK_C, false}, 'd': {keybd_event.VK_D, false},
	'e': {keybd_event.VK_E, false}, 'f': {keybd_event.VK_F, false},
	'g': {keybd_event.VK_G, false}, 'h': {keybd_event.VK_H, false},
	'i': {keybd_event.VK_I, false}, 'j': {keybd_event.VK_J, false},
	'k': {keybd_event.VK_K, false}, 'l': {keybd_event.VK_L, false},
	'm': {keybd_event.VK_M, false}, 'n': {keybd_event.VK_N, false},
	'o': {keybd_event.VK_O, false}, 'p': {keybd_event.VK_P, false},
	'q': {keybd_event.VK_Q, false}, 'r': {keybd_event.VK_R, false},
	's': {keybd_event.VK_S, false}, 't': {keybd_event.VK_T, false},
	'u': {keybd_event.VK_U, false}, 'v': {keybd_event.VK_V, false},
	'w': {keybd_event.VK_W, false}, 'x': {keybd_event.VK_X, false},
	'y': {keybd_event.VK_Y, false}, 'z': {keybd_event.VK_Z, false},

	'A': {keybd_event.VK_A, true}, 'B': {keybd_event.VK_B, true},
	'C': {keybd_event.VK_C, true}, 'D': {keybd_event.VK_D, true},
	'E': {keybd_event.VK_E, true}, 'F': {keybd_event.VK_F, true},
	'G': {keybd_event.VK_G, true}, 'H': {keybd_event.VK_H, true},
	'I': {keybd_event.VK_I, true}, 'J': {keybd_event.VK_J, true},
	'K': {keybd_event.VK_K, true}, 'L': {keybd_event.VK_L, true},
	'M': {keybd_event.VK_M, true}, 'N': {keybd_event.VK_N, true},
	'O': {keybd_event.VK_O, true}, 'P': {keybd_event.VK_P, true},
	'Q': {keybd_event.VK_Q, true}, 'R': {keybd_event.VK_R, true},
	'S': {keybd_event.VK_S, true}, 'T': {keybd_event.VK_T, true},
	'U': {keybd_event.VK_U, true}, 'V': {keybd_event.VK_V, true},
	'W': {keybd_event.VK_W, true}, 'X': {keybd_event.VK_X, true},
	'Y': {keybd_event.VK_Y, true}, 'Z': {keybd_event.VK_Z, true},

	'1': {keybd_event.VK_1, false}, '2': {keybd_event.VK_2, false},
	'3': {keybd_event.VK_3, false}, '4': {keybd_event.VK_4, false},
	'5': {keybd_event.VK_5, false}, '6': {keybd_event.VK_6, false},
	'7': {keybd_event.VK_7, false}, '8': {keybd_event.VK_8, false},
	'9': {keybd_event.VK_9, false}, '0': {keybd_event.VK_0, false},

	'!': {keybd_event.VK_1, true}, '@': {keybd_event.VK_2, true},
	'#': {keybd_event.VK_3, true}, '$': {keybd_event.VK_4, true},
	'%': {keybd_event.VK_5, true}, '^': {keybd_event.VK_6, true},
	'&': {keybd_event.VK_7, true}, '*': {keybd_event.VK_8, true},
	'(': {keybd_event.VK_9, true}, ')': {keybd_event.VK_0, true},

	' ':  {keybd_event.VK_SPACE, false},
	'-':  {keybd_event.VK_MINUS, false},
	'_':  {keybd_event.VK_MINUS, true},
	'=':  {keybd_event.VK_EQUAL, false},
	'+':  {keybd_event.VK_EQUAL, true},
	'[':  {keybd_event.VK_LEFTBRACE, false},
	'{':  {keybd_event.VK_LEFTBRACE, true},
	']':  {keybd_event.VK_RIGHTBRACE, false},
	'}':  {keybd_event.VK_RIGHTBRACE, true},
	';':  {keybd_event.VK_SEMICOLON, false},
	':':  {keybd_event.VK_SEMICOLON, true},
	'\'': {keybd_event.VK_APOSTROPHE, false},
	'"':  {keybd_event.VK_APOSTROPHE, true},
	'`':  {keybd_event.VK_GRAVE, false},
	'~':  {keybd_event.VK_GRAVE, true},
	'\\': {keybd_event.VK_BACKSLASH, false},
	'|':  {keybd_event.VK_BACKSLASH, true},
	',':  {keybd_event.VK_COMMA, false},
	'<':  {keybd_event.VK_COMMA, true},
	'.':  {keybd_event.VK_DOT, false},
	'>':  {keybd_event.VK_DOT, true},
	'/':  {keybd_event.VK_SLASH, false},
	'?':  {keybd_event.VK_SLASH, true},
}

// LinuxMapper resolves characters against a static US layout table
type LinuxMapper struct{}

// NewMapper creates the Linux character-to-key mapper
func NewMapper() (keystroke.Mapper, error) {
	return &LinuxMapper{}, nil
}

// Map resolves ch against the US layout table
func (m *LinuxMapper) Map(ch rune) (keystroke.KeyCode, bool, error) {
	ks, ok := usLayout[ch]
	if !ok {
		return 0, false, fmt.Errorf("no key for character %q in US layout", ch)
	}
	return keystroke.KeyCode(ks.code), ks.shift, nil
}

// ShiftKey returns the sentinel the Linux injector recognises as shift
func (m *LinuxMapper) ShiftKey() keystroke.KeyCode {
	return shiftSentinel
}

// KeyByName returns the keybd_event code for a key name.
// Returns an error for names this platform cannot resolve.
func KeyByName(key string) (keystroke.KeyCode, error) {
	codes := map[string]int{
		"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
		"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
		"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
		"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
		"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
		"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
		"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
		"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
		"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,
		"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
		"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
		"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
		"9": keybd_event.VK_9,
		"f1": keybd_event.VK_F1, "f2": keybd_event.VK_F2,
		"f3": keybd_event.VK_F3, "f4": keybd_event.VK_F4,
		"f5": keybd_event.VK_F5, "f6": keybd_event.VK_F6,
		"f7": keybd_event.VK_F7, "f8": keybd_event.VK_F8,
		"f9": keybd_event.VK_F9, "f10": keybd_event.VK_F10,
		"f11": keybd_event.VK_F11, "f12": keybd_event.VK_F12,
		"num0": keybd_event.VK_KP0, "num1": keybd_event.VK_KP1,
		"num2": keybd_event.VK_KP2, "num3": keybd_event.VK_KP3,
		"num4": keybd_event.VK_KP4, "num5": keybd_event.VK_KP5,
		"num6": keybd_event.VK_KP6, "num7": keybd_event.VK_KP7,
		"num8": keybd_event.VK_KP8, "num9": keybd_event.VK_KP9,
		"numdecimal": keybd_event.VK_KPDOT,
		"space":      keybd_event.VK_SPACE,
		"enter":      keybd_event.VK_ENTER,
		"esc":        keybd_event.VK_ESC,
		"tab":        keybd_event.VK_TAB,
		"backspace":  keybd_event.VK_BACKSPACE,
	}

	if code, ok := codes[key]; ok {
		return keystroke.KeyCode(code), nil
	}

	return 0, fmt.Errorf("unknown key: %s", key)
}
