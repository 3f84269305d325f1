//go:build windows

package platform

import (
	"fmt"

	"macrodeck/keystroke"
)

const (
	vkShift    = 0x10
	vkLshift   = 0xA0
	vkCtrl     = 0x11
	vkAlt      = 0x12
	vkLwin     = 0x5B // Left Windows key
	vkRwin     = 0x5C // Right Windows key
)

// WindowsMapper resolves characters through the active keyboard layout
type WindowsMapper struct{}

// NewMapper creates the Windows character-to-key mapper
func NewMapper() (keystroke.Mapper, error) {
	return &WindowsMapper{}, nil
}

// Map resolves ch via VkKeyScanW. The low byte of the result is the virtual
// key, bit 0 of the high byte says shift must be held.
func (m *WindowsMapper) Map(ch rune) (keystroke.KeyCode, bool, error) {
	if ch > 0xFFFF {
		return 0, false, fmt.Errorf("character %q outside the basic plane", ch)
	}

	ret, _, _ := vkKeyScanW.Call(uintptr(uint16(ch)))
	scan := uint16(ret)
	if scan == 0xFFFF {
		return 0, false, fmt.Errorf("no key for character %q in current layout", ch)
	}

	vk := keystroke.KeyCode(scan & 0xFF)
	shift := scan>>8&0x01 != 0
	return vk, shift, nil
}

// ShiftKey returns the left shift virtual key
func (m *WindowsMapper) ShiftKey() keystroke.KeyCode {
	return vkLshift
}

// KeyByName returns the Windows virtual key code for a key name.
// Returns an error for names this platform cannot resolve.
func KeyByName(key string) (keystroke.KeyCode, error) {
	codes := map[string]keystroke.KeyCode{
		"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
		"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
		"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
		"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
		"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59, "z": 0x5A,
		"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
		"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
		"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
		"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
		"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
		"num0": 0x60, "num1": 0x61, "num2": 0x62, "num3": 0x63,
		"num4": 0x64, "num5": 0x65, "num6": 0x66, "num7": 0x67,
		"num8": 0x68, "num9": 0x69, "numdecimal": 0x6E,
		"space": 0x20, "enter": 0x0D, "esc": 0x1B,
		"tab": 0x09, "backspace": 0x08,
	}

	if code, ok := codes[key]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("unknown key: %s", key)
}
