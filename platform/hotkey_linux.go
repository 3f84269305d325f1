//go:build linux

package platform

import (
	"context"
	"fmt"

	"golang.design/x/hotkey"
)

// hotkeyKeys maps key names to golang.design/x/hotkey keys. The X11 backend
// has no numeric-keypad keys, so the numpad defaults from the config must be
// rebound on this platform.
var hotkeyKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace, "tab": hotkey.KeyTab,
	"enter": hotkey.KeyReturn, "esc": hotkey.KeyEscape,
}

// LinuxHotkeys implements the Hotkeys interface by registering each combo
// with the X server through golang.design/x/hotkey.
type LinuxHotkeys struct{}

// NewHotkeys creates the Linux hotkey listener
func NewHotkeys() Hotkeys {
	return &LinuxHotkeys{}
}

// Listen registers every combo and fans their key-down events into a single
// channel until ctx is cancelled.
func (h *LinuxHotkeys) Listen(ctx context.Context, combos []KeyCombo) (<-chan Fired, error) {
	registered := make([]*hotkey.Hotkey, 0, len(combos))

	unregisterAll := func() {
		for _, hk := range registered {
			hk.Unregister()
		}
	}

	events := make(chan Fired, 16)
	for _, c := range combos {
		key, ok := hotkeyKeys[c.Key]
		if !ok {
			unregisterAll()
			return nil, fmt.Errorf("combo %d: key %q not available on this platform, rebind it in the config", c.ID, c.Key)
		}

		var mods []hotkey.Modifier
		if c.Ctrl {
			mods = append(mods, hotkey.ModCtrl)
		}
		if c.Shift {
			mods = append(mods, hotkey.ModShift)
		}
		if c.Alt {
			mods = append(mods, hotkey.Mod1)
		}
		if c.Win {
			mods = append(mods, hotkey.Mod4)
		}

		hk := hotkey.New(mods, key)
		if err := hk.Register(); err != nil {
			unregisterAll()
			return nil, fmt.Errorf("combo %d: register failed: %w", c.ID, err)
		}
		registered = append(registered, hk)

		go func(id int, hk *hotkey.Hotkey) {
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-hk.Keydown():
					if !ok {
						return
					}
					select {
					case events <- Fired{ID: id}:
					default:
					}
				}
			}
		}(c.ID, hk)
	}

	go func() {
		<-ctx.Done()
		unregisterAll()
	}()

	return events, nil
}
