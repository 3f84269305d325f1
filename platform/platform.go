// Package platform isolates everything OS-specific behind small capability
// interfaces: global hotkey detection, character-to-key mapping, and key
// event injection. The rest of the program never touches a native API.
package platform

import (
	"context"

	"macrodeck/keystroke"
)

// KeyCombo is one watched key combination. ID is echoed back in Fired so the
// caller can tell which binding triggered.
type KeyCombo struct {
	ID    int
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string // key name, e.g. "num0", "f5", "a"
}

// Fired reports a key-down of one watched combo.
type Fired struct {
	ID int
}

// Hotkeys provides global hotkey detection for a fixed set of combos.
type Hotkeys interface {
	// Listen watches all combos until ctx is cancelled. Events are
	// delivered on key-down only.
	Listen(ctx context.Context, combos []KeyCombo) (<-chan Fired, error)
}

// Injector performs the actual key event injection. It waits out the
// sequence's settle delay between the pre and main events, injects events
// preserving order, and returns the number of events the OS accepted.
// A short count is the caller's problem to log; injection is never retried.
type Injector interface {
	Inject(seq keystroke.Sequence) (accepted int, err error)
}
