// Package notify sends desktop notifications for state changes the user
// cannot otherwise see while another application has focus.
package notify

import (
	"github.com/gen2brain/beeep"
)

const appName = "MacroDeck"

// Notifier sends desktop notifications
type Notifier struct {
	enabled bool
}

// New creates a Notifier
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled turns notifications on or off
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Enabled shows whether all non-always-on hotkeys were just enabled or
// disabled.
func (n *Notifier) Enabled(on bool) {
	if on {
		n.notify("Hotkeys enabled")
	} else {
		n.notify("Hotkeys disabled")
	}
}

// Error reports a failure. Errors are shown even when regular notifications
// are off.
func (n *Notifier) Error(msg string) {
	_ = beeep.Alert(appName, msg, "")
}

func (n *Notifier) notify(message string) {
	if !n.enabled {
		return
	}
	_ = beeep.Notify(appName, message, "")
}
