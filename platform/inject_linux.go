//go:build linux

package platform

import (
	"fmt"
	"time"

	"github.com/micmonay/keybd_event"

	"macrodeck/keystroke"
)

// LinuxInjector implements the Injector interface via uinput through
// keybd_event. The library cannot hold a bare key down, so every key-down is
// sent as a full tap and the paired key-up is consumed without further work.
// The lone activation and submit key-downs become taps on this platform.
type LinuxInjector struct {
	kb keybd_event.KeyBonding
}

// NewInjector creates the Linux key event injector. Needs write access to
// /dev/uinput.
func NewInjector() (Injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("failed to open uinput: %w", err)
	}

	// The virtual keyboard is not usable until the kernel has registered
	// it; the library documents this wait.
	time.Sleep(2 * time.Second)

	return &LinuxInjector{kb: kb}, nil
}

// Inject taps out the pre events, waits the settle delay, then taps out the
// main events in order.
func (j *LinuxInjector) Inject(seq keystroke.Sequence) (int, error) {
	accepted, err := j.tap(seq.Pre)
	if err != nil {
		return accepted, err
	}

	time.Sleep(seq.Settle)

	n, err := j.tap(seq.Main)
	accepted += n
	return accepted, err
}

func (j *LinuxInjector) tap(events []keystroke.Event) (int, error) {
	accepted := 0
	for _, ev := range events {
		// Shift state is already carried on the main key events.
		if ev.Code == shiftSentinel || ev.Up {
			accepted++
			continue
		}

		j.kb.Clear()
		j.kb.SetKeys(int(ev.Code))
		j.kb.HasSHIFT(ev.Shift)
		if err := j.kb.Launching(); err != nil {
			return accepted, fmt.Errorf("key tap failed: %w", err)
		}
		accepted++
	}
	return accepted, nil
}
