//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"macrodeck/keystroke"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
	vkKeyScanW     = user32.NewProc("VkKeyScanW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// WindowsInjector implements the Injector interface via SendInput
type WindowsInjector struct{}

// NewInjector creates the Windows key event injector
func NewInjector() (Injector, error) {
	return &WindowsInjector{}, nil
}

// Inject sends the pre events, waits out the settle delay so the target
// application can open its input field, then sends the main events in one
// SendInput call. The accepted count is whatever the OS reports; nothing is
// retried.
func (j *WindowsInjector) Inject(seq keystroke.Sequence) (int, error) {
	accepted := 0

	if len(seq.Pre) > 0 {
		n, err := send(seq.Pre)
		accepted += n
		if err != nil {
			return accepted, err
		}
	}

	time.Sleep(seq.Settle)

	if len(seq.Main) > 0 {
		n, err := send(seq.Main)
		accepted += n
		if err != nil {
			return accepted, err
		}
	}

	return accepted, nil
}

// send converts events to INPUT structures and submits them in one call,
// preserving order.
func send(events []keystroke.Event) (int, error) {
	inputs := make([]input, len(events))
	for i, ev := range events {
		scan, _, _ := mapVirtualKeyW.Call(uintptr(ev.Code), mapvkVkToVsc)

		var flags uint32
		if ev.Up {
			flags = keyeventfKeyup
		}

		inputs[i] = input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     uint16(ev.Code),
				wScan:   uint16(scan),
				dwFlags: flags,
			},
		}
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)

	if ret == 0 {
		return 0, fmt.Errorf("SendInput failed: %w", err)
	}

	return int(ret), nil
}
