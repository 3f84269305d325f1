//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmSyskeydown = 0x0104
	pmRemove     = 0x0001
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// watched is one resolved combo the hook matches key-downs against.
type watched struct {
	combo KeyCombo
	vk    uint32
}

// WindowsHotkeys implements the Hotkeys interface with a low-level keyboard
// hook, matching a whole set of combos from a single hook.
type WindowsHotkeys struct {
	mu      sync.Mutex
	watched []watched
	events  chan Fired
	hook    uintptr
	done    chan struct{}
}

// NewHotkeys creates the Windows hotkey listener
func NewHotkeys() Hotkeys {
	return &WindowsHotkeys{}
}

// Listen starts watching all combos until ctx is cancelled
func (h *WindowsHotkeys) Listen(ctx context.Context, combos []KeyCombo) (<-chan Fired, error) {
	resolved := make([]watched, 0, len(combos))
	for _, c := range combos {
		vk, err := KeyByName(c.Key)
		if err != nil {
			return nil, fmt.Errorf("combo %d: %w", c.ID, err)
		}
		resolved = append(resolved, watched{combo: c, vk: uint32(vk)})
	}

	h.mu.Lock()
	h.watched = resolved
	h.events = make(chan Fired, 16)
	h.done = make(chan struct{})
	h.mu.Unlock()

	// Start hook in a goroutine
	errCh := make(chan error, 1)
	go h.runHook(errCh)

	// Wait for hook to be installed or error
	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Monitor context cancellation
	go func() {
		<-ctx.Done()
		close(h.done)
		if h.hook != 0 {
			unhookWindowsHookEx.Call(h.hook)
		}
	}()

	return h.events, nil
}

func (h *WindowsHotkeys) runHook(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			h.handleKeyEvent(wParam, kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)

	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}

	h.mu.Lock()
	h.hook = hook
	h.mu.Unlock()

	errCh <- nil

	// Message loop
	var m msg
	for {
		select {
		case <-h.done:
			return
		default:
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				continue
			}
			runtime.Gosched()
		}
	}
}

// handleKeyEvent fires the first watched combo whose key and modifier state
// match a key-down. Key-ups are ignored; actions trigger on press, the way
// WM_HOTKEY would deliver them.
func (h *WindowsHotkeys) handleKeyEvent(wParam uintptr, kbInfo *kbdllhookstruct) {
	if wParam != wmKeydown && wParam != wmSyskeydown {
		return
	}

	h.mu.Lock()
	watched := h.watched
	h.mu.Unlock()

	for _, w := range watched {
		if kbInfo.vkCode != w.vk {
			continue
		}
		if !h.modifiersMatch(w.combo) {
			continue
		}
		select {
		case h.events <- Fired{ID: w.combo.ID}:
		default:
		}
		return
	}
}

func (h *WindowsHotkeys) modifiersMatch(c KeyCombo) bool {
	ctrl := h.isKeyPressed(vkCtrl)
	shift := h.isKeyPressed(vkShift)
	alt := h.isKeyPressed(vkAlt)
	win := h.isKeyPressed(vkLwin) || h.isKeyPressed(vkRwin)

	return ctrl == c.Ctrl &&
		shift == c.Shift &&
		alt == c.Alt &&
		win == c.Win
}

func (h *WindowsHotkeys) isKeyPressed(vk int) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}
