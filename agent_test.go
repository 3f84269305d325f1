package main

import (
	"fmt"
	"strings"
	"testing"
	"unicode"

	"macrodeck/config"
	"macrodeck/keystroke"
	"macrodeck/macro"
	"macrodeck/notify"
)

// fakeMapper maps letters to their rune value; uppercase requires shift
type fakeMapper struct{}

func (fakeMapper) Map(ch rune) (keystroke.KeyCode, bool, error) {
	if ch > 0xFF {
		return 0, false, fmt.Errorf("no key for %q", ch)
	}
	return keystroke.KeyCode(unicode.ToUpper(ch)), unicode.IsUpper(ch), nil
}

func (fakeMapper) ShiftKey() keystroke.KeyCode { return 0xA0 }

// fakeInjector records sequences and accepts every event
type fakeInjector struct {
	seqs []keystroke.Sequence
}

func (f *fakeInjector) Inject(seq keystroke.Sequence) (int, error) {
	f.seqs = append(f.seqs, seq)
	return seq.EventCount(), nil
}

func testHotkeys() config.HotkeysConfig {
	return config.HotkeysConfig{
		Toggle:    "num0",
		Quit:      "numdecimal",
		BankPrev:  "num1",
		BankNext:  "num2",
		MacroPrev: "num4",
		MacroNext: "num5",
		Speak:     "num8",
	}
}

func newTestAgent(t *testing.T, input string) (*Agent, *fakeInjector) {
	t.Helper()

	store, err := macro.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	bindings, err := buildBindings(testHotkeys())
	if err != nil {
		t.Fatalf("buildBindings() error = %v", err)
	}

	injector := &fakeInjector{}
	return &Agent{
		store:      store,
		mapper:     fakeMapper{},
		injector:   injector,
		notifier:   notify.New(false),
		bindings:   bindings,
		activation: 0x54,
		submit:     0x0D,
		actions:    make(chan Action, 4),
		quitCh:     make(chan struct{}),
	}, injector
}

const testMacros = "BankFoo\n\tone\n\ttwo\nBankBar\n\tglhf\n"

func TestToggleIdempotence(t *testing.T) {
	a, _ := newTestAgent(t, testMacros)

	if !a.HotkeysEnabled() {
		t.Fatal("hotkeys should start enabled")
	}

	if state := a.Toggle(); state {
		t.Error("first Toggle() = true, want false")
	}
	for _, b := range a.bindings {
		if b.alwaysOn && !b.enabled {
			t.Errorf("always-on binding %s was disabled", b.name)
		}
		if !b.alwaysOn && b.enabled {
			t.Errorf("binding %s still enabled after toggle", b.name)
		}
	}

	if state := a.Toggle(); !state {
		t.Error("second Toggle() = false, want true")
	}
	for _, b := range a.bindings {
		if !b.enabled {
			t.Errorf("binding %s not restored after double toggle", b.name)
		}
	}
}

func TestHandleMove(t *testing.T) {
	a, _ := newTestAgent(t, testMacros)

	a.handle(Action{Kind: ActionMove, BankDelta: +1})
	a.handle(Action{Kind: ActionMove, MacroDelta: -1}) // wraps within BankBar

	snap := a.Snapshot()
	if snap.BankCursor != 1 {
		t.Errorf("BankCursor = %d, want 1", snap.BankCursor)
	}
	if got := snap.Banks[1].Cursor; got != 0 {
		t.Errorf("BankBar cursor = %d, want 0 (single macro wraps onto itself)", got)
	}
}

func TestHandleSpeak(t *testing.T) {
	a, injector := newTestAgent(t, testMacros)

	a.handle(Action{Kind: ActionSpeak})

	if len(injector.seqs) != 1 {
		t.Fatalf("injector received %d sequences, want 1", len(injector.seqs))
	}
	seq := injector.seqs[0]

	if len(seq.Pre) != 1 || seq.Pre[0].Code != a.activation || seq.Pre[0].Up {
		t.Errorf("Pre = %v, want single activation key-down", seq.Pre)
	}
	last := seq.Main[len(seq.Main)-1]
	if last.Code != a.submit || last.Up {
		t.Errorf("last event = %v, want down-only submit", last)
	}
	// "one" compiles to 3 down/up pairs plus the submit key.
	if got := len(seq.Main); got != 7 {
		t.Errorf("len(Main) = %d, want 7", got)
	}
}

func TestSpeakNothingSelected(t *testing.T) {
	a, injector := newTestAgent(t, "EmptyBank\n")

	a.handle(Action{Kind: ActionSpeak})

	if len(injector.seqs) != 0 {
		t.Errorf("injector received %d sequences, want 0", len(injector.seqs))
	}
}

func TestHandleQuit(t *testing.T) {
	a, _ := newTestAgent(t, testMacros)

	a.handle(Action{Kind: ActionQuit})

	select {
	case <-a.quitCh:
	default:
		t.Error("quit channel not closed")
	}

	a.handle(Action{Kind: ActionQuit}) // must not panic on second quit
}

func TestBuildBindingsBadCombo(t *testing.T) {
	hk := testHotkeys()
	hk.Speak = "bogus+x"

	if _, err := buildBindings(hk); err == nil {
		t.Error("buildBindings() accepted an invalid combo")
	}
}
