// Package keystroke turns macro text into an ordered sequence of abstract
// key events. It performs no I/O and never references a concrete OS type;
// character-to-key resolution is injected through the Mapper capability.
package keystroke

import "time"

// KeyCode identifies a key in platform terms. Its values are produced by a
// Mapper and consumed by the matching platform injector; the compiler only
// carries them through.
type KeyCode uint16

// Event is a single down or up action on one key.
type Event struct {
	Code  KeyCode
	Shift bool // the source character required the shift modifier
	Up    bool
}

// Down builds a key-down event.
func Down(code KeyCode) Event { return Event{Code: code} }

// Up builds a key-up event.
func Up(code KeyCode) Event { return Event{Code: code, Up: true} }

// Mapper resolves a character to a platform key code. Resolution is
// locale/OS-specific, so it is injected rather than hardcoded.
type Mapper interface {
	// Map resolves ch to a key code and whether shift must be held.
	// It returns an error for characters the current layout cannot type.
	Map(ch rune) (code KeyCode, shift bool, err error)
	// ShiftKey returns the code the injector understands as the shift
	// modifier key itself.
	ShiftKey() KeyCode
}

// Sequence is one compiled speak action. Pre is injected first, then the
// settle delay elapses, then Main is injected in order. The delay is data
// for the dispatch boundary; the compiler never sleeps.
type Sequence struct {
	Pre      []Event
	Settle   time.Duration
	Main     []Event
	Unmapped []rune // characters the mapper rejected, skipped non-fatally
}

// EventCount returns the total number of key events to be injected.
func (s Sequence) EventCount() int {
	return len(s.Pre) + len(s.Main)
}

// Compile builds the event sequence that types text into the focused
// application.
//
// The activation key is emitted as a lone down event with no matching up,
// and so is the trailing submit key. This asymmetry is intentional and
// matches the observed behavior the receiving applications depend on; do
// not pair them up. Every shift-requiring character gets its own fresh
// shift down/up pair, with no chording across characters.
func Compile(text string, m Mapper, activation, submit KeyCode, settle time.Duration) Sequence {
	seq := Sequence{
		Pre:    []Event{Down(activation)},
		Settle: settle,
		// 4 events per shifted char, plus the submit key
		Main: make([]Event, 0, 4*len(text)+1),
	}

	shiftKey := m.ShiftKey()
	for _, ch := range text {
		code, shift, err := m.Map(ch)
		if err != nil {
			seq.Unmapped = append(seq.Unmapped, ch)
			continue
		}
		if shift {
			seq.Main = append(seq.Main, Down(shiftKey))
		}
		seq.Main = append(seq.Main,
			Event{Code: code, Shift: shift},
			Event{Code: code, Shift: shift, Up: true},
		)
		if shift {
			seq.Main = append(seq.Main, Up(shiftKey))
		}
	}

	seq.Main = append(seq.Main, Down(submit))
	return seq
}
