package macro

import (
	"errors"
	"strings"
	"testing"
)

const exampleFile = "BankFoo\n" +
	"\tYou're trash.\n" +
	"\tI'd say you were cancer, but cancer wins sometimes.\n" +
	"\n" +
	"BankBar\n" +
	"\tglhf\n" +
	"\tGood Luck Having Fun\n"

func TestParseExample(t *testing.T) {
	store, err := Parse(strings.NewReader(exampleFile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Banks) != 2 {
		t.Fatalf("got %d banks, want 2", len(snap.Banks))
	}
	if snap.BankCursor != 0 {
		t.Errorf("BankCursor = %d, want 0", snap.BankCursor)
	}

	foo := snap.Banks[0]
	if foo.Name != "BankFoo" {
		t.Errorf("Banks[0].Name = %q, want %q", foo.Name, "BankFoo")
	}
	wantFoo := []string{"You're trash.", "I'd say you were cancer, but cancer wins sometimes."}
	if len(foo.Macros) != len(wantFoo) {
		t.Fatalf("Banks[0] has %d macros, want %d", len(foo.Macros), len(wantFoo))
	}
	for i, want := range wantFoo {
		if foo.Macros[i] != want {
			t.Errorf("Banks[0].Macros[%d] = %q, want %q", i, foo.Macros[i], want)
		}
	}
	if foo.Cursor != 0 {
		t.Errorf("Banks[0].Cursor = %d, want 0", foo.Cursor)
	}

	bar := snap.Banks[1]
	if bar.Name != "BankBar" {
		t.Errorf("Banks[1].Name = %q, want %q", bar.Name, "BankBar")
	}
	if len(bar.Macros) != 2 || bar.Macros[0] != "glhf" || bar.Macros[1] != "Good Luck Having Fun" {
		t.Errorf("Banks[1].Macros = %v", bar.Macros)
	}
}

func TestParseSkipsBlankAndComments(t *testing.T) {
	input := "# header comment\n\nBank\n# not a macro\n\t  spaced out  \n\n"
	store, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Banks) != 1 {
		t.Fatalf("got %d banks, want 1", len(snap.Banks))
	}
	if len(snap.Banks[0].Macros) != 1 || snap.Banks[0].Macros[0] != "spaced out" {
		t.Errorf("Macros = %v, want [spaced out]", snap.Banks[0].Macros)
	}
}

func TestParseMacroBeforeHeader(t *testing.T) {
	input := "\torphan macro\nBank\n\tkept\n"
	store, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Banks) != 1 {
		t.Fatalf("got %d banks, want 1", len(snap.Banks))
	}
	if len(snap.Banks[0].Macros) != 1 || snap.Banks[0].Macros[0] != "kept" {
		t.Errorf("Macros = %v, want [kept]", snap.Banks[0].Macros)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.txt")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v, n int
		want int
	}{
		{"zero length", 5, 0, 0},
		{"underflow", -1, 3, 2},
		{"overflow", 3, 3, 0},
		{"in range low", 0, 3, 0},
		{"in range high", 2, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.v, tt.n); got != tt.want {
				t.Errorf("wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
			}
		})
	}
}

func TestMoveWraparound(t *testing.T) {
	store := mustParse(t, exampleFile)

	store.Move(-1, 0)
	if snap := store.Snapshot(); snap.BankCursor != 1 {
		t.Errorf("after Move(-1,0) from bank 0, BankCursor = %d, want 1", snap.BankCursor)
	}

	store.Move(+1, 0)
	if snap := store.Snapshot(); snap.BankCursor != 0 {
		t.Errorf("after Move(+1,0) from last bank, BankCursor = %d, want 0", snap.BankCursor)
	}
}

func TestStickySelection(t *testing.T) {
	store := mustParse(t, exampleFile)

	// Select macro 1 in bank 0, then wander around bank 1.
	store.Move(0, +1)
	store.Move(+1, 0)
	store.Move(0, +1)
	store.Move(0, +1) // wraps within bank 1

	store.Move(-1, 0)
	snap := store.Snapshot()
	if snap.BankCursor != 0 {
		t.Fatalf("BankCursor = %d, want 0", snap.BankCursor)
	}
	if got := snap.Banks[0].Cursor; got != 1 {
		t.Errorf("bank 0 cursor = %d, want 1 (selection must survive bank switches)", got)
	}
}

func TestCursorsStayInRange(t *testing.T) {
	store := mustParse(t, exampleFile)

	deltas := []int{-1, 0, +1}
	for i := 0; i < 200; i++ {
		store.Move(deltas[i%3], deltas[(i+1)%3])

		snap := store.Snapshot()
		if snap.BankCursor < 0 || snap.BankCursor >= len(snap.Banks) {
			t.Fatalf("step %d: BankCursor %d out of range", i, snap.BankCursor)
		}
		for bi, b := range snap.Banks {
			if b.Cursor < 0 || b.Cursor >= len(b.Macros) {
				t.Fatalf("step %d: bank %d cursor %d out of range", i, bi, b.Cursor)
			}
		}
	}
}

func TestMoveEmptyStore(t *testing.T) {
	store := &Store{}
	store.Move(+1, +1) // must not panic

	if _, _, ok := store.Selected(); ok {
		t.Error("Selected() ok = true on empty store")
	}
}

func TestSelectedEmptyBank(t *testing.T) {
	store := mustParse(t, "Lonely\n")

	bank, _, ok := store.Selected()
	if ok {
		t.Error("Selected() ok = true for bank with no macros")
	}
	if bank != "Lonely" {
		t.Errorf("bank = %q, want %q", bank, "Lonely")
	}
}

func mustParse(t *testing.T, input string) *Store {
	t.Helper()
	store, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return store
}
