// Package macro holds the bank/macro data model and the navigation cursors.
package macro

// Bank is a named, ordered group of macro strings with its own remembered
// selection.
type Bank struct {
	Name   string
	Macros []string
	cursor int
}

// Store owns the ordered collection of banks. It is built once at load time
// and never structurally modified afterwards; only the cursors move.
type Store struct {
	banks      []Bank
	bankCursor int
}

// Move applies a relative bank move and a relative macro move in one call.
// Both cursors are corrected by wraparound and are always in range afterwards.
// Each bank keeps its own macro cursor, so switching banks never resets the
// destination bank's selection.
func (s *Store) Move(bankDelta, macroDelta int) {
	s.bankCursor = wrap(s.bankCursor+bankDelta, len(s.banks))
	if len(s.banks) == 0 {
		return
	}
	bank := &s.banks[s.bankCursor]
	bank.cursor = wrap(bank.cursor+macroDelta, len(bank.Macros))
}

// wrap corrects a single-step cursor over/underflow. It is deliberately not a
// modulo: all callers move by at most one position per call, and deltas larger
// than n are not supported.
func wrap(v, n int) int {
	switch {
	case n == 0:
		return 0
	case v < 0:
		return n - 1
	case v >= n:
		return 0
	}
	return v
}

// Selected returns the currently selected bank name and macro text.
// ok is false when the store has no banks or the current bank has no macros.
func (s *Store) Selected() (bank, text string, ok bool) {
	if len(s.banks) == 0 {
		return "", "", false
	}
	b := &s.banks[s.bankCursor]
	if len(b.Macros) == 0 {
		return b.Name, "", false
	}
	return b.Name, b.Macros[b.cursor], true
}

// BankCount returns the number of loaded banks.
func (s *Store) BankCount() int {
	return len(s.banks)
}

// BankSnapshot is a read-only copy of one bank's state.
type BankSnapshot struct {
	Name   string   `json:"name"`
	Macros []string `json:"macros"`
	Cursor int      `json:"cursor"`
}

// Snapshot is a read-only copy of the whole store, for status reporting.
type Snapshot struct {
	Banks      []BankSnapshot `json:"banks"`
	BankCursor int            `json:"bankCursor"`
}

// Snapshot copies the current banks and cursors.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Banks:      make([]BankSnapshot, len(s.banks)),
		BankCursor: s.bankCursor,
	}
	for i, b := range s.banks {
		macros := make([]string, len(b.Macros))
		copy(macros, b.Macros)
		snap.Banks[i] = BankSnapshot{Name: b.Name, Macros: macros, Cursor: b.cursor}
	}
	return snap
}
