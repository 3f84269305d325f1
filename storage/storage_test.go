package storage

import (
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetSpeaks(t *testing.T) {
	db := openTestDB(t)

	s := &Speak{
		Bank:            "BankFoo",
		MacroIndex:      1,
		CharacterCount:  12,
		UnmappedCount:   0,
		EventsSubmitted: 27,
		EventsAccepted:  27,
		Success:         true,
	}
	if err := db.SaveSpeak(s); err != nil {
		t.Fatalf("SaveSpeak() error = %v", err)
	}
	if s.ID == 0 {
		t.Error("SaveSpeak() did not set ID")
	}

	fail := &Speak{
		Bank:            "BankBar",
		MacroIndex:      0,
		CharacterCount:  4,
		EventsSubmitted: 10,
		EventsAccepted:  6,
		Success:         false,
		ErrorMessage:    "SendInput failed",
	}
	if err := db.SaveSpeak(fail); err != nil {
		t.Fatalf("SaveSpeak() error = %v", err)
	}

	speaks, err := db.GetSpeaks(10, 0)
	if err != nil {
		t.Fatalf("GetSpeaks() error = %v", err)
	}
	if len(speaks) != 2 {
		t.Fatalf("got %d speaks, want 2", len(speaks))
	}

	count, err := db.GetSpeakCount()
	if err != nil {
		t.Fatalf("GetSpeakCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("GetSpeakCount() = %d, want 2", count)
	}

	var failed *Speak
	for i := range speaks {
		if !speaks[i].Success {
			failed = &speaks[i]
		}
	}
	if failed == nil {
		t.Fatal("failed speak not returned")
	}
	if failed.ErrorMessage != "SendInput failed" {
		t.Errorf("ErrorMessage = %q", failed.ErrorMessage)
	}
	if failed.EventsAccepted != 6 {
		t.Errorf("EventsAccepted = %d, want 6", failed.EventsAccepted)
	}
}

func TestStatsEmpty(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.GetOverallStats(30)
	if err != nil {
		t.Fatalf("GetOverallStats() error = %v", err)
	}
	if stats.TotalSpeaks != 0 {
		t.Errorf("TotalSpeaks = %d, want 0", stats.TotalSpeaks)
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)

	rows := []*Speak{
		{Bank: "BankFoo", CharacterCount: 10, EventsSubmitted: 22, EventsAccepted: 22, Success: true},
		{Bank: "BankFoo", CharacterCount: 5, EventsSubmitted: 12, EventsAccepted: 12, Success: true},
		{Bank: "BankBar", CharacterCount: 8, UnmappedCount: 1, EventsSubmitted: 18, EventsAccepted: 9, Success: false},
	}
	for _, r := range rows {
		if err := db.SaveSpeak(r); err != nil {
			t.Fatalf("SaveSpeak() error = %v", err)
		}
	}

	overall, err := db.GetOverallStats(30)
	if err != nil {
		t.Fatalf("GetOverallStats() error = %v", err)
	}
	if overall.TotalSpeaks != 3 {
		t.Errorf("TotalSpeaks = %d, want 3", overall.TotalSpeaks)
	}
	if overall.TotalChars != 23 {
		t.Errorf("TotalChars = %d, want 23", overall.TotalChars)
	}
	if overall.SuccessCount != 2 || overall.FailureCount != 1 {
		t.Errorf("success/failure = %d/%d, want 2/1", overall.SuccessCount, overall.FailureCount)
	}
	if overall.TotalEventsSubmitted != 52 || overall.TotalEventsAccepted != 43 {
		t.Errorf("events = %d/%d, want 52/43", overall.TotalEventsSubmitted, overall.TotalEventsAccepted)
	}

	banks, err := db.GetBankStats(30)
	if err != nil {
		t.Fatalf("GetBankStats() error = %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("got %d bank rows, want 2", len(banks))
	}
	if banks[0].Bank != "BankFoo" || banks[0].TotalSpeaks != 2 {
		t.Errorf("banks[0] = %+v, want BankFoo with 2 speaks", banks[0])
	}

	daily, err := db.GetDailyStats(7)
	if err != nil {
		t.Fatalf("GetDailyStats() error = %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("got %d daily rows, want 1", len(daily))
	}
	if daily[0].TotalSpeaks != 3 {
		t.Errorf("daily TotalSpeaks = %d, want 3", daily[0].TotalSpeaks)
	}
}
