package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Speak records one attempt to type the selected macro into the focused
// application.
type Speak struct {
	ID              int64
	Timestamp       time.Time
	Bank            string
	MacroIndex      int
	CharacterCount  int
	UnmappedCount   int
	EventsSubmitted int
	EventsAccepted  int
	Success         bool
	ErrorMessage    string
}

// SaveSpeak saves a speak record to the database
func (db *DB) SaveSpeak(s *Speak) error {
	query := `
		INSERT INTO speaks (
			bank, macro_index, character_count, unmapped_count,
			events_submitted, events_accepted, success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		s.Bank, s.MacroIndex, s.CharacterCount, s.UnmappedCount,
		s.EventsSubmitted, s.EventsAccepted, s.Success, s.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save speak: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	s.ID = id
	return nil
}

// GetSpeaks retrieves speak records with pagination, newest first
func (db *DB) GetSpeaks(limit, offset int) ([]Speak, error) {
	query := `
		SELECT
			id, timestamp, bank, macro_index, character_count,
			unmapped_count, events_submitted, events_accepted,
			success, error_message
		FROM speaks
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query speaks: %w", err)
	}
	defer rows.Close()

	var speaks []Speak
	for rows.Next() {
		var s Speak
		var errorMessage sql.NullString

		err := rows.Scan(
			&s.ID, &s.Timestamp, &s.Bank, &s.MacroIndex, &s.CharacterCount,
			&s.UnmappedCount, &s.EventsSubmitted, &s.EventsAccepted,
			&s.Success, &errorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan speak: %w", err)
		}

		if errorMessage.Valid {
			s.ErrorMessage = errorMessage.String
		}

		speaks = append(speaks, s)
	}

	return speaks, rows.Err()
}

// GetSpeakCount returns the total number of recorded speaks
func (db *DB) GetSpeakCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM speaks").Scan(&count)
	return count, err
}
