package storage

import (
	"fmt"
)

// DailyStats represents usage for a single day
type DailyStats struct {
	Date         string
	TotalSpeaks  int
	TotalChars   int
	SuccessCount int
	FailureCount int
}

// BankStats represents usage grouped by bank
type BankStats struct {
	Bank         string
	TotalSpeaks  int
	TotalChars   int
	SuccessCount int
	FailureCount int
}

// OverallStats represents overall usage
type OverallStats struct {
	TotalSpeaks          int
	TotalChars           int
	TotalUnmapped        int
	SuccessCount         int
	FailureCount         int
	TotalEventsSubmitted int64
	TotalEventsAccepted  int64
}

// GetDailyStats retrieves usage grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_speaks,
			SUM(character_count) as total_chars,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count
		FROM speaks
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		err := rows.Scan(&s.Date, &s.TotalSpeaks, &s.TotalChars, &s.SuccessCount, &s.FailureCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetBankStats retrieves usage grouped by bank for the last N days
func (db *DB) GetBankStats(days int) ([]BankStats, error) {
	query := `
		SELECT
			bank,
			COUNT(*) as total_speaks,
			SUM(character_count) as total_chars,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count
		FROM speaks
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY bank
		ORDER BY total_speaks DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank stats: %w", err)
	}
	defer rows.Close()

	var stats []BankStats
	for rows.Next() {
		var s BankStats
		err := rows.Scan(&s.Bank, &s.TotalSpeaks, &s.TotalChars, &s.SuccessCount, &s.FailureCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall usage for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_speaks,
			COALESCE(SUM(character_count), 0) as total_chars,
			COALESCE(SUM(unmapped_count), 0) as total_unmapped,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count,
			COALESCE(SUM(events_submitted), 0) as total_events_submitted,
			COALESCE(SUM(events_accepted), 0) as total_events_accepted
		FROM speaks
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalSpeaks,
		&stats.TotalChars,
		&stats.TotalUnmapped,
		&stats.SuccessCount,
		&stats.FailureCount,
		&stats.TotalEventsSubmitted,
		&stats.TotalEventsAccepted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
