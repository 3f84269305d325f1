package web

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// handleBanks returns all banks with their macros and cursors
func (s *Server) handleBanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.src.Snapshot())
}

// handleStatus returns the current selection and availability state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.src.Snapshot()

	status := struct {
		Bank           string `json:"bank"`
		Macro          string `json:"macro"`
		BankCursor     int    `json:"bankCursor"`
		MacroCursor    int    `json:"macroCursor"`
		HotkeysEnabled bool   `json:"hotkeysEnabled"`
	}{
		HotkeysEnabled: s.src.HotkeysEnabled(),
	}

	if len(snap.Banks) > 0 {
		bank := snap.Banks[snap.BankCursor]
		status.Bank = bank.Name
		status.BankCursor = snap.BankCursor
		status.MacroCursor = bank.Cursor
		if len(bank.Macros) > 0 {
			status.Macro = bank.Macros[bank.Cursor]
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// handleStats returns usage statistics for the last N days (default 30)
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		http.Error(w, "History is disabled", http.StatusServiceUnavailable)
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	banks, err := s.db.GetBankStats(days)
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Days    int  `json:"days"`
		Overall any  `json:"overall"`
		Daily   any  `json:"daily"`
		Banks   any  `json:"banks"`
	}{days, overall, daily, banks}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleHistory returns recent speak records with pagination
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		http.Error(w, "History is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	speaks, err := s.db.GetSpeaks(limit, offset)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	total, err := s.db.GetSpeakCount()
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Total  int `json:"total"`
		Speaks any `json:"speaks"`
	}{total, speaks}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
