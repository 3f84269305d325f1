package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"macrodeck/macro"
	"macrodeck/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// StatusSource exposes the live agent state to the dashboard
type StatusSource interface {
	Snapshot() macro.Snapshot
	HotkeysEnabled() bool
}

// Server serves the local status dashboard
type Server struct {
	db   *storage.DB // nil when history is disabled
	src  StatusSource
	port int
	hub  *Hub
}

// NewServer creates a dashboard server
func NewServer(db *storage.DB, src StatusSource, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:   db,
		src:  src,
		port: port,
		hub:  hub,
	}
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/banks", s.handleBanks)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf("localhost:%d", s.port)
	slog.Info("Starting web server", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))

	return http.ListenAndServe(addr, mux)
}

// StatusMessage is the live state pushed over the websocket
type StatusMessage struct {
	Snapshot       macro.Snapshot `json:"snapshot"`
	HotkeysEnabled bool           `json:"hotkeysEnabled"`
}

// SpeakMessage is one speak result pushed over the websocket
type SpeakMessage struct {
	Bank            string `json:"bank"`
	MacroIndex      int    `json:"macroIndex"`
	EventsSubmitted int    `json:"eventsSubmitted"`
	EventsAccepted  int    `json:"eventsAccepted"`
	Success         bool   `json:"success"`
}

// BroadcastStatus pushes the current selection and availability state to all
// connected clients.
func (s *Server) BroadcastStatus() {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{
			Snapshot:       s.src.Snapshot(),
			HotkeysEnabled: s.src.HotkeysEnabled(),
		},
	})
}

// BroadcastSpeak pushes one speak result to all connected clients
func (s *Server) BroadcastSpeak(sp *storage.Speak) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeSpeak,
		Data: SpeakMessage{
			Bank:            sp.Bank,
			MacroIndex:      sp.MacroIndex,
			EventsSubmitted: sp.EventsSubmitted,
			EventsAccepted:  sp.EventsAccepted,
			Success:         sp.Success,
		},
	})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}
