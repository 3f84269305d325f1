package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"macrodeck/config"
	"macrodeck/macro"
	"macrodeck/notify"
	"macrodeck/storage"
	"macrodeck/systray"
	"macrodeck/web"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	// Load the macro file; an unreadable file is fatal
	macroPath := "macros.txt"
	if len(os.Args) > 1 {
		macroPath = os.Args[1]
	}
	store, err := macro.Load(macroPath)
	if err != nil {
		slog.Error("Failed to load macro file", "path", macroPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Macros loaded", "path", macroPath, "banks", store.BankCount())

	notifier := notify.New(cfg.Notifications)

	// Open the history database
	var db *storage.DB
	if cfg.History.Enabled {
		configDir, err := config.ConfigDir()
		if err == nil {
			db, err = storage.Open(configDir)
		}
		if err != nil {
			slog.Warn("History disabled, database unavailable", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	// Create agent
	agent, err := NewAgent(cfg, store, db, notifier)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Start the dashboard
	webPort := 0
	if cfg.Web.Enabled {
		webPort = cfg.Web.Port
		srv := web.NewServer(db, agent, cfg.Web.Port)
		agent.SetBroadcaster(srv)
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Web server stopped", "error", err)
			}
		}()
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tray := systray.New(webPort, nil, systray.Callbacks{
		OnToggle: agent.Toggle,
		OnQuit:   agent.Quit,
	})

	// The tray owns the main thread; the agent loop runs beside it and
	// tears the tray down when it stops.
	errCh := make(chan error, 1)
	tray.Run(func() {
		go func() {
			errCh <- agent.Run(ctx)
			tray.Stop()
		}()
	})

	if err := <-errCh; err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}

	slog.Info("MacroDeck stopped")
}
