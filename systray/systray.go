package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"
)

// Callbacks are invoked from tray menu clicks
type Callbacks struct {
	// OnToggle flips hotkey availability and returns the new state.
	OnToggle func() bool
	// OnQuit is called once when the user picks Quit.
	OnQuit func()
}

// Manager manages the system tray icon and menu
type Manager struct {
	webPort   int // 0 hides the dashboard item
	iconData  []byte
	callbacks Callbacks
}

// New creates a tray manager
func New(webPort int, iconData []byte, callbacks Callbacks) *Manager {
	return &Manager{
		webPort:   webPort,
		iconData:  iconData,
		callbacks: callbacks,
	}
}

// Run starts the system tray (blocking call). ready is invoked once the tray
// is up, so the caller can start the rest of the program from it.
func (m *Manager) Run(ready func()) {
	systray.Run(func() {
		m.onReady()
		if ready != nil {
			ready()
		}
	}, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("MacroDeck")
	systray.SetTooltip("MacroDeck - Chat Macros")

	mToggle := systray.AddMenuItemCheckbox("Hotkeys Enabled", "Enable or disable the macro hotkeys", true)
	var mDashboard *systray.MenuItem
	if m.webPort > 0 {
		mDashboard = systray.AddMenuItem("Open Dashboard", "Open the MacroDeck status page")
	}
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit MacroDeck")

	dashboardCh := make(chan struct{})
	if mDashboard != nil {
		go func() {
			for range mDashboard.ClickedCh {
				dashboardCh <- struct{}{}
			}
		}()
	}

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				if m.callbacks.OnToggle == nil {
					continue
				}
				if m.callbacks.OnToggle() {
					mToggle.Check()
				} else {
					mToggle.Uncheck()
				}
			case <-dashboardCh:
				m.openDashboard()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				if m.callbacks.OnQuit != nil {
					m.callbacks.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openDashboard opens the status page in the default browser
func (m *Manager) openDashboard() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open dashboard", "error", err)
	}
}
