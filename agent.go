package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"macrodeck/config"
	"macrodeck/keystroke"
	"macrodeck/macro"
	"macrodeck/notify"
	"macrodeck/platform"
	"macrodeck/storage"
)

// ActionKind tags the fixed set of commands a hotkey can trigger
type ActionKind int

const (
	ActionQuit ActionKind = iota
	ActionToggle
	ActionMove
	ActionSpeak
)

// Action is one routed command. BankDelta/MacroDelta are only meaningful for
// ActionMove.
type Action struct {
	Kind       ActionKind
	BankDelta  int
	MacroDelta int
}

// binding ties one configured key combo to an action. Always-on bindings
// (quit, toggle) stay active when availability is toggled off; all others
// carry a sticky enabled flag flipped as a group.
type binding struct {
	name     string
	combo    config.KeyCombo
	action   Action
	alwaysOn bool
	enabled  bool
}

// Broadcaster pushes live state to the dashboard
type Broadcaster interface {
	BroadcastStatus()
	BroadcastSpeak(*storage.Speak)
}

// Agent owns the macro store and routes every hotkey action through a single
// handler. All state mutation happens inside that handler, one action at a
// time.
type Agent struct {
	mu          sync.Mutex
	cfg         *config.Config
	store       *macro.Store
	mapper      keystroke.Mapper
	injector    platform.Injector
	hotkeys     platform.Hotkeys
	db          *storage.DB // nil when history is disabled
	notifier    *notify.Notifier
	broadcaster Broadcaster // nil when the dashboard is disabled
	bindings    []binding
	activation  keystroke.KeyCode
	submit      keystroke.KeyCode
	settle      time.Duration

	actions  chan Action // side entrance for tray-menu commands
	quitOnce sync.Once
	quitCh   chan struct{}
}

// NewAgent creates an agent from the loaded config and macro store
func NewAgent(cfg *config.Config, store *macro.Store, db *storage.DB, notifier *notify.Notifier) (*Agent, error) {
	mapper, err := platform.NewMapper()
	if err != nil {
		return nil, fmt.Errorf("failed to create key mapper: %w", err)
	}

	injector, err := platform.NewInjector()
	if err != nil {
		return nil, fmt.Errorf("failed to create key injector: %w", err)
	}

	activation, err := platform.KeyByName(cfg.Typing.ActivationKey)
	if err != nil {
		return nil, fmt.Errorf("bad activation_key: %w", err)
	}
	submit, err := platform.KeyByName(cfg.Typing.SubmitKey)
	if err != nil {
		return nil, fmt.Errorf("bad submit_key: %w", err)
	}

	bindings, err := buildBindings(cfg.Hotkeys)
	if err != nil {
		return nil, err
	}

	return &Agent{
		cfg:        cfg,
		store:      store,
		mapper:     mapper,
		injector:   injector,
		hotkeys:    platform.NewHotkeys(),
		db:         db,
		notifier:   notifier,
		bindings:   bindings,
		activation: activation,
		submit:     submit,
		settle:     time.Duration(cfg.Typing.SettleMs) * time.Millisecond,
		actions:    make(chan Action, 4),
		quitCh:     make(chan struct{}),
	}, nil
}

// buildBindings parses the configured combos into the fixed action set
func buildBindings(hk config.HotkeysConfig) ([]binding, error) {
	specs := []struct {
		name     string
		combo    string
		action   Action
		alwaysOn bool
	}{
		{"toggle", hk.Toggle, Action{Kind: ActionToggle}, true},
		{"quit", hk.Quit, Action{Kind: ActionQuit}, true},
		{"bank_prev", hk.BankPrev, Action{Kind: ActionMove, BankDelta: -1}, false},
		{"bank_next", hk.BankNext, Action{Kind: ActionMove, BankDelta: +1}, false},
		{"macro_prev", hk.MacroPrev, Action{Kind: ActionMove, MacroDelta: -1}, false},
		{"macro_next", hk.MacroNext, Action{Kind: ActionMove, MacroDelta: +1}, false},
		{"speak", hk.Speak, Action{Kind: ActionSpeak}, false},
	}

	bindings := make([]binding, 0, len(specs))
	for _, spec := range specs {
		combo, err := config.ParseHotkey(spec.combo)
		if err != nil {
			return nil, fmt.Errorf("hotkey %s: %w", spec.name, err)
		}
		bindings = append(bindings, binding{
			name:     spec.name,
			combo:    combo,
			action:   spec.action,
			alwaysOn: spec.alwaysOn,
			enabled:  true,
		})
	}
	return bindings, nil
}

// SetBroadcaster wires the dashboard in; safe to leave unset
func (a *Agent) SetBroadcaster(b Broadcaster) {
	a.broadcaster = b
}

// Run starts the agent's main event loop. It returns when ctx is cancelled
// or the quit action fires.
func (a *Agent) Run(ctx context.Context) error {
	combos := make([]platform.KeyCombo, len(a.bindings))
	for i, b := range a.bindings {
		combos[i] = platform.KeyCombo{
			ID:    i,
			Ctrl:  b.combo.Ctrl,
			Shift: b.combo.Shift,
			Alt:   b.combo.Alt,
			Win:   b.combo.Win,
			Key:   b.combo.Key,
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := a.hotkeys.Listen(ctx, combos)
	if err != nil {
		return fmt.Errorf("failed to start hotkey listener: %w", err)
	}

	slog.Info("MacroDeck started", "banks", a.store.BankCount(), "speak", a.cfg.Hotkeys.Speak)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.quitCh:
			return nil
		case evt := <-events:
			a.mu.Lock()
			b := a.bindings[evt.ID]
			a.mu.Unlock()
			if !b.enabled {
				continue
			}
			a.handle(b.action)
		case action := <-a.actions:
			a.handle(action)
		}
	}
}

// handle is the single dispatch point for all actions, hotkey- or
// tray-driven. It fully completes one action before the loop takes the next.
func (a *Agent) handle(action Action) {
	switch action.Kind {
	case ActionQuit:
		slog.Info("Quit requested")
		a.Quit()
	case ActionToggle:
		a.Toggle()
	case ActionMove:
		a.move(action.BankDelta, action.MacroDelta)
	case ActionSpeak:
		a.speak()
	}
}

// Do queues an action from outside the hotkey loop (tray menu)
func (a *Agent) Do(action Action) {
	select {
	case a.actions <- action:
	default:
		slog.Warn("Action queue full, dropping action", "kind", action.Kind)
	}
}

// Quit stops the event loop; safe to call more than once
func (a *Agent) Quit() {
	a.quitOnce.Do(func() {
		close(a.quitCh)
	})
}

// Toggle flips the availability of all non-always-on hotkeys as a group and
// returns the new state. Toggling twice restores every flag.
func (a *Agent) Toggle() bool {
	a.mu.Lock()
	state := false
	for i := range a.bindings {
		if a.bindings[i].alwaysOn {
			continue
		}
		a.bindings[i].enabled = !a.bindings[i].enabled
		state = a.bindings[i].enabled
	}
	a.mu.Unlock()

	slog.Info("Hotkey availability toggled", "enabled", state)
	a.notifier.Enabled(state)
	a.broadcastStatus()
	return state
}

// HotkeysEnabled reports whether the non-always-on hotkey group is active
func (a *Agent) HotkeysEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, b := range a.bindings {
		if !b.alwaysOn {
			return b.enabled
		}
	}
	return true
}

// Snapshot returns a copy of the current banks and cursors
func (a *Agent) Snapshot() macro.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Snapshot()
}

// move shifts the bank and macro cursors by the given deltas
func (a *Agent) move(bankDelta, macroDelta int) {
	a.mu.Lock()
	a.store.Move(bankDelta, macroDelta)
	bank, text, ok := a.store.Selected()
	a.mu.Unlock()

	if ok {
		slog.Debug("Selection moved", "bank", bank, "macro", text)
	}
	a.broadcastStatus()
}

// speak compiles the selected macro into key events and injects them.
// A short accepted count is logged and recorded but never retried; the host
// input queue has no transactional semantics to build on.
func (a *Agent) speak() {
	a.mu.Lock()
	bank, text, ok := a.store.Selected()
	snap := a.store.Snapshot()
	a.mu.Unlock()

	if !ok {
		slog.Warn("Nothing selected, ignoring speak")
		return
	}

	seq := keystroke.Compile(text, a.mapper, a.activation, a.submit, a.settle)
	for _, ch := range seq.Unmapped {
		slog.Warn("No key mapping for character, skipped", "char", string(ch))
	}

	submitted := seq.EventCount()
	accepted, err := a.injector.Inject(seq)

	record := &storage.Speak{
		Bank:            bank,
		MacroIndex:      snap.Banks[snap.BankCursor].Cursor,
		CharacterCount:  len([]rune(text)),
		UnmappedCount:   len(seq.Unmapped),
		EventsSubmitted: submitted,
		EventsAccepted:  accepted,
		Success:         err == nil,
	}

	if err != nil {
		record.ErrorMessage = err.Error()
		slog.Error("Failed to inject key events", "error", err)
		a.notifier.Error("Failed to type macro: " + err.Error())
	} else if accepted < submitted {
		slog.Warn("Keyboard queue accepted fewer events than submitted",
			"submitted", submitted, "accepted", accepted)
	}

	if a.db != nil {
		if err := a.db.SaveSpeak(record); err != nil {
			slog.Error("Failed to record speak", "error", err)
		}
	}
	if a.broadcaster != nil {
		a.broadcaster.BroadcastSpeak(record)
	}
}

func (a *Agent) broadcastStatus() {
	if a.broadcaster != nil {
		a.broadcaster.BroadcastStatus()
	}
}
