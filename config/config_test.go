package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		combo   string
		want    KeyCombo
		wantErr bool
	}{
		{"num8", KeyCombo{Key: "num8"}, false},
		{"ctrl+shift+v", KeyCombo{Ctrl: true, Shift: true, Key: "v"}, false},
		{"ALT+F5", KeyCombo{Alt: true, Key: "f5"}, false},
		{"win+space", KeyCombo{Win: true, Key: "space"}, false},
		{"ctrl+", KeyCombo{}, true},
		{"bogus+x", KeyCombo{}, true},
		{"", KeyCombo{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			got, err := ParseHotkey(tt.combo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHotkey(%q) error = %v, wantErr %v", tt.combo, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseHotkey(%q) = %+v, want %+v", tt.combo, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Hotkeys.Speak != "num8" {
		t.Errorf("Speak = %q, want num8", cfg.Hotkeys.Speak)
	}
	if cfg.Typing.SettleMs != 50 {
		t.Errorf("SettleMs = %d, want 50", cfg.Typing.SettleMs)
	}
	if cfg.Typing.SubmitKey != "enter" {
		t.Errorf("SubmitKey = %q, want enter", cfg.Typing.SubmitKey)
	}

	for name, combo := range map[string]string{
		"toggle":     cfg.Hotkeys.Toggle,
		"quit":       cfg.Hotkeys.Quit,
		"bank_prev":  cfg.Hotkeys.BankPrev,
		"bank_next":  cfg.Hotkeys.BankNext,
		"macro_prev": cfg.Hotkeys.MacroPrev,
		"macro_next": cfg.Hotkeys.MacroNext,
		"speak":      cfg.Hotkeys.Speak,
	} {
		if _, err := ParseHotkey(combo); err != nil {
			t.Errorf("default %s combo %q does not parse: %v", name, combo, err)
		}
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	doc := `
notifications = false

[hotkeys]
speak = "ctrl+alt+s"

[typing]
settle_ms = 120
`

	cfg := defaultConfig()
	if _, err := toml.Decode(doc, cfg); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if cfg.Hotkeys.Speak != "ctrl+alt+s" {
		t.Errorf("Speak = %q, want override", cfg.Hotkeys.Speak)
	}
	if cfg.Typing.SettleMs != 120 {
		t.Errorf("SettleMs = %d, want 120", cfg.Typing.SettleMs)
	}
	if cfg.Notifications {
		t.Error("Notifications = true, want false")
	}
	// Untouched fields keep their defaults.
	if cfg.Hotkeys.Toggle != "num0" {
		t.Errorf("Toggle = %q, want default num0", cfg.Hotkeys.Toggle)
	}
	if cfg.Typing.ActivationKey != "t" {
		t.Errorf("ActivationKey = %q, want default t", cfg.Typing.ActivationKey)
	}
}
