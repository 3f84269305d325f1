package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Hotkeys       HotkeysConfig `toml:"hotkeys"`
	Typing        TypingConfig  `toml:"typing"`
	Web           WebConfig     `toml:"web"`
	History       HistoryConfig `toml:"history"`
	Notifications bool          `toml:"notifications"`
}

// HotkeysConfig binds one key combo string to each action.
type HotkeysConfig struct {
	Toggle    string `toml:"toggle"`
	Quit      string `toml:"quit"`
	BankPrev  string `toml:"bank_prev"`
	BankNext  string `toml:"bank_next"`
	MacroPrev string `toml:"macro_prev"`
	MacroNext string `toml:"macro_next"`
	Speak     string `toml:"speak"`
}

type TypingConfig struct {
	// SettleMs is the pause between the activation keystroke and the
	// macro text, giving the target app time to open its input field.
	SettleMs      int    `toml:"settle_ms"`
	ActivationKey string `toml:"activation_key"`
	SubmitKey     string `toml:"submit_key"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default configuration. The numpad bindings mirror the layout this tool has
// always shipped with: num0 toggles, numpad decimal quits, 1/2 move between
// banks, 4/5 move between macros, 8 speaks.
func defaultConfig() *Config {
	return &Config{
		Hotkeys: HotkeysConfig{
			Toggle:    "num0",
			Quit:      "numdecimal",
			BankPrev:  "num1",
			BankNext:  "num2",
			MacroPrev: "num4",
			MacroNext: "num5",
			Speak:     "num8",
		},
		Typing: TypingConfig{
			SettleMs:      50,
			ActivationKey: "t",
			SubmitKey:     "enter",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8811,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Notifications: true,
	}
}

// ConfigDir returns the per-user directory holding the config file and the
// history database, creating it if needed.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}

	dir := filepath.Join(base, "macrodeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file
// If the file doesn't exist, it creates it with default values
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// KeyCombo represents a parsed keyboard combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// ParseHotkey parses a hotkey combo string like "num8", "ctrl+shift+v" or
// "alt+f5". The last part is the key; everything before it must be a
// modifier. A bare key with no modifiers is valid.
func ParseHotkey(combo string) (KeyCombo, error) {
	var kc KeyCombo
	parts := strings.Split(strings.ToLower(combo), "+")

	for i, part := range parts {
		part = strings.TrimSpace(part)

		// Check if this part is a modifier
		isModifier := false
		switch part {
		case "ctrl", "control":
			kc.Ctrl = true
			isModifier = true
		case "shift":
			kc.Shift = true
			isModifier = true
		case "alt":
			kc.Alt = true
			isModifier = true
		case "win", "windows":
			kc.Win = true
			isModifier = true
		}

		// If it's not a modifier and it's the last part, it's the key
		if !isModifier {
			if i == len(parts)-1 {
				kc.Key = part
			} else {
				return kc, fmt.Errorf("unknown modifier: %s", part)
			}
		}
	}

	if kc.Key == "" {
		return kc, fmt.Errorf("no key specified in combo %q", combo)
	}

	return kc, nil
}
