// Package config loads the TOML settings shared by the front-ends.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window WindowConfig  `toml:"window"`
	Input  InputConfig   `toml:"input"`
	Save   SaveConfig    `toml:"save"`
	Log    LoggingConfig `toml:"log"`
	Audio  AudioConfig   `toml:"audio"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	FPS    int    `toml:"fps"`
}

type InputConfig struct {
	DeadZone     float32 `toml:"dead_zone"` // analog deviation ignored, (0, 1)
	KeybindsFile string  `toml:"keybinds_file"`
}

type SaveConfig struct {
	Dir          string        `toml:"dir"`
	GameName     string        `toml:"game_name"`
	SaveName     string        `toml:"save_name"`
	Title        string        `toml:"title"`
	Detail       string        `toml:"detail"`
	PollInterval time.Duration `toml:"poll_interval"`
	SlotCount    int           `toml:"slot_count"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	Format      string `toml:"format"`       // "json" or "console"
	PersistFile string `toml:"persist_file"` // save/load diagnostics, empty disables
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("window fps %d", c.Window.FPS)
	case c.Input.DeadZone <= 0 || c.Input.DeadZone >= 1:
		return fmt.Errorf("input dead_zone %v out of (0, 1)", c.Input.DeadZone)
	case c.Save.SlotCount <= 0 || c.Save.SlotCount > 10000:
		return fmt.Errorf("save slot_count %d", c.Save.SlotCount)
	case c.Save.GameName == "":
		return errors.New("save game_name is empty")
	case c.Save.PollInterval < 0:
		return fmt.Errorf("save poll_interval %v", c.Save.PollInterval)
	}
	return nil
}

// Defaults returns the settings of the handheld build.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  480,
			Height: 272,
			Title:  "PSP-ECS Demo",
			FPS:    60,
		},
		Input: InputConfig{
			DeadZone:     0.15,
			KeybindsFile: "keybinds.yaml",
		},
		Save: SaveConfig{
			Dir:          "SAVEDATA",
			GameName:     "PSPECS000",
			SaveName:     "0000",
			Title:        "PSP-ECS Demo",
			Detail:       "Scene snapshot",
			PollInterval: time.Second / 60,
			SlotCount:    10,
		},
		Log: LoggingConfig{
			Level:       "info",
			Format:      "console",
			PersistFile: "persist.log",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}
