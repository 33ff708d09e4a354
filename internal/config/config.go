package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DBPath        string `koanf:"db_path"`        // overrides the default data-dir location
	DefaultRating int    `koanf:"default_rating"` // rating applied to manual adds (0-5, default: 5)

	// Player bridges, in probe priority order. Known names: "mpris", "mpd",
	// "script" (script requires [script] to be configured).
	Players []string `koanf:"players"`

	MPD      MPDConfig      `koanf:"mpd"`
	Script   ScriptConfig   `koanf:"script"`
	Stations []StationAlias `koanf:"stations"`
}

// MPDConfig holds the MPD bridge configuration.
type MPDConfig struct {
	Address string `koanf:"address"` // e.g., "localhost:6600"
}

// ScriptConfig holds the one-shot scripting bridge configuration.
// The bridge is enabled only when Command is set.
type ScriptConfig struct {
	Command string            `koanf:"command"` // interpreter, e.g., "osascript"
	Args    []string          `koanf:"args"`    // leading interpreter args, script is appended
	App     string            `koanf:"app"`     // player application name the scripts target
	Scripts map[string]string `koanf:"scripts"` // property -> script: running, playing, artist, track, album, station, play
}

// StationAlias canonicalizes station names that start with Prefix
// (case-insensitive) to Display.
type StationAlias struct {
	Prefix  string `koanf:"prefix"`
	Display string `koanf:"display"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultRating: 5,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DBPath != "" {
		cfg.DBPath = expandPath(cfg.DBPath)
	}

	if len(cfg.Players) == 0 {
		cfg.Players = []string{"mpris", "mpd"}
	}
	if cfg.MPD.Address == "" {
		cfg.MPD.Address = "localhost:6600"
	}
	if len(cfg.Stations) == 0 {
		cfg.Stations = []StationAlias{{Prefix: "somafm", Display: "SomaFM"}}
	}
	if cfg.DefaultRating < 0 {
		cfg.DefaultRating = 0
	}
	if cfg.DefaultRating > 5 {
		cfg.DefaultRating = 5
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunelog/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tunelog", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasScriptBridge returns true if the scripting bridge is configured.
func (c *Config) HasScriptBridge() bool {
	return c.Script.Command != ""
}
