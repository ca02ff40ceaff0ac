package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures podium's runtime settings.
type Config struct {
	Storage Storage
	Suggest Suggest
	Draw    Draw
	Log     Log
	Days    []Day
}

// Storage selects where the snapshot lives.
type Storage struct {
	Backend string // sqlite | file | memory
	Path    string
}

// Suggest configures the topic-suggestion generator.
type Suggest struct {
	Model     string
	APIKeyEnv string
	Category  string
	Count     int
	Timeout   time.Duration
}

// APIKey reads the generator credential from the configured variable.
func (s Suggest) APIKey() string {
	if s.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(s.APIKeyEnv))
}

// Draw configures the reveal animation.
type Draw struct {
	ShuffleFrames   int
	ShuffleInterval time.Duration
}

// Log configures the application log file.
type Log struct {
	Path  string
	Level string
}

// Day is one configured day.
type Day struct {
	ID    int
	Label string
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

const (
	defaultConfigPath      = "~/.config/podium/config.toml"
	defaultSQLitePath      = "~/.local/share/podium/podium.db"
	defaultFileDir         = "~/.local/share/podium/snapshots"
	defaultLogPath         = "~/.local/share/podium/podium.log"
	defaultLogLevel        = "info"
	defaultModel           = "gemini-2.5-flash"
	defaultAPIKeyEnv       = "GEMINI_API_KEY"
	defaultCategory        = "interesting current-affairs debate topics"
	defaultCount           = 3
	defaultTimeout         = 20 * time.Second
	defaultShuffleFrames   = 25
	defaultShuffleInterval = 70 * time.Millisecond
)

var defaultDays = []Day{
	{ID: 1, Label: "Day 1"},
	{ID: 2, Label: "Day 2"},
	{ID: 3, Label: "Day 3"},
}

type rawConfig struct {
	Storage struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
	} `toml:"storage"`
	Suggest struct {
		Model          string `toml:"model"`
		APIKeyEnv      string `toml:"api_key_env"`
		Category       string `toml:"category"`
		Count          int    `toml:"count"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"suggest"`
	Draw struct {
		ShuffleFrames     int `toml:"shuffle_frames"`
		ShuffleIntervalMS int `toml:"shuffle_interval_ms"`
	} `toml:"draw"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
	Days []struct {
		ID    int    `toml:"id"`
		Label string `toml:"label"`
	} `toml:"days"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		Storage: Storage{Backend: BackendSQLite, Path: mustExpand(defaultSQLitePath)},
		Suggest: Suggest{
			Model:     defaultModel,
			APIKeyEnv: defaultAPIKeyEnv,
			Category:  defaultCategory,
			Count:     defaultCount,
			Timeout:   defaultTimeout,
		},
		Draw: Draw{ShuffleFrames: defaultShuffleFrames, ShuffleInterval: defaultShuffleInterval},
		Log:  Log{Path: mustExpand(defaultLogPath), Level: defaultLogLevel},
		Days: make([]Day, len(defaultDays)),
	}
	copy(cfg.Days, defaultDays)
	return cfg
}

// Load locates and parses the podium config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if backend := strings.ToLower(strings.TrimSpace(raw.Storage.Backend)); backend != "" {
		switch backend {
		case BackendSQLite, BackendFile, BackendMemory:
			cfg.Storage.Backend = backend
		default:
			return Config{}, fmt.Errorf("parse config: unknown storage backend %q", raw.Storage.Backend)
		}
	}
	if p := strings.TrimSpace(raw.Storage.Path); p != "" {
		cfg.Storage.Path = mustExpand(p)
	} else if cfg.Storage.Backend == BackendFile {
		cfg.Storage.Path = mustExpand(defaultFileDir)
	}

	if v := strings.TrimSpace(raw.Suggest.Model); v != "" {
		cfg.Suggest.Model = v
	}
	if v := strings.TrimSpace(raw.Suggest.APIKeyEnv); v != "" {
		cfg.Suggest.APIKeyEnv = v
	}
	if v := strings.TrimSpace(raw.Suggest.Category); v != "" {
		cfg.Suggest.Category = v
	}
	if raw.Suggest.Count > 0 {
		cfg.Suggest.Count = raw.Suggest.Count
	}
	if raw.Suggest.TimeoutSeconds > 0 {
		cfg.Suggest.Timeout = time.Duration(raw.Suggest.TimeoutSeconds) * time.Second
	}

	if raw.Draw.ShuffleFrames > 0 {
		cfg.Draw.ShuffleFrames = raw.Draw.ShuffleFrames
	}
	if raw.Draw.ShuffleIntervalMS > 0 {
		cfg.Draw.ShuffleInterval = time.Duration(raw.Draw.ShuffleIntervalMS) * time.Millisecond
	}

	if p := strings.TrimSpace(raw.Log.Path); p != "" {
		cfg.Log.Path = mustExpand(p)
	}
	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	if len(raw.Days) > 0 {
		days := make([]Day, 0, len(raw.Days))
		seen := make(map[int]bool, len(raw.Days))
		for _, d := range raw.Days {
			if d.ID <= 0 {
				return Config{}, fmt.Errorf("parse config: day id must be positive, got %d", d.ID)
			}
			if seen[d.ID] {
				return Config{}, fmt.Errorf("parse config: duplicate day id %d", d.ID)
			}
			seen[d.ID] = true
			label := strings.TrimSpace(d.Label)
			if label == "" {
				label = fmt.Sprintf("Day %d", d.ID)
			}
			days = append(days, Day{ID: d.ID, Label: label})
		}
		cfg.Days = days
	}

	return cfg, nil
}

// DayIDs returns the configured day ids in configuration order.
func (c Config) DayIDs() []int {
	ids := make([]int, len(c.Days))
	for i, d := range c.Days {
		ids[i] = d.ID
	}
	return ids
}

// DayLabel returns the label of a day, or a generic one when unknown.
func (c Config) DayLabel(id int) string {
	for _, d := range c.Days {
		if d.ID == id {
			return d.Label
		}
	}
	return fmt.Sprintf("Day %d", id)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
