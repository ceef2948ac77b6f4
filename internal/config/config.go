package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Session SessionConfig
	Display DisplayConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type SessionConfig struct {
	PID                int `toml:"pid"`
	WatchIntervalMS    int `toml:"watch_interval_ms"`
	OperationTimeoutMS int `toml:"operation_timeout_ms"`
}

type DisplayConfig struct {
	Theme           string `toml:"theme"`
	SortColumn      string `toml:"sort_column"`
	SortDesc        bool   `toml:"sort_desc"`
	FilterCharLimit int    `toml:"filter_char_limit"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type MetricsConfig struct {
	Listen string `toml:"listen"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

// knownKeys lists every accepted key per section. Anything else produces a
// warning, never an error.
var knownKeys = map[string][]string{
	"session": {"pid", "watch_interval_ms", "operation_timeout_ms"},
	"display": {"theme", "sort_column", "sort_desc", "filter_char_limit"},
	"log":     {"level", "file", "max_size_mb", "max_backups"},
	"metrics": {"listen"},
}

// DefaultPath returns ~/.config/threadscope/config.toml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "threadscope", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the file at path over the defaults. A missing file is not
// an error.
func LoadFrom(path string) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	result, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return result, nil
}

func LoadFromString(data string) (*LoadResult, error) {
	return parse(data)
}

func parse(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}
	if data == "" {
		return result, nil
	}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	result.Warnings = unknownKeys(raw)

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	mergeFromRaw(&result.Config, &tf, raw)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func unknownKeys(raw map[string]any) []string {
	var warnings []string
	for key, val := range raw {
		known, ok := knownKeys[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown config key: %q", key))
			continue
		}
		section, ok := val.(map[string]any)
		if !ok {
			continue
		}
		for sub := range section {
			if !contains(known, sub) {
				warnings = append(warnings, fmt.Sprintf("unknown config key: %q", key+"."+sub))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type tomlFile struct {
	Session *SessionConfig `toml:"session"`
	Display *DisplayConfig `toml:"display"`
	Log     *LogConfig     `toml:"log"`
	Metrics *MetricsConfig `toml:"metrics"`
}

// mergeFromRaw copies only the keys present in the file, so an explicit zero
// is distinguishable from an absent key.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Session != nil {
		if section, ok := rawSection(raw, "session"); ok {
			if _, exists := section["pid"]; exists {
				cfg.Session.PID = tf.Session.PID
			}
			if _, exists := section["watch_interval_ms"]; exists {
				cfg.Session.WatchIntervalMS = tf.Session.WatchIntervalMS
			}
			if _, exists := section["operation_timeout_ms"]; exists {
				cfg.Session.OperationTimeoutMS = tf.Session.OperationTimeoutMS
			}
		}
	}
	if tf.Display != nil {
		if section, ok := rawSection(raw, "display"); ok {
			if _, exists := section["theme"]; exists {
				cfg.Display.Theme = tf.Display.Theme
			}
			if _, exists := section["sort_column"]; exists {
				cfg.Display.SortColumn = tf.Display.SortColumn
			}
			if _, exists := section["sort_desc"]; exists {
				cfg.Display.SortDesc = tf.Display.SortDesc
			}
			if _, exists := section["filter_char_limit"]; exists {
				cfg.Display.FilterCharLimit = tf.Display.FilterCharLimit
			}
		}
	}
	if tf.Log != nil {
		if section, ok := rawSection(raw, "log"); ok {
			if _, exists := section["level"]; exists {
				cfg.Log.Level = tf.Log.Level
			}
			if _, exists := section["file"]; exists {
				cfg.Log.File = tf.Log.File
			}
			if _, exists := section["max_size_mb"]; exists {
				cfg.Log.MaxSizeMB = tf.Log.MaxSizeMB
			}
			if _, exists := section["max_backups"]; exists {
				cfg.Log.MaxBackups = tf.Log.MaxBackups
			}
		}
	}
	if tf.Metrics != nil {
		if section, ok := rawSection(raw, "metrics"); ok {
			if _, exists := section["listen"]; exists {
				cfg.Metrics.Listen = tf.Metrics.Listen
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Validate checks a config assembled outside the loader, such as one with
// command-line overrides applied.
func Validate(cfg *Config) error {
	return validate(cfg)
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Session.PID < 0 {
		errs = append(errs, fmt.Sprintf("session pid must not be negative, got %d", cfg.Session.PID))
	}
	if cfg.Session.WatchIntervalMS < 1 {
		errs = append(errs, fmt.Sprintf("watch_interval_ms must be positive, got %d", cfg.Session.WatchIntervalMS))
	}
	if cfg.Session.OperationTimeoutMS < 1 {
		errs = append(errs, fmt.Sprintf("operation_timeout_ms must be positive, got %d", cfg.Session.OperationTimeoutMS))
	}

	if !contains(Themes, cfg.Display.Theme) {
		errs = append(errs, fmt.Sprintf("theme must be one of %s, got %q", strings.Join(Themes, "|"), cfg.Display.Theme))
	}
	if !contains(SortColumns, cfg.Display.SortColumn) {
		errs = append(errs, fmt.Sprintf("sort_column must be one of %s, got %q", strings.Join(SortColumns, "|"), cfg.Display.SortColumn))
	}
	if cfg.Display.FilterCharLimit < 1 {
		errs = append(errs, fmt.Sprintf("filter_char_limit must be positive, got %d", cfg.Display.FilterCharLimit))
	}

	if !contains(LogLevels, cfg.Log.Level) {
		errs = append(errs, fmt.Sprintf("log level must be one of %s, got %q", strings.Join(LogLevels, "|"), cfg.Log.Level))
	}
	if cfg.Log.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("log max_size_mb must be positive, got %d", cfg.Log.MaxSizeMB))
	}
	if cfg.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("log max_backups must not be negative, got %d", cfg.Log.MaxBackups))
	}

	if cfg.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("metrics listen must be host:port, got %q", cfg.Metrics.Listen))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
