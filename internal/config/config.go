package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/ff/internal/search"
)

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = "ff-config.toml"

const bytesPerMB = 1024 * 1024

// DefaultSearchOptions are the defaults applied when the CLI leaves a choice open.
type DefaultSearchOptions struct {
	MatchMode     string `toml:"match_mode" json:"match_mode"`
	CaseSensitive bool   `toml:"case_sensitive" json:"case_sensitive"`
}

// OutputOptions control how results are rendered.
type OutputOptions struct {
	ShowDetails       bool   `toml:"show_details" json:"show_details"`
	ColorTheme        string `toml:"color_theme" json:"color_theme"`
	MaxContentMatches int    `toml:"max_content_matches" json:"max_content_matches"`
	MaxLineLength     int    `toml:"max_line_length" json:"max_line_length"`
}

// Config is the persisted configuration file.
type Config struct {
	IgnoreDirectories  []string `toml:"ignore_directories" json:"ignore_directories"`
	IgnoreFilePatterns []string `toml:"ignore_file_patterns" json:"ignore_file_patterns"`
	MaxMemoryMB        int      `toml:"max_memory_mb" json:"max_memory_mb"`
	MaxFilesPerSearch  int      `toml:"max_files_per_search" json:"max_files_per_search"`
	// MaxParallelThreads of 0 means auto-detect.
	MaxParallelThreads      int                  `toml:"max_parallel_threads" json:"max_parallel_threads"`
	MaxFileSizeMB           int64                `toml:"max_file_size_mb" json:"max_file_size_mb"`
	IncludeHidden           bool                 `toml:"include_hidden" json:"include_hidden"`
	FollowSymlinks          bool                 `toml:"follow_symlinks" json:"follow_symlinks"`
	ContentSearchExtensions []string             `toml:"content_search_extensions" json:"content_search_extensions"`
	DefaultSearchOptions    DefaultSearchOptions `toml:"default_search_options" json:"default_search_options"`
	OutputOptions           OutputOptions        `toml:"output_options" json:"output_options"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IgnoreDirectories: []string{
			"node_modules", "target", "build", ".git", "AppData",
			"Windows", "System32", "Cache", "Temp", ".cache",
		},
		IgnoreFilePatterns: []string{
			"*.tmp", "*.log", "*.bak", "*.swp", "thumbs.db", ".DS_Store",
		},
		MaxMemoryMB:        1024,
		MaxFilesPerSearch:  50000,
		MaxParallelThreads: 0,
		MaxFileSizeMB:      10,
		ContentSearchExtensions: []string{
			".rs", ".py", ".js", ".ts", ".java", ".cpp", ".c", ".h",
			".txt", ".md", ".json", ".yaml", ".yml", ".toml", ".cfg",
		},
		DefaultSearchOptions: DefaultSearchOptions{
			MatchMode: "fuzzy",
		},
		OutputOptions: OutputOptions{
			ShowDetails:       true,
			ColorTheme:        "default",
			MaxContentMatches: 3,
			MaxLineLength:     100,
		},
	}
}

// Load reads path. Files ending in .json use the legacy JSON layout, anything
// else is TOML. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if isJSON(path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadWithSafeguard never fails: a missing file is created with defaults and
// an unreadable or invalid file is replaced by defaults. Failures to write the
// defaults back are logged and otherwise ignored.
func LoadWithSafeguard(path string, logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
		logger.Info("loaded config", "path", path)
		return cfg
	case errors.Is(err, os.ErrNotExist):
		logger.Info("config file not found, creating default config", "path", path)
	default:
		logger.Warn("invalid config file, regenerating default config", "path", path, "err", err)
	}

	cfg = Default()
	if err := cfg.Save(path); err != nil {
		logger.Warn("could not save config", "path", path, "err", err)
	} else {
		logger.Debug("config saved", "path", path)
	}
	return cfg
}

// Validate rejects values that cannot drive a search.
func (c *Config) Validate() error {
	if _, err := search.ParseMatchMode(c.DefaultSearchOptions.MatchMode); err != nil {
		return err
	}
	if c.MaxFilesPerSearch < 0 {
		return fmt.Errorf("max_files_per_search must not be negative, got %d", c.MaxFilesPerSearch)
	}
	if c.MaxParallelThreads < 0 {
		return fmt.Errorf("max_parallel_threads must not be negative, got %d", c.MaxParallelThreads)
	}
	if c.MaxFileSizeMB < 0 {
		return fmt.Errorf("max_file_size_mb must not be negative, got %d", c.MaxFileSizeMB)
	}
	if c.OutputOptions.MaxContentMatches < 0 || c.OutputOptions.MaxLineLength < 0 {
		return errors.New("output_options limits must not be negative")
	}
	return nil
}

// SearchOptions projects the configuration onto what the search core consumes.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		IgnoreDirectories:  c.IgnoreDirectories,
		IgnoreFilePatterns: c.IgnoreFilePatterns,
		MaxFileSizeBytes:   c.MaxFileSizeMB * bytesPerMB,
		MaxCandidates:      c.MaxFilesPerSearch,
		FollowSymlinks:     c.FollowSymlinks,
		IncludeHidden:      c.IncludeHidden,
		ContentExtensions:  c.ContentSearchExtensions,
	}
}

// DefaultMatchMode returns the configured match mode, falling back to fuzzy.
func (c *Config) DefaultMatchMode() search.MatchMode {
	mode, err := search.ParseMatchMode(c.DefaultSearchOptions.MatchMode)
	if err != nil {
		return search.MatchFuzzy
	}
	return mode
}

// EffectiveThreadCount resolves the worker count: an explicit CLI value wins,
// then the configured value, then 2x cores under maxCPU, then the core count.
func (c *Config) EffectiveThreadCount(cliThreads int, maxCPU bool) int {
	switch {
	case cliThreads > 0:
		return cliThreads
	case c.MaxParallelThreads > 0:
		return c.MaxParallelThreads
	case maxCPU:
		return runtime.NumCPU() * 2
	default:
		return runtime.NumCPU()
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
