// Package config loads promptcraft settings from <home>/config.toml and the
// PROMPTCRAFT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvHome         = "PROMPTCRAFT_HOME"
	EnvDB           = "PROMPTCRAFT_DB"
	EnvOutputDir    = "PROMPTCRAFT_OUTPUT_DIR"
	EnvCatalogDir   = "PROMPTCRAFT_CATALOG_DIR"
	EnvHistoryLimit = "PROMPTCRAFT_HISTORY_LIMIT"
	EnvMissing      = "PROMPTCRAFT_MISSING"
	EnvLogLevel     = "PROMPTCRAFT_LOG_LEVEL"

	fileName = "config.toml"
)

// Config holds all promptcraft configuration.
type Config struct {
	DBPath           string `toml:"db_path"`
	OutputDir        string `toml:"output_dir"`
	CatalogDir       string `toml:"catalog_dir"`
	HistoryLimit     int    `toml:"history_limit"`
	MissingAnswer    string `toml:"missing_answer"` // omit_line or empty
	LogFile          string `toml:"log_file"`       // empty disables logging
	LogLevel         string `toml:"log_level"`
	CopyWithMetadata bool   `toml:"copy_with_metadata"`

	home string
}

// Home returns the promptcraft home directory: $PROMPTCRAFT_HOME, or
// ~/.promptcraft.
func Home() string {
	if h := os.Getenv(EnvHome); h != "" {
		return expandHome(h)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".promptcraft"
	}
	return filepath.Join(homeDir, ".promptcraft")
}

// Default returns the default configuration rooted at home.
func Default(home string) *Config {
	return &Config{
		DBPath:        filepath.Join(home, "history.db"),
		OutputDir:     filepath.Join(home, "prompts"),
		CatalogDir:    filepath.Join(home, "catalogs"),
		HistoryLimit:  50,
		MissingAnswer: string(prompt.MissingOmitLine),
		LogFile:       filepath.Join(home, "promptcraft.log"),
		LogLevel:      "info",
		home:          home,
	}
}

// Load reads <home>/config.toml over the defaults and applies environment
// overrides. An empty home means Home(). A missing file is not an error.
func Load(home string) (*Config, error) {
	if home == "" {
		home = Home()
	}
	cfg := Default(home)

	data, err := os.ReadFile(cfg.Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", cfg.Path(), err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", cfg.Path(), err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.CatalogDir = expandHome(cfg.CatalogDir)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	for env, dst := range map[string]*string{
		EnvDB:         &c.DBPath,
		EnvOutputDir:  &c.OutputDir,
		EnvCatalogDir: &c.CatalogDir,
		EnvMissing:    &c.MissingAnswer,
		EnvLogLevel:   &c.LogLevel,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv(EnvHistoryLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistoryLimit, err)
		}
		c.HistoryLimit = n
	}
	return nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if _, err := prompt.ParseMissingPolicy(c.MissingAnswer); err != nil {
		return fmt.Errorf("missing_answer: %w", err)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir is required")
	}
	return nil
}

// MissingPolicy returns the parsed missing_answer setting.
func (c *Config) MissingPolicy() prompt.MissingPolicy {
	p, err := prompt.ParseMissingPolicy(c.MissingAnswer)
	if err != nil {
		return prompt.MissingOmitLine
	}
	return p
}

// HomeDir returns the directory the config was loaded from.
func (c *Config) HomeDir() string { return c.home }

// Path returns the config file path.
func (c *Config) Path() string {
	return filepath.Join(c.home, fileName)
}

// Save writes the configuration to Path.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.home, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(c.Path(), data, 0o644)
}

// Encode returns the TOML form of the configuration.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
