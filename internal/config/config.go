package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything mealie-menu needs to talk to a Mealie server.
type Config struct {
	BaseURL   string
	APIToken  string
	Timeout   time.Duration
	Theme     string
	MealTypes []MealTypeRule // nil keeps the built-in keyword table
}

// MealTypeRule maps a keyword found in recipe text to a Mealie entry type.
type MealTypeRule struct {
	Keyword string `toml:"keyword"`
	Type    string `toml:"type"`
}

const (
	EnvBaseURL  = "MEALIE_BASE_URL"
	EnvAPIToken = "MEALIE_API_TOKEN"

	DefaultBaseURL = "http://localhost:9000"

	defaultConfigPath = "~/.config/mealie-menu/config.toml"
	defaultTimeout    = 30 * time.Second
	defaultTheme      = "Nightfox"
)

var entryTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// Load resolves configuration from the optional TOML file at path and the
// environment. Environment variables win over file values. A missing file is
// not an error; a missing API token is reported as *ConfigurationError.
func Load(path string) (Config, error) {
	cfg := Config{BaseURL: DefaultBaseURL, Timeout: defaultTimeout, Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.mergeFile(resolved); err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		cfg.APIToken = v
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIToken == "" {
		return Config{}, &ConfigurationError{Key: EnvAPIToken, Reason: "environment variable is required"}
	}
	return cfg, nil
}

// LoadDotEnv populates the process environment from a dotenv file without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string         `toml:"base_url"`
		APIToken       string         `toml:"api_token"`
		TimeoutSeconds int            `toml:"timeout_seconds"`
		Theme          string         `toml:"theme"`
		MealTypes      []MealTypeRule `toml:"meal_types"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		c.BaseURL = v
	}
	c.APIToken = strings.TrimSpace(raw.APIToken)
	if raw.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		c.Theme = v
	}

	for i, rule := range raw.MealTypes {
		keyword := strings.TrimSpace(rule.Keyword)
		kind := strings.ToLower(strings.TrimSpace(rule.Type))
		if keyword == "" {
			return fmt.Errorf("parse config: meal_types[%d]: keyword is empty", i)
		}
		if !validEntryType(kind) {
			return fmt.Errorf("parse config: meal_types[%d]: unknown type %q", i, rule.Type)
		}
		c.MealTypes = append(c.MealTypes, MealTypeRule{Keyword: keyword, Type: kind})
	}
	return nil
}

func validEntryType(kind string) bool {
	for _, t := range entryTypes {
		if t == kind {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
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
