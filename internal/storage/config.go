package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nikbrunner/bms/internal/importer"
)

// Config holds application configuration.
type Config struct {
	BookmarksPath       string `json:"bookmarksPath"`
	StatePath           string `json:"statePath"`
	DefaultEngine       string `json:"defaultEngine"`
	OllamaHost          string `json:"ollamaHost"`
	EmbedModel          string `json:"embedModel"`
	UserAgent           string `json:"userAgent"`
	FetchTimeoutSeconds int    `json:"fetchTimeoutSeconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	bookmarks, _ := importer.DefaultChromeBookmarksPath()
	state, _ := DefaultStatePath()

	return Config{
		BookmarksPath:       bookmarks,
		StatePath:           state,
		DefaultEngine:       "google",
		OllamaHost:          "http://localhost:11434",
		EmbedModel:          "nomic-embed-text",
		UserAgent:           "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		FetchTimeoutSeconds: 15,
	}
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.fillDefaults()
	return &config, nil
}

func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.BookmarksPath == "" {
		c.BookmarksPath = defaults.BookmarksPath
	}
	if c.StatePath == "" {
		c.StatePath = defaults.StatePath
	}
	if c.DefaultEngine == "" {
		c.DefaultEngine = defaults.DefaultEngine
	}
	if c.OllamaHost == "" {
		c.OllamaHost = defaults.OllamaHost
	}
	if c.EmbedModel == "" {
		c.EmbedModel = defaults.EmbedModel
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
}

// ApplyEnv overrides fields from BMS_* environment variables. Values in
// the dotenv file are used when the process environment does not set them.
// A missing dotenv file is ignored.
func (c *Config) ApplyEnv(dotenvPath string) error {
	fileEnv := map[string]string{}
	if dotenvPath != "" {
		env, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if env != nil {
			fileEnv = env
		}
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	overrideString(&c.BookmarksPath, lookup("BMS_BOOKMARKS"))
	overrideString(&c.StatePath, lookup("BMS_STATE"))
	overrideString(&c.DefaultEngine, lookup("BMS_ENGINE"))
	overrideString(&c.OllamaHost, lookup("BMS_OLLAMA_HOST"))
	overrideString(&c.EmbedModel, lookup("BMS_EMBED_MODEL"))
	overrideString(&c.UserAgent, lookup("BMS_USER_AGENT"))
	if v := lookup("BMS_FETCH_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.FetchTimeoutSeconds = secs
		}
	}

	return nil
}

func overrideString(field *string, value string) {
	if value != "" {
		*field = value
	}
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/bms/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
