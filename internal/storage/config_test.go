package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bms/internal/storage"
)

func TestLoadConfig_WritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bms", "config.json")

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.DefaultEngine, "google")
	assert.Equal(t, cfg.FetchTimeoutSeconds, 15)

	_, err = os.Stat(path)
	assert.NilError(t, err, "config file should be created with defaults")
}

func TestLoadConfig_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"defaultEngine": "bing", "statePath": "/tmp/x.json"}`), 0644))

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.DefaultEngine, "bing")
	assert.Equal(t, cfg.StatePath, "/tmp/x.json")
	assert.Equal(t, cfg.OllamaHost, "http://localhost:11434")
	assert.Equal(t, cfg.FetchTimeout(), 15*time.Second)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`nope`), 0644))

	_, err := storage.LoadConfig(path)
	assert.Assert(t, err != nil)
}

func TestConfig_ApplyEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "BMS_ENGINE=bing\nBMS_EMBED_MODEL=from-file\nBMS_FETCH_TIMEOUT=30\n"
	assert.NilError(t, os.WriteFile(dotenv, []byte(content), 0644))

	t.Setenv("BMS_EMBED_MODEL", "from-env")
	t.Setenv("BMS_OLLAMA_HOST", "http://ollama:11434")

	cfg := storage.DefaultConfig()
	assert.NilError(t, cfg.ApplyEnv(dotenv))

	assert.Equal(t, cfg.DefaultEngine, "bing")
	assert.Equal(t, cfg.EmbedModel, "from-env", "process environment wins over .env")
	assert.Equal(t, cfg.OllamaHost, "http://ollama:11434")
	assert.Equal(t, cfg.FetchTimeoutSeconds, 30)
}

func TestConfig_ApplyEnvMissingDotenv(t *testing.T) {
	cfg := storage.DefaultConfig()
	assert.NilError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, cfg.DefaultEngine, "google")
}
