package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "data/listings.csv", cfg.ListingsPath)
	assert.Equal(t, "data/calendar.csv", cfg.CalendarPath)
	assert.Equal(t, "analytics_results.json", cfg.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 500, cfg.InsertBatchSize)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 6, cfg.RunsPerMinute)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LISTINGS_PATH", "/tmp/in/listings.csv")
	t.Setenv("OUTPUT_PATH", "/tmp/out/results.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INSERT_BATCH_SIZE", "100")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/in/listings.csv", cfg.ListingsPath)
	assert.Equal(t, "/tmp/out/results.json", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 100, cfg.InsertBatchSize)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendar_path: fixtures/calendar.csv\nruns_per_minute: 2\n"), 0644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTINGS_PATH", "env/listings.csv")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "fixtures/calendar.csv", cfg.CalendarPath)
	assert.Equal(t, 2, cfg.RunsPerMinute)
	assert.Equal(t, "env/listings.csv", cfg.ListingsPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"zero batch size", "INSERT_BATCH_SIZE", "0"},
		{"non-numeric retries", "MAX_RETRIES", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
