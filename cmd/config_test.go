package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"RABBITMQ_URL", "JOB_QUEUE", "UPLOAD_DIR", "NOMINATIM_URL", "NOMINATIM_USER_AGENT",
	"GEOCODE_INTERVAL", "TOMTOM_BASE_URL", "TOMTOM_API_KEY", "STUCK_JOB_THRESHOLD",
}

// inEmptyDir runs the test from a directory without .env and with every
// config variable unset.
func inEmptyDir(t *testing.T) string {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("TOMTOM_API_KEY", "secret")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, "job_queue", config.JobQueue)
	assert.Equal(t, time.Second, config.GeocodeInterval)
	assert.Equal(t, 30*time.Minute, config.StuckJobThreshold)
	assert.Equal(t, "https://api.tomtom.com", config.TomTomBaseURL)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=optiroute sslmode=disable",
		config.PostgresDSN(),
	)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := inEmptyDir(t)
	content := "TOMTOM_API_KEY=from-file\nJOB_QUEUE=routes\nGEOCODE_INTERVAL=1500ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("JOB_QUEUE", "from-env")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.TomTomAPIKey)
	assert.Equal(t, "from-env", config.JobQueue)
	assert.Equal(t, 1500*time.Millisecond, config.GeocodeInterval)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{}},
		{name: "bad interval", env: map[string]string{"TOMTOM_API_KEY": "k", "GEOCODE_INTERVAL": "soon"}},
		{name: "negative threshold", env: map[string]string{"TOMTOM_API_KEY": "k", "STUCK_JOB_THRESHOLD": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inEmptyDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
