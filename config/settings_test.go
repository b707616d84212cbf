package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "examiner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	s := config.Defaults()

	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "text", s.Log.Format)
	assert.Equal(t, 10*time.Second, s.GitHub.Timeout)
	assert.False(t, s.GitHub.Offline)
	assert.Equal(t, 0, s.Fix.MaxAttempts)
	assert.Equal(t, 1, s.Examine.Parallelism)
	assert.Equal(t, ":8080", s.Serve.Address)
	assert.Equal(t, int64(1<<20), s.Serve.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, s.Serve.Timeout)
	assert.InDelta(t, 10.0, s.Serve.RateLimit, 0)
	assert.Equal(t, 20, s.Serve.Burst)
	require.NoError(t, s.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `
log:
  level: debug
  format: json
github:
  base_url: https://github.example.com/api/v3
  timeout: 3s
  offline: true
fix:
  max_attempts: 5
serve:
  address: 127.0.0.1:9090
`)

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "https://github.example.com/api/v3", s.GitHub.BaseURL)
	assert.Equal(t, 3*time.Second, s.GitHub.Timeout)
	assert.True(t, s.GitHub.Offline)
	assert.Equal(t, 5, s.Fix.MaxAttempts)
	assert.Equal(t, "127.0.0.1:9090", s.Serve.Address)
	assert.Equal(t, 20, s.Serve.Burst, "unset values keep their defaults")
}

func TestLoad_NoPathOrEmptyFile(t *testing.T) {
	t.Parallel()

	fromNothing, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), fromNothing)

	fromEmpty, err := config.Load(writeSettings(t, ""))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), fromEmpty)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown log format", content: "log:\n  format: xml\n"},
		{name: "negative attempts", content: "fix:\n  max_attempts: -1\n"},
		{name: "negative parallelism", content: "examine:\n  parallelism: -2\n"},
		{name: "relative base url", content: "github:\n  base_url: api/v3\n"},
		{name: "negative burst", content: "serve:\n  burst: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeSettings(t, tt.content))
			require.ErrorIs(t, err, config.ErrInvalidSettings)
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeSettings(t, "serve:\n  adress: localhost:1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adress")
}

func TestSections_SetDefaultsReportsChanges(t *testing.T) {
	t.Parallel()

	var (
		log     config.LogSettings
		github  config.GitHubSettings
		examine config.ExamineSettings
		serve   config.ServeSettings
	)

	assert.True(t, log.SetDefaults())
	assert.True(t, github.SetDefaults())
	assert.True(t, examine.SetDefaults())
	assert.True(t, serve.SetDefaults())

	assert.Equal(t, config.DefaultGitHubTimeout, github.Timeout)
	assert.Equal(t, 1, examine.Parallelism)
	assert.Equal(t, config.DefaultBurst, serve.Burst)

	assert.False(t, log.SetDefaults(), "already filled")
	assert.False(t, github.SetDefaults())
	assert.False(t, examine.SetDefaults())
	assert.False(t, serve.SetDefaults())

	require.NoError(t, log.Validate())
	require.NoError(t, github.Validate())
	require.NoError(t, examine.Validate())
	require.NoError(t, serve.Validate())
	require.NoError(t, (&config.FixSettings{}).Validate())

	require.ErrorIs(t, (&config.FixSettings{MaxAttempts: -1}).Validate(), config.ErrInvalidSettings)
	require.ErrorIs(t, (&config.ServeSettings{Timeout: -time.Second}).Validate(), config.ErrInvalidSettings)
	require.ErrorIs(t, (&config.GitHubSettings{BaseURL: "api/v3"}).Validate(), config.ErrInvalidSettings)
}
