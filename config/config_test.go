package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "Europe/London", cfg.Timezone)
	assert.Equal(t, "primary", cfg.GoogleCalendarID)
	assert.Equal(t, 53, cfg.MaxWeek)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `{
		"format": "ics",
		"week_one_start": "2024-09-23",
		"timezone": "UTC",
		"github_repo": "someone/timetable"
	}`)
	t.Setenv("TIMETABLE_LOG_LEVEL", "debug")
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("TIMETABLE_INDENT", "false")
	t.Setenv("TIMETABLE_MAX_WEEK", "30")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ics", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.GithubToken)
	assert.False(t, cfg.Indent)
	assert.Equal(t, 30, cfg.MaxWeek)

	weekOne, err := cfg.WeekOne()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC), weekOne)

	assert.Error(t, cfg.CheckUpload(), "github_path missing")
	cfg.GithubPath = "timetable.json"
	assert.NoError(t, cfg.CheckUpload())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"format":   `{"format": "xml"}`,
		"date":     `{"week_one_start": "23/09/2024"}`,
		"timezone": `{"timezone": "Mars/Olympus"}`,
		"level":    `{"log_level": "verbose"}`,
		"repo":     `{"github_repo": "norepo"}`,
		"max week": `{"max_week": 1000000}`,
		"no weeks": `{"max_week": 0}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(writeConfig(t, `{"format": `))
	assert.ErrorContains(t, err, "decode")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckSync(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, cfg.CheckSync(), "google_credentials_file")
	assert.Error(t, cfg.CheckGoogle())

	cfg.GoogleCredentialsFile = "credentials.json"
	assert.NoError(t, cfg.CheckGoogle())
	assert.ErrorContains(t, cfg.CheckSync(), "week_one_start")

	cfg.WeekOneStart = "2024-09-23"
	assert.NoError(t, cfg.CheckSync())
}
