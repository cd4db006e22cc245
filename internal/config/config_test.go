package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DATABASE_URL": "postgres://localhost/recruit"}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres://localhost/recruit", cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 60, cfg.WritesPerMinute)
	assert.Empty(t, cfg.MailOutboxDir)
	assert.Equal(t, entity.DefaultAutomationSettings(), cfg.Automation)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL":              "postgres://db/recruit",
		"HTTP_PORT":                 "9090",
		"CORS_ORIGINS":              "http://localhost:5173, https://hr.example.com ,",
		"SNAPSHOT_REFRESH_INTERVAL": "30s",
		"WRITE_RATE_PER_MINUTE":     "10",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"http://localhost:5173", "https://hr.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 10, cfg.WritesPerMinute)
}

func TestFromEnv_MissingAndInvalid(t *testing.T) {
	_, err := FromEnv(env(map[string]string{}))
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	_, err = FromEnv(env(map[string]string{
		"DATABASE_URL":              "postgres://db/recruit",
		"SNAPSHOT_REFRESH_INTERVAL": "soon",
		"WRITE_RATE_PER_MINUTE":     "-1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNAPSHOT_REFRESH_INTERVAL")
	assert.Contains(t, err.Error(), "WRITE_RATE_PER_MINUTE")
}

func TestLoadAutomationSettings_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
emails:
  templates:
    status_update: false
scheduling:
  reminder_hours: 12
  availability_window:
    start: "08:30"
`), 0o644))

	settings, err := LoadAutomationSettings(path)

	require.NoError(t, err)
	assert.True(t, settings.Emails.Enabled)
	assert.True(t, settings.Emails.Templates.ApplicationReceived)
	assert.False(t, settings.Emails.Templates.StatusUpdate)
	assert.Equal(t, 12, settings.Scheduling.ReminderHours)
	assert.Equal(t, "08:30", settings.Scheduling.AvailabilityWindow.Start)
	assert.Equal(t, "17:00", settings.Scheduling.AvailabilityWindow.End)
}

func TestLoadAutomationSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAutomationSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scheduling: [not, a, map]"), 0o644))
	_, err = LoadAutomationSettings(bad)
	assert.Error(t, err)

	inverted := filepath.Join(dir, "inverted.yaml")
	require.NoError(t, os.WriteFile(inverted, []byte("scheduling:\n  availability_window:\n    start: \"18:00\"\n    end: \"09:00\"\n"), 0o644))
	_, err = LoadAutomationSettings(inverted)
	assert.Error(t, err)
}

func TestFromEnv_AutomationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automation.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emails:\n  enabled: false\n"), 0o644))

	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL":             "postgres://db/recruit",
		"AUTOMATION_SETTINGS_FILE": path,
	}))
	require.NoError(t, err)
	assert.False(t, cfg.Automation.Emails.Enabled)
}

func TestFromEnv_ReportsSettingsFileWithEnvProblems(t *testing.T) {
	_, err := FromEnv(env(map[string]string{
		"AUTOMATION_SETTINGS_FILE": filepath.Join(t.TempDir(), "missing.yaml"),
		"WRITE_RATE_PER_MINUTE":    "zero",
	}))

	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "WRITE_RATE_PER_MINUTE")
	assert.Contains(t, err.Error(), "missing.yaml")
}
