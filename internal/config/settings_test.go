package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), Settings{
		AppName:     s.AppName,
		ExecTimeout: s.ExecTimeout,
		LogLevel:    s.LogLevel,
		LogFormat:   s.LogFormat,
	})
	assert.Empty(t, s.ProtectedShortcuts)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `app_name: CleanDesk
exec_timeout: 45s
protected_shortcuts:
  - "Company VPN.lnk"
log:
  level: DEBUG
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "CleanDesk", s.AppName)
	assert.Equal(t, 45*time.Second, s.ExecTimeout)
	assert.Equal(t, []string{"Company VPN.lnk"}, s.ProtectedShortcuts)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("MYPCNOW_EXEC_TIMEOUT", "5s")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.ExecTimeout)
}

func TestLoadSettingsRejectsUnsafeAppName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app_name: ../escape\n"), 0o644))

	_, err := LoadSettings(dir)
	require.Error(t, err)
}

func TestLoadSettingsRejectsZeroTimeout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("exec_timeout: 0s\n"), 0o644))

	_, err := LoadSettings(dir)
	require.Error(t, err)
}
