// internal/config/config_test.go
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清掉會影響測試的環境變數；t.Setenv 負責在測試結束後還原原值。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ATMBANK_ENV", "ATMBANK_ADDR", "ATMBANK_DATA_FILE", "ATMBANK_LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := Load(quiet)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "accounts.json", cfg.DataFile)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ATMBANK_ADDR", ":9090")
	t.Setenv("ATMBANK_DATA_FILE", "/var/lib/atmbank/accounts.json")
	t.Setenv("ATMBANK_LOG_FORMAT", "json")
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := Load(quiet)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/atmbank/accounts.json", cfg.DataFile)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ATMBANK_ENV=production\n"), 0o644))
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := Load(quiet, envFile)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
}
