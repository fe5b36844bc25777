package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skilllink/skilllink/internal/common"
)

func clearArgs(t *testing.T) {
	t.Helper()
	orig := os.Args
	os.Args = []string{"testbin"}
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "avatars", cfg.StorageBucket)
	require.Equal(t, 5*time.Minute, cfg.SessionStaleAfter)
	require.Empty(t, cfg.ProjectURL)
	require.Empty(t, cfg.AnonKey)
}

func TestValidate_MissingMandatory(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := cfg.Validate()
	require.Error(t, err)

	var ce *common.ConfigError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, []string{EnvProjectURL, EnvAnonKey}, ce.Missing)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearArgs(t)
	t.Setenv(EnvProjectURL, "https://proj.example.com")
	t.Setenv(EnvAnonKey, "anon-key-1")
	t.Setenv(EnvStorageBucket, "images")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://proj.example.com", cfg.ProjectURL)
	require.Equal(t, "anon-key-1", cfg.AnonKey)
	require.Equal(t, "images", cfg.StorageBucket)
}

func TestLoadConfig_MissingIsFatalError(t *testing.T) {
	clearArgs(t)
	t.Setenv(EnvProjectURL, "")
	t.Setenv(EnvAnonKey, "")
	os.Unsetenv(EnvProjectURL)
	os.Unsetenv(EnvAnonKey)

	_, err := LoadConfig()
	var ce *common.ConfigError
	require.True(t, errors.As(err, &ce))
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"project_url": "https://json.example.com",
		"anon_key": "json-key",
		"session_stale_after_sec": 60
	}`), 0o600))

	orig := os.Args
	os.Args = []string{"testbin", "-c", path}
	t.Cleanup(func() { os.Args = orig })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://json.example.com", cfg.ProjectURL)
	require.Equal(t, "json-key", cfg.AnonKey)
	require.Equal(t, time.Minute, cfg.SessionStaleAfter)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv(EnvProjectURL, "https://env.example.com")
	t.Setenv(EnvAnonKey, "env-key")

	orig := os.Args
	os.Args = []string{"testbin", "-u", "https://flag.example.com", "-b", "uploads"}
	t.Cleanup(func() { os.Args = orig })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://flag.example.com", cfg.ProjectURL)
	require.Equal(t, "env-key", cfg.AnonKey)
	require.Equal(t, "uploads", cfg.StorageBucket)
}
