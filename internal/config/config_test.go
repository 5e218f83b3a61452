package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaultsPlusEnv(t *testing.T) {
	t.Setenv(EnvToken, "hello1234")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Bind)
	assert.Equal(t, "hello1234", cfg.Auth.Token)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
bind = "127.0.0.1:9090"

[auth]
token = "from-file"

[logging]
level = "debug"
development = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Bind)
	assert.Equal(t, "from-file", cfg.Auth.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "public", cfg.Server.PublicDir, "unset fields keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[auth]
token = "from-file"
`), 0o644))

	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvBind, "0.0.0.0:3000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Token)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Bind)
}

func TestLoad_EmptyTokenRejected(t *testing.T) {
	t.Setenv(EnvToken, "")

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.token")
}

func TestLoad_BadTOMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[server`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
