package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20.0, cfg.Geometry.RadiusScale)
	assert.Equal(t, 8888, cfg.Network.Port)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[geometry]
radius_scale = 12.5

[network]
port = 9000
advertise = false

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, cfg.Geometry.RadiusScale)
	assert.Equal(t, 0.5, cfg.Geometry.Pressure)
	assert.Equal(t, 9000, cfg.Network.Port)
	assert.False(t, cfg.Network.Advertise)
	assert.Equal(t, "_inkboard._tcp", cfg.Network.Service)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[geometry]\nradius = 3\n"))
	assert.Error(t, err)
}

func TestParseValidates(t *testing.T) {
	cases := []string{
		"[geometry]\nradius_scale = 0\n",
		"[geometry]\npressure = -1\n",
		"[network]\nport = 70000\n",
		"[board]\ncolor = \"\"\n",
		"[export]\nmargin = -2\n",
	}
	for _, c := range cases {
		_, err := Parse([]byte(c))
		assert.ErrorIs(t, err, ErrInvalid, c)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "inkboard.toml")
	require.NoError(t, os.WriteFile(path, []byte("[board]\ncolor = \"red\"\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "red", cfg.Board.Color)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkboard.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o600))
	t.Setenv(EnvPath, path)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
