package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	LogLevel string
	RPCPort  int
	Store    struct {
		Driver string
		Path   string
	}
}

const sample = `
LogLevel = "debug"
RPCPort = 48000

[Store]
Driver = "bolt"
Path = "./data/state"
`

func TestLoadString(t *testing.T) {
	var cfg testConfig
	require.NoError(t, LoadString(sample, &cfg))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 48000, cfg.RPCPort)
	assert.Equal(t, "bolt", cfg.Store.Driver)
	assert.Equal(t, "./data/state", cfg.Store.Path)

	assert.Error(t, LoadString("RPCPort = \"x\"", &cfg))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	var cfg testConfig
	require.NoError(t, LoadFile(path, &cfg))
	assert.Equal(t, 48000, cfg.RPCPort)

	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.toml"), &cfg))
}
