package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsYAMLOverridingDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bufpool.yaml")
	yaml := []byte("storage:\n  workdir: /tmp/bufpool-data\n  base: mytable\nbuffer_pool:\n  pool_size: 256\nlog:\n  debug: true\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/bufpool-data", cfg.Storage.Workdir)
	require.Equal(t, "mytable", cfg.Storage.Base)
	require.Equal(t, 256, cfg.BufferPool.PoolSize)
	require.True(t, cfg.Log.Debug)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault_HasSaneValues(t *testing.T) {
	cfg := Default()
	require.NotZero(t, cfg.BufferPool.PoolSize)
	require.NotEmpty(t, cfg.Storage.Workdir)
}
