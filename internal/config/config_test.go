package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.True(t, cfg.AtomicReorder)
	require.Equal(t, "all", cfg.DefaultFilter)
	require.Equal(t, filepath.Join(filepath.Dir(path), DefaultDBName), cfg.DBPath)
	require.Equal(t, "a", cfg.Keys.Add)
}

func TestLoadOrCreate_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	body := "db_path = \"/tmp/elsewhere.db\"\natomic_reorder = false\nlog_level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/elsewhere.db", cfg.DBPath)
	require.False(t, cfg.AtomicReorder)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadOrCreate_EmptyDBPathFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("default_filter = \"active\"\n"), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, DefaultDBName), cfg.DBPath)
	require.Equal(t, "active", cfg.DefaultFilter)
}
