package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_UsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg := DefaultConfig()
	require.Equal(t, filepath.Join(dir, "brandmgr"), cfg.DataDir)
	require.Equal(t, "sqlite3", cfg.Storage.Driver)
	require.Equal(t, "brandmgr.db", cfg.Storage.File)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: gorm\ntimezone: Asia/Tokyo\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "gorm", cfg.Storage.Driver)
	require.Equal(t, "brandmgr.db", cfg.Storage.File)
	require.Equal(t, "Asia/Tokyo", cfg.Timezone)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: gorm\n"), 0644))
	t.Setenv("BRANDMGR_STORAGE_DRIVER", "sqlite3")
	t.Setenv("BRANDMGR_STORAGE_FILE", "other.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite3", cfg.Storage.Driver)
	require.Equal(t, "other.db", cfg.Storage.File)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path))
	require.Error(t, WriteDefault(path), "existing file is not overwritten")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &Config{DataDir: dir, Storage: Storage{File: "x.db"}, LogFile: "/var/tmp/x.log"}

	db, err := cfg.DBPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "x.db"), db)
	require.DirExists(t, dir)

	log, err := cfg.LogPath()
	require.NoError(t, err)
	require.Equal(t, "/var/tmp/x.log", log)
}

func TestDefaultTimezone(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Berlin"}
	require.Equal(t, "Europe/Berlin", cfg.DefaultTimezone())

	t.Setenv("TZ", "America/New_York")
	cfg.Timezone = ""
	require.Equal(t, "America/New_York", cfg.DefaultTimezone())

	t.Setenv("TZ", "")
	require.NotEmpty(t, cfg.DefaultTimezone())
	require.NotEqual(t, "Local", cfg.DefaultTimezone())
}
