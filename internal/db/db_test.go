package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	sqlDB, err := OpenBackend(DriverSQLite, filepath.Join(dir, "sql.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := OpenBackend(DriverGorm, filepath.Join(dir, "gorm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { gormDB.Close() })

	return map[string]Backend{DriverSQLite: sqlDB, DriverGorm: gormDB}
}

func TestBackend_SaveLoad(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			brands := []models.Brand{{ID: "b1", Name: "Acme", Budget: 1000, SalesGoal: 500}}
			require.NoError(t, b.Save("brands", brands))

			var got []models.Brand
			require.NoError(t, b.Load("brands", &got))
			require.Equal(t, brands, got)

			// overwrite replaces, not appends
			require.NoError(t, b.Save("brands", []models.Brand{}))
			got = nil
			require.NoError(t, b.Load("brands", &got))
			require.Empty(t, got)
		})
	}
}

func TestBackend_MissingSliceIsNotFound(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			var got []models.Project
			require.ErrorIs(t, b.Load("projects", &got), ErrNotFound)

			_, err := b.Raw("projects")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackend_Names(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Save("templates", []models.ProjectTemplate{}))
			require.NoError(t, b.Save("brands", []models.Brand{}))

			names, err := b.Names()
			require.NoError(t, err)
			require.Equal(t, []string{"brands", "templates"}, names)
		})
	}
}

func TestSQLite_CorruptSliceIsNotFound(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "corrupt.db"))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Exec("INSERT INTO slices (name, value) VALUES (?, ?)", "userSettings", "{not json")
	require.NoError(t, err)

	var s models.UserSettings
	require.ErrorIs(t, d.Load("userSettings", &s), ErrNotFound)
}

func TestGorm_CorruptSliceIsNotFound(t *testing.T) {
	g, err := OpenGorm(filepath.Join(t.TempDir(), "corrupt.db"))
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.gdb.Create(&Slice{Name: "notifications", Value: "[1,"}).Error)

	var n models.NotificationSettings
	require.ErrorIs(t, g.Load("notifications", &n), ErrNotFound)
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	_, err := OpenBackend("postgres", "x")
	require.Error(t, err)
}

func TestOpenGorm_MigrationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.db")

	// a view named like the table makes CREATE TABLE fail
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE VIEW slices AS SELECT 1 AS name")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	g, err := OpenGorm(path)
	require.ErrorContains(t, err, "migrate")
	require.Nil(t, g)
}

func TestGorm_CloseReleasesConnection(t *testing.T) {
	g, err := OpenGorm(filepath.Join(t.TempDir(), "close.db"))
	require.NoError(t, err)
	sqlDB, err := g.gdb.DB()
	require.NoError(t, err)

	require.NoError(t, g.Close())
	require.Error(t, sqlDB.Ping())
}
