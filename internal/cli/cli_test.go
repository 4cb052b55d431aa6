package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/ofirka2/brand-manager/internal/db"
	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/testutil"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setup points the data dir at a temp dir and returns a config path that does not exist yet
func setup(t *testing.T) (dataDir, configPath string) {
	t.Helper()
	dataDir = t.TempDir()
	t.Setenv("BRANDMGR_DATA_DIR", dataDir)
	t.Setenv("BRANDMGR_STORAGE_DRIVER", "")
	t.Setenv("TZ", "UTC")
	clock = func() time.Time { return testutil.Now }
	t.Cleanup(func() { clock = time.Now })
	return dataDir, filepath.Join(t.TempDir(), "config.yaml")
}

// seed writes one brand with a project directly through the backend
func seed(t *testing.T, dataDir, driver string) {
	t.Helper()
	backend, err := db.OpenBackend(driver, filepath.Join(dataDir, "brandmgr.db"))
	require.NoError(t, err)
	defer backend.Close()

	st := store.New(backend, store.Options{Timezone: "UTC"})
	st.Dispatch(store.AddBrand{Brand: testutil.Brand("b1", "Acme")})
	p := testutil.Project("p1", "b1", 0)
	overdue := testutil.Task("t1", "p1", testutil.Day(-1))
	overdue.Priority = models.PriorityUrgent
	done := testutil.Task("t2", "p1", testutil.Day(3))
	done.Status = models.StatusCompleted
	p.Tasks = append(p.Tasks, overdue, done)
	st.Dispatch(store.AddProject{Project: p})
	require.Zero(t, st.SaveErrors())
	st.Close()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runApp(t, args...)
	return out, err
}

// runApp also returns the App so tests can inspect what was left open
func runApp(t *testing.T, args ...string) (string, *App, error) {
	t.Helper()
	cmd, app := newRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), app, err
}

func TestVersion(t *testing.T) {
	_, cfgPath := setup(t)

	out, err := run(t, "version", "--config", cfgPath)
	require.NoError(t, err)
	require.Equal(t, "brandmgr 1.2.3 (commit: abc, built: today)\n", out)
}

func TestInitConfig(t *testing.T) {
	_, cfgPath := setup(t)

	out, err := run(t, "init-config", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, cfgPath)
	require.FileExists(t, cfgPath)

	_, err = run(t, "init-config", cfgPath)
	require.Error(t, err, "existing config is left alone")
}

func TestSummary(t *testing.T) {
	dataDir, cfgPath := setup(t)
	seed(t, dataDir, db.DriverSQLite)

	out, err := run(t, "summary", "--config", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, "Projects:        1")
	require.Contains(t, out, "Tasks:           2")
	require.Contains(t, out, "Overdue:         1")
	require.Contains(t, out, "Completed:       1 (50%)")
	require.Contains(t, out, "Acme")
	require.Contains(t, out, "[overdue] Project p1 / Task t1 (escalated)")
}

func TestSummary_EmptyDatabase(t *testing.T) {
	_, cfgPath := setup(t)

	out, err := run(t, "summary", "--config", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, "Projects:        0")
	require.NotContains(t, out, "Brands")
	require.NotContains(t, out, "Reminders")
}

func TestExport_JSON(t *testing.T) {
	dataDir, cfgPath := setup(t)
	seed(t, dataDir, db.DriverSQLite)

	out, err := run(t, "export", "--config", cfgPath)
	require.NoError(t, err)

	var snap snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Brands, 1)
	require.Equal(t, "Acme", snap.Brands[0].Name)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Projects[0].Tasks, 2)
	require.Empty(t, snap.Templates)
	require.Equal(t, "UTC", snap.UserSettings.Timezone)
}

func TestExport_YAML(t *testing.T) {
	dataDir, cfgPath := setup(t)
	seed(t, dataDir, db.DriverSQLite)

	out, err := run(t, "export", "--config", cfgPath, "--format", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "brands")
	require.Contains(t, doc, "projects")
	require.Contains(t, doc, "notifications")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, cfgPath := setup(t)

	_, err := run(t, "export", "--config", cfgPath, "--format", "xml")
	require.ErrorContains(t, err, "unknown format")
}

func TestExport_RawWithGorm(t *testing.T) {
	dataDir, cfgPath := setup(t)
	seed(t, dataDir, db.DriverGorm)

	out, err := run(t, "export", "--config", cfgPath, "--driver", db.DriverGorm, "--raw")
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	require.Contains(t, raw, "brands")
	require.Contains(t, raw, "projects")

	var brands []models.Brand
	require.NoError(t, json.Unmarshal(raw["brands"], &brands))
	require.Equal(t, "b1", brands[0].ID)
}

func TestUnknownDriver(t *testing.T) {
	_, cfgPath := setup(t)

	_, err := run(t, "summary", "--config", cfgPath, "--driver", "postgres")
	require.ErrorContains(t, err, "unknown storage driver")
}

func TestFailedCommandClosesBackend(t *testing.T) {
	for _, driver := range []string{db.DriverSQLite, db.DriverGorm} {
		t.Run(driver, func(t *testing.T) {
			_, cfgPath := setup(t)

			_, app, err := runApp(t, "export", "--config", cfgPath, "--driver", driver, "--format", "xml")
			require.Error(t, err)
			require.Nil(t, app.backend)
			require.Nil(t, app.store)
		})
	}
}

func TestSuccessfulCommandClosesBackend(t *testing.T) {
	_, cfgPath := setup(t)

	_, app, err := runApp(t, "summary", "--config", cfgPath)
	require.NoError(t, err)
	require.Nil(t, app.backend)
	require.Nil(t, app.store)
}

func TestReportSaveErrors(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "brandmgr.log")

	ok := store.New(testutil.NewMemoryAdapter(), store.Options{Timezone: "UTC"})
	var out bytes.Buffer
	reportSaveErrors(&out, ok, logPath)
	require.Empty(t, out.String())

	adapter := testutil.NewMemoryAdapter()
	adapter.FailOn = string(store.SliceBrands)
	failing := store.New(adapter, store.Options{Timezone: "UTC"})
	failing.Dispatch(store.AddBrand{Brand: testutil.Brand("b1", "Acme")})

	reportSaveErrors(&out, failing, logPath)
	require.Equal(t, "warning: 1 change(s) could not be saved; see "+logPath+"\n", out.String())
}
