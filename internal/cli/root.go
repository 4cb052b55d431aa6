package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ofirka2/brand-manager/internal/config"
	"github.com/ofirka2/brand-manager/internal/db"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui"
	"github.com/spf13/cobra"
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// noStore marks commands that run without opening the database
const noStore = "noStore"

// App carries flags and the resources opened for a command
type App struct {
	ConfigPath string
	Driver     string
	Verbose    bool

	cfg     *config.Config
	backend db.Backend
	store   *store.Store
	logFile *os.File
	logPath string
}

// NewRootCmd builds the brandmgr command tree
func NewRootCmd(build BuildInfo) *cobra.Command {
	cmd, _ := newRootCmd(build)
	return cmd
}

func newRootCmd(build BuildInfo) (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "brandmgr",
		Short:        "Track brands, their projects and deadlines",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  brandmgr

  # Print the dashboard numbers
  brandmgr summary

  # Dump everything as YAML
  brandmgr export --format yaml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[noStore] == "true" {
			return nil
		}
		return app.open(cmd, cmd == cmd.Root())
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", config.DefaultPath(), "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&app.Driver, "driver", "", "Storage driver override (sqlite3|gorm)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log to stderr")

	cmd.AddCommand(newVersionCmd(build))
	cmd.AddCommand(newInitConfigCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newSummaryCmd(app))

	// cobra skips the post-run hooks when RunE fails
	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		if c.RunE != nil {
			c.RunE = app.closeOnError(c.RunE)
		}
	}

	return cmd, app
}

func (app *App) closeOnError(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			if cerr := app.close(); cerr != nil {
				log.Printf("warning: close: %v", cerr)
			}
		}
		return err
	}
}

// open loads config, points logging at the right place, opens the backend and
// attaches a store to the command's context. Anything opened is released again
// when a later step fails.
func (app *App) open(cmd *cobra.Command, tui bool) error {
	if err := app.openResources(cmd, tui); err != nil {
		app.close()
		return err
	}
	return nil
}

func (app *App) openResources(cmd *cobra.Command, tui bool) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	if app.Driver != "" {
		cfg.Storage.Driver = app.Driver
	}
	app.cfg = cfg

	switch {
	case tui:
		// The TUI owns the terminal, so logs go to a file
		logPath, err := cfg.LogPath()
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		f, err := tea.LogToFile(logPath, "brandmgr")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		app.logFile = f
		app.logPath = logPath
	case app.Verbose:
		log.SetOutput(cmd.ErrOrStderr())
	default:
		log.SetOutput(io.Discard)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	backend, err := db.OpenBackend(cfg.Storage.Driver, dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	app.backend = backend
	log.Printf("opened %s database at %s", cfg.Storage.Driver, dbPath)

	app.store = store.New(backend, store.Options{Timezone: cfg.DefaultTimezone()})
	cmd.SetContext(store.WithContext(cmd.Context(), app.store))
	return nil
}

func (app *App) close() error {
	if app.store != nil {
		app.store.Close()
		app.store = nil
	}
	var err error
	if app.backend != nil {
		err = app.backend.Close()
		app.backend = nil
	}
	if app.logFile != nil {
		log.SetOutput(io.Discard)
		app.logFile.Close()
		app.logFile = nil
	}
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	st := store.FromContext(cmd.Context())
	p := tea.NewProgram(ui.NewApp(st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	reportSaveErrors(cmd.ErrOrStderr(), st, app.logPath)
	return nil
}

// reportSaveErrors tells the user where to look when write-throughs failed
func reportSaveErrors(w io.Writer, st *store.Store, logPath string) {
	if n := st.SaveErrors(); n > 0 {
		fmt.Fprintf(w, "warning: %d change(s) could not be saved; see %s\n", n, logPath)
	}
}

func newVersionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "brandmgr %s (commit: %s, built: %s)\n", build.Version, build.Commit, build.Date)
			return nil
		},
	}
}

func newInitConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "init-config [path]",
		Short:       "Write a default config file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
