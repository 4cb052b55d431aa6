package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// snapshot is the exported form of every persisted slice
type snapshot struct {
	Brands        []models.Brand              `json:"brands" yaml:"brands"`
	Projects      []models.Project            `json:"projects" yaml:"projects"`
	Templates     []models.ProjectTemplate    `json:"templates" yaml:"templates"`
	UserSettings  models.UserSettings         `json:"userSettings" yaml:"userSettings"`
	Notifications models.NotificationSettings `json:"notifications" yaml:"notifications"`
}

func snapshotOf(s store.State) snapshot {
	return snapshot{
		Brands:        s.Brands,
		Projects:      s.Projects,
		Templates:     s.Templates,
		UserSettings:  s.UserSettings,
		Notifications: s.Notifications,
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format string
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print all saved data",
		Long: `Print brands, projects, templates and settings.

--raw prints the slices exactly as stored, keyed by slice name, and always as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if raw {
				return exportRaw(cmd, app)
			}

			snap := snapshotOf(store.FromContext(cmd.Context()).State())
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print stored slices without decoding them")
	return cmd
}

func exportRaw(cmd *cobra.Command, app *App) error {
	names, err := app.backend.Names()
	if err != nil {
		return fmt.Errorf("list slices: %w", err)
	}
	slices := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		v, err := app.backend.Raw(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		slices[name] = v
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(slices)
}
