package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/spf13/cobra"
)

// clock is swapped in tests
var clock = time.Now

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print dashboard numbers, brand rollups and reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := store.FromContext(cmd.Context()).State()
			now := clock().In(analytics.Location(state.UserSettings.Timezone))
			out := cmd.OutOrStdout()

			stats := analytics.Dashboard(state, now)
			fmt.Fprintln(out, "Dashboard")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  Projects:        %d\n", stats.TotalProjects)
			fmt.Fprintf(out, "  Tasks:           %d\n", stats.TotalTasks)
			fmt.Fprintf(out, "  Overdue:         %d\n", stats.Overdue)
			fmt.Fprintf(out, "  Due in 7 days:   %d\n", stats.DueIn7)
			fmt.Fprintf(out, "  Due in 30 days:  %d\n", stats.DueIn30)
			fmt.Fprintf(out, "  Completed:       %d (%d%%)\n", stats.Completed, stats.CompletionRate)

			if sums := analytics.BrandSummaries(state); len(sums) > 0 {
				fmt.Fprintln(out, "\nBrands")
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "  NAME\tPROJECTS\tTASKS\tDONE")
				for _, s := range sums {
					fmt.Fprintf(tw, "  %s\t%d\t%d\t%d%%\n", s.Brand.Name, s.Projects, s.Tasks, s.CompletionRate)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if rs := analytics.Reminders(analytics.AllTasks(state), state.Notifications, now); len(rs) > 0 {
				fmt.Fprintln(out, "\nReminders")
				for _, r := range rs {
					mark := ""
					if r.Escalated {
						mark = " (escalated)"
					}
					fmt.Fprintf(out, "  [%s] %s / %s%s\n", r.Kind, r.Row.ProjectName, r.Row.Task.Subject, mark)
				}
			}
			return nil
		},
	}
}
