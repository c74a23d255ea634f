package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// AddDashboardCommand adds the dashboard command to the root command.
func AddDashboardCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize active work and endpoint health",
		Long: `Show active work items, recently completed items, the current git
branch, and endpoint availability at a glance.`,
		Aliases: []string{"dash"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), cmd, os.Stdout)
		},
	}

	root.AddCommand(cmd)
}

// runDashboard executes the dashboard command.
func runDashboard(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	dash, err := app.Work.Dashboard(ctx)
	if err != nil {
		return err
	}

	endpoints, err := app.Endpoints.List(ctx)
	if err != nil {
		return err
	}
	upCount := 0
	for _, ep := range endpoints {
		if ep.IsUp() {
			upCount++
		}
	}
	dash.ActiveEndpoints = upCount

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, dash)
	}

	styles := tui.NewOutputStyles()

	_, _ = fmt.Fprintln(w, tui.StyleBold.Render("Calcifer"))
	if dash.CurrentBranch != "" {
		_, _ = fmt.Fprintf(w, "On branch %s\n", styles.Info.Render(dash.CurrentBranch))
	}
	_, _ = fmt.Fprintf(w, "%d complete all time", dash.TotalComplete)
	if len(endpoints) > 0 {
		_, _ = fmt.Fprintf(w, " · %d/%d endpoints up", upCount, len(endpoints))
	}
	_, _ = fmt.Fprintln(w)

	if len(dash.Active) > 0 {
		_, _ = fmt.Fprintf(w, "\nActive work (%d):\n", len(dash.Active))
		writeWorkItemTable(w, dash.Active)
	} else {
		_, _ = fmt.Fprintln(w, "\nNo active work.")
	}

	if len(dash.RecentlyDone) > 0 {
		_, _ = fmt.Fprintf(w, "\nRecently completed:\n")
		writeWorkItemTable(w, dash.RecentlyDone)
	}

	return nil
}
