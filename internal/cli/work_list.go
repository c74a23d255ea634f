package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/tui"
)

// addWorkListCmd adds the list subcommand to the work command.
func addWorkListCmd(parent *cobra.Command) {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		Long: `Display work items, newest first, optionally filtered by status.

Examples:
  calcifer work list
  calcifer work list --status planning
  calcifer work list --output json`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkList(cmd.Context(), cmd, status, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "",
		"filter by status (planning|in_progress|complete|cancelled)")
	parent.AddCommand(cmd)
}

// runWorkList executes the work list command.
func runWorkList(ctx context.Context, cmd *cobra.Command, status string, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	items, err := app.Store.ListWorkItems(ctx, domain.Status(status))
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if len(items) == 0 {
		if output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintln(w, "No work items. Run 'calcifer work new' to create one.")
		}
		return nil
	}

	if output == OutputJSON {
		return printJSON(w, items)
	}

	writeWorkItemTable(w, items)
	return nil
}
