package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// addWorkCheckCmd adds the check subcommand to the work command.
func addWorkCheckCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check <id> <index>",
		Short: "Toggle a checklist item",
		Long: `Toggle the done state of one checklist item by its zero-based index.
Toggling has no effect on the work item status.

Examples:
  calcifer work check 3 0    # toggle the first step of work item 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkCheck(cmd.Context(), cmd, args[0], args[1], os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runWorkCheck executes the work check command.
func runWorkCheck(ctx context.Context, cmd *cobra.Command, idArg, indexArg string, w io.Writer) error {
	tui.CheckNoColor()

	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	index, err := parseIndex(indexArg)
	if err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	item, err := app.Work.ToggleChecklistItem(ctx, id, index)
	if err != nil {
		return wrapNotFound(err, id)
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, item)
	}

	_, _ = fmt.Fprintf(w, "Checklist for #%d (%d/%d done):\n",
		item.ID, len(item.Checklist)-item.IncompleteSteps(), len(item.Checklist))
	writeChecklist(w, item.Checklist)
	return nil
}
