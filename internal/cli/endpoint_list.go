package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// addEndpointListCmd adds the list subcommand to the endpoint command.
func addEndpointListCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List monitored endpoints",
		Long: `Display all monitored endpoints with their last observed status.

Examples:
  calcifer endpoint list
  calcifer endpoint list --output json`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEndpointList(cmd.Context(), cmd, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runEndpointList executes the endpoint list command.
func runEndpointList(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	endpoints, err := app.Endpoints.List(ctx)
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if len(endpoints) == 0 {
		if output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintln(w, "No endpoints. Run 'calcifer endpoint add' to create one.")
		}
		return nil
	}

	if output == OutputJSON {
		return printJSON(w, endpoints)
	}

	writeEndpointTable(w, endpoints)
	return nil
}
