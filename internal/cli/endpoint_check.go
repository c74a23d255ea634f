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

// addEndpointCheckCmd adds the check subcommand to the endpoint command.
func addEndpointCheckCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check [name]",
		Short: "Probe endpoints and record the results",
		Long: `Probe one endpoint by name, or all endpoints concurrently when no
name is given. Each probe result is recorded in the store: status, last
check time, consecutive failure count, and last error.

Examples:
  calcifer endpoint check            # check everything
  calcifer endpoint check postgres   # check one endpoint`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runEndpointCheck(cmd.Context(), cmd, name, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runEndpointCheck executes the endpoint check command.
func runEndpointCheck(ctx context.Context, cmd *cobra.Command, name string, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var endpoints []*domain.Endpoint
	if name == "" {
		endpoints, err = app.Endpoints.CheckAll(ctx)
		if err != nil {
			return err
		}
	} else {
		ep, getErr := app.Endpoints.GetByName(ctx, name)
		if getErr != nil {
			return getErr
		}
		checked, _, checkErr := app.Endpoints.Check(ctx, ep.ID)
		if checkErr != nil {
			return checkErr
		}
		endpoints = []*domain.Endpoint{checked}
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, endpoints)
	}

	if len(endpoints) == 0 {
		_, _ = fmt.Fprintln(w, "No endpoints to check.")
		return nil
	}

	styles := tui.NewOutputStyles()
	up := 0
	for _, ep := range endpoints {
		line := fmt.Sprintf("%s %s", tui.RenderEndpointStatus(ep.Status), ep.Name)
		if ep.IsUp() {
			up++
		} else if ep.LastError != "" {
			line += " " + styles.Dim.Render("("+ep.LastError+")")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	_, _ = fmt.Fprintf(w, "\n%d/%d up\n", up, len(endpoints))
	return nil
}
