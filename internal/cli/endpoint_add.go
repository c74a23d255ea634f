package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/endpoint"
	"github.com/mrz1836/calcifer/internal/tui"
)

// endpointAddFlags holds flags for the endpoint add command.
type endpointAddFlags struct {
	epType      string
	target      string
	port        int
	interval    int
	description string
	serviceID   int64
}

// addEndpointAddCmd adds the add subcommand to the endpoint command.
func addEndpointAddCmd(parent *cobra.Command) {
	flags := &endpointAddFlags{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a monitored endpoint through the full workflow",
		Long: `Add a monitored endpoint. This creates a work item on its own branch,
writes a runbook under the docs directory, records a changelog entry,
commits the generated files, and runs the initial health check.

Examples:
  calcifer endpoint add gateway --type network --target 192.168.1.1
  calcifer endpoint add postgres --type tcp --target db.lan --port 5432
  calcifer endpoint add grafana --type https --target grafana.lan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpointAdd(cmd.Context(), cmd, args[0], flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.epType, "type", "t", "", "probe type (network|tcp|http|https)")
	cmd.Flags().StringVar(&flags.target, "target", "", "IP address or hostname to probe")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "port (required for tcp, optional for http/https)")
	cmd.Flags().IntVar(&flags.interval, "interval", 0, "check interval in seconds (default 300)")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "free-form description")
	cmd.Flags().Int64Var(&flags.serviceID, "service", 0, "owning service catalog id")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("target")

	parent.AddCommand(cmd)
}

// runEndpointAdd executes the endpoint add command.
func runEndpointAdd(ctx context.Context, cmd *cobra.Command, name string, flags *endpointAddFlags, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	req := endpoint.CreateRequest{
		Name:                 name,
		Type:                 domain.EndpointType(flags.epType),
		Target:               flags.target,
		CheckIntervalSeconds: flags.interval,
		Description:          flags.description,
	}
	if flags.port > 0 {
		req.Port = &flags.port
	}
	if flags.serviceID > 0 {
		req.ServiceID = &flags.serviceID
	}

	result, err := app.Endpoints.CreateWithWorkItem(ctx, req)
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, result)
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Added endpoint %s (%s %s)\n",
		styles.Success.Render("✓"), result.Endpoint.Name, result.Endpoint.Type, result.Endpoint.Target)
	_, _ = fmt.Fprintf(w, "  Work item: #%d on %s\n", result.WorkItem.ID, result.WorkItem.Branch)
	_, _ = fmt.Fprintf(w, "  Runbook:   %s\n", result.Endpoint.DocPath)
	_, _ = fmt.Fprintf(w, "  Initial check: %s\n", tui.RenderEndpointStatus(result.Endpoint.Status))

	for i := range result.Warnings {
		warning := &result.Warnings[i]
		app.Warn(warning)
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Warning.Render("!"), warning.String())
	}

	return nil
}
