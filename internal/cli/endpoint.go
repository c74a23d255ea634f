package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/tui"
)

// AddEndpointCommand adds the endpoint command group to the root command.
func AddEndpointCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage monitored endpoints",
		Long: `Add, list, and check monitored endpoints.

Adding an endpoint runs the full workflow: a work item with its own branch,
a generated runbook under the docs directory, a changelog entry, a commit,
and an initial health check.`,
		Aliases: []string{"ep"},
	}

	addEndpointAddCmd(cmd)
	addEndpointListCmd(cmd)
	addEndpointCheckCmd(cmd)

	root.AddCommand(cmd)
}

// writeEndpointTable renders endpoints as a styled table.
func writeEndpointTable(w io.Writer, endpoints []*domain.Endpoint) {
	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "ID", Width: 4, Align: tui.AlignRight},
		{Name: "NAME", Width: 20},
		{Name: "TYPE", Width: 8},
		{Name: "TARGET", Width: 24},
		{Name: "STATUS", Width: 10},
		{Name: "FAILS", Width: 5, Align: tui.AlignRight},
		{Name: "LAST CHECK", Width: 16},
	})

	table.WriteHeader()
	for _, ep := range endpoints {
		target := ep.Target
		if ep.Port != nil {
			target += ":" + strconv.Itoa(*ep.Port)
		}
		table.WriteStyledRow([]string{
			strconv.FormatInt(ep.ID, 10),
			ep.Name,
			string(ep.Type),
			target,
			string(ep.Status),
			strconv.Itoa(ep.ConsecutiveFailures),
			formatTimePtr(ep.LastCheck),
		}, 4, tui.RenderEndpointStatus(ep.Status), tui.EndpointStatusIcon(ep.Status)+" "+string(ep.Status))
	}
}
