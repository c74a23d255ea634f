package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/tui"
)

// AddWorkCommand adds the work command group to the root command.
func AddWorkCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage work items",
		Long: `Create, inspect, and complete work items.

Every work item is bound to a git branch and a category-specific checklist.
Completion is gated on the checklist, branch commits, and a changelog update.`,
		Aliases: []string{"w"},
	}

	addWorkNewCmd(cmd)
	addWorkListCmd(cmd)
	addWorkShowCmd(cmd)
	addWorkCheckCmd(cmd)
	addWorkNotesCmd(cmd)
	addWorkCommitCmd(cmd)
	addWorkCompleteCmd(cmd)
	addWorkDeleteCmd(cmd)

	root.AddCommand(cmd)
}

// writeWorkItemTable renders work items as a styled table.
func writeWorkItemTable(w io.Writer, items []*domain.WorkItem) {
	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "ID", Width: 4, Align: tui.AlignRight},
		{Name: "TITLE", Width: 36},
		{Name: "TYPE", Width: 20},
		{Name: "STATUS", Width: 12},
		{Name: "STEPS", Width: 5, Align: tui.AlignRight},
		{Name: "STARTED", Width: 14},
	})

	table.WriteHeader()
	for _, item := range items {
		steps := fmt.Sprintf("%d/%d", len(item.Checklist)-item.IncompleteSteps(), len(item.Checklist))
		table.WriteStyledRow([]string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.TypeLabel(),
			string(item.Status),
			steps,
			tui.RelativeTime(item.StartedAt),
		}, 3, tui.RenderStatus(item.Status), tui.StatusIcon(item.Status)+" "+string(item.Status))
	}
}

// writeChecklist renders a work item checklist with done markers.
func writeChecklist(w io.Writer, checklist []domain.ChecklistItem) {
	styles := tui.NewOutputStyles()
	for i, item := range checklist {
		if item.Done {
			_, _ = fmt.Fprintln(w, styles.Dim.Render(fmt.Sprintf("  %2d. [x] %s", i, item.Description)))
			continue
		}
		_, _ = fmt.Fprintf(w, "  %2d. [ ] %s\n", i, item.Description)
	}
}
