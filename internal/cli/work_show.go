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

// addWorkShowCmd adds the show subcommand to the work command.
func addWorkShowCmd(parent *cobra.Command) {
	var showNotes bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a work item with its checklist, commits, and branch state",
		Long: `Display full detail for one work item: checklist progress, recorded
commits, live branch commits ahead of the trunk, and merge state.

Examples:
  calcifer work show 3
  calcifer work show 3 --notes
  calcifer work show 3 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkShow(cmd.Context(), cmd, args[0], showNotes, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&showNotes, "notes", false, "render the work item notes as markdown")
	parent.AddCommand(cmd)
}

// runWorkShow executes the work show command.
func runWorkShow(ctx context.Context, cmd *cobra.Command, arg string, showNotes bool, w io.Writer) error {
	tui.CheckNoColor()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	detail, err := app.Work.Detail(ctx, id)
	if err != nil {
		return wrapNotFound(err, id)
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, detail)
	}

	item := detail.Item
	styles := tui.NewOutputStyles()

	_, _ = fmt.Fprintf(w, "%s #%d %s\n", tui.RenderStatus(item.Status), item.ID, tui.StyleBold.Render(item.Title))
	_, _ = fmt.Fprintf(w, "  Type:    %s\n", item.TypeLabel())
	_, _ = fmt.Fprintf(w, "  Started: %s\n", formatTime(item.StartedAt))
	if item.CompletedAt != nil {
		_, _ = fmt.Fprintf(w, "  Done:    %s\n", formatTime(*item.CompletedAt))
	}
	if item.Branch != "" {
		merged := ""
		if detail.BranchMerged {
			merged = styles.Success.Render(" (merged)")
		}
		_, _ = fmt.Fprintf(w, "  Branch:  %s%s\n", item.Branch, merged)
	}
	if item.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", styles.Dim.Render(item.Description))
	}

	_, _ = fmt.Fprintf(w, "\nChecklist (%d/%d):\n",
		len(item.Checklist)-item.IncompleteSteps(), len(item.Checklist))
	writeChecklist(w, item.Checklist)

	if item.Status != domain.StatusComplete {
		if failures := app.Work.ValidateForCompletion(ctx, item); len(failures) > 0 {
			_, _ = fmt.Fprintln(w, "\nBlocking completion:")
			for _, failure := range failures {
				_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Error.Render("✗"), failure)
			}
		}
	}

	if len(detail.CommitRecords) > 0 {
		_, _ = fmt.Fprintf(w, "\nRecorded commits (%d):\n", len(detail.CommitRecords))
		for _, record := range detail.CommitRecords {
			sha := record.SHA
			if len(sha) > 7 {
				sha = sha[:7]
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Info.Render(sha), record.Message)
		}
	}

	if len(detail.BranchCommits) > 0 {
		_, _ = fmt.Fprintf(w, "\nBranch commits ahead of trunk (%d):\n", len(detail.BranchCommits))
		for _, commit := range detail.BranchCommits {
			_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", styles.Info.Render(commit.SHA), commit.Subject, commit.Author)
		}
	}

	if showNotes && item.Notes != "" {
		_, _ = fmt.Fprintln(w, "\nNotes:")
		_, _ = fmt.Fprintln(w, tui.RenderMarkdown(item.Notes))
	}

	return nil
}
