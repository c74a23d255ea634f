package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/errors"
	"github.com/mrz1836/calcifer/internal/tui"
)

// addWorkCompleteCmd adds the complete subcommand to the work command.
func addWorkCompleteCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Merge the work item branch and mark the item complete",
		Long: `Validate the completion preconditions (checklist done, branch exists
with commits, changelog updated), merge the branch into the trunk, and mark
the work item complete. Nothing is mutated when validation fails, and a
failed merge leaves the item unchanged so the command can be retried.

Examples:
  calcifer work complete 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkComplete(cmd.Context(), cmd, args[0], os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runWorkComplete executes the work complete command.
func runWorkComplete(ctx context.Context, cmd *cobra.Command, idArg string, w io.Writer) error {
	tui.CheckNoColor()

	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	item, err := app.Work.MergeAndComplete(ctx, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrPreconditionFailed) {
			writeCompletionFailures(ctx, app, id, w)
		}
		return wrapNotFound(err, id)
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, item)
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Completed #%d: %s\n", styles.Success.Render("✓"), item.ID, item.Title)
	if item.MergeCommitSHA != "" {
		sha := item.MergeCommitSHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		_, _ = fmt.Fprintf(w, "  Merged %s into %s (%s)\n", item.Branch, app.Config.Repo.Trunk, styles.Info.Render(sha))
	} else if item.BranchMerged {
		_, _ = fmt.Fprintf(w, "  Branch %s was already merged\n", item.Branch)
	}
	return nil
}

// writeCompletionFailures re-runs validation to list each failed
// precondition individually.
func writeCompletionFailures(ctx context.Context, app *App, id int64, w io.Writer) {
	item, err := app.Store.GetWorkItem(ctx, id)
	if err != nil {
		return
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintln(w, "Cannot complete:")
	for _, failure := range app.Work.ValidateForCompletion(ctx, item) {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Error.Render("✗"), failure)
	}
}
