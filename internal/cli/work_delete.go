package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// addWorkDeleteCmd adds the delete subcommand to the work command.
func addWorkDeleteCmd(parent *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a work item and its branch",
		Long: `Delete a work item, its commit records, and its git branch. Branch
deletion is best-effort: a failure is reported as a warning and never blocks
removal of the work item itself.

Examples:
  calcifer work delete 3
  calcifer work delete 3 --force    # skip the confirmation prompt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkDelete(cmd.Context(), args[0], force, os.Stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	parent.AddCommand(cmd)
}

// runWorkDelete executes the work delete command.
func runWorkDelete(ctx context.Context, idArg string, force bool, w io.Writer) error {
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

	item, err := app.Store.GetWorkItem(ctx, id)
	if err != nil {
		return wrapNotFound(err, id)
	}

	if !force {
		confirmed, confirmErr := confirmDelete(item.Title, item.Branch)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			_, _ = fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	warning, err := app.Work.Delete(ctx, id)
	if err != nil {
		return err
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Deleted work item #%d: %s\n", styles.Success.Render("✓"), id, item.Title)
	if warning != nil {
		app.Warn(warning)
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Warning.Render("!"), warning.String())
	}

	return nil
}

// confirmDelete prompts the user before deleting a work item.
func confirmDelete(title, branch string) (bool, error) {
	description := fmt.Sprintf("Commit records are removed with it. Branch %q will be force-deleted.", branch)
	if branch == "" {
		description = "Commit records are removed with it. No branch is attached."
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete work item %q?", title)).
				Description(description).
				Affirmative("Yes, delete").
				Negative("No, keep it").
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}
