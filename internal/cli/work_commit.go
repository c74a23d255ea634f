package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// workCommitFlags holds flags for the work commit command.
type workCommitFlags struct {
	message string
	entry   string
}

// addWorkCommitCmd adds the commit subcommand to the work command.
func addWorkCommitCmd(parent *cobra.Command) {
	flags := &workCommitFlags{}

	cmd := &cobra.Command{
		Use:   "commit <id>",
		Short: "Record a commit on the work item branch",
		Long: `Check out the work item branch, append a changelog entry, stage all
changes, commit them, and link the commit to the work item.

Both the commit message and the changelog entry are required; empty values
are rejected before anything is touched.

Examples:
  calcifer work commit 3 -m "Add unbound config" -e "Switch resolver to unbound"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkCommit(cmd.Context(), cmd, args[0], flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.message, "message", "m", "", "commit message")
	cmd.Flags().StringVarP(&flags.entry, "entry", "e", "", "changelog entry")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("entry")

	parent.AddCommand(cmd)
}

// runWorkCommit executes the work commit command.
func runWorkCommit(ctx context.Context, cmd *cobra.Command, idArg string, flags *workCommitFlags, w io.Writer) error {
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

	record, err := app.Work.RecordCommit(ctx, id, flags.message, flags.entry)
	if err != nil {
		return wrapNotFound(err, id)
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, record)
	}

	sha := record.SHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Committed %s: %s\n", styles.Success.Render("✓"), styles.Info.Render(sha), record.Message)
	return nil
}
