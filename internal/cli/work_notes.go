package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// addWorkNotesCmd adds the notes subcommand to the work command.
func addWorkNotesCmd(parent *cobra.Command) {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "notes <id> [text]",
		Short: "Set the notes of a work item",
		Long: `Replace the free-form notes of a work item. Notes longer than 2000
characters are truncated. With no text argument, notes are read from the
file given with --file, or cleared.

Examples:
  calcifer work notes 3 "switched the resolver to unbound"
  calcifer work notes 3 --file notes.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 2 {
				text = args[1]
			}
			return runWorkNotes(cmd.Context(), cmd, args[0], text, fromFile, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "read notes from a file")
	parent.AddCommand(cmd)
}

// runWorkNotes executes the work notes command.
func runWorkNotes(ctx context.Context, cmd *cobra.Command, idArg, text, fromFile string, w io.Writer) error {
	tui.CheckNoColor()

	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	if fromFile != "" {
		content, readErr := os.ReadFile(fromFile) //nolint:gosec // user-supplied path by design of the flag
		if readErr != nil {
			return fmt.Errorf("failed to read notes file: %w", readErr)
		}
		text = string(content)
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	item, err := app.Work.UpdateNotes(ctx, id, text)
	if err != nil {
		return wrapNotFound(err, id)
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, item)
	}

	styles := tui.NewOutputStyles()
	switch {
	case item.Notes == "":
		_, _ = fmt.Fprintf(w, "%s Cleared notes for #%d\n", styles.Success.Render("✓"), item.ID)
	case len(item.Notes) < len(text):
		_, _ = fmt.Fprintf(w, "%s Saved notes for #%d (truncated to %d characters)\n",
			styles.Success.Render("✓"), item.ID, len(item.Notes))
	default:
		_, _ = fmt.Fprintf(w, "%s Saved notes for #%d\n", styles.Success.Render("✓"), item.ID)
	}
	return nil
}
