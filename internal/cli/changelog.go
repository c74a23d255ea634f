package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// AddChangelogCommand adds the changelog command to the root command.
func AddChangelogCommand(root *cobra.Command) {
	var raw bool

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Display the repository change log",
		Long: `Render the repository change log, newest entries first. The file is
created with its standard header if it does not exist yet.

Examples:
  calcifer changelog
  calcifer changelog --raw`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangelog(cmd.Context(), raw, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw markdown without rendering")
	root.AddCommand(cmd)
}

// runChangelog executes the changelog command.
func runChangelog(ctx context.Context, raw bool, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Changelog.Ensure(); err != nil {
		return err
	}

	content, err := os.ReadFile(app.Changelog.Path()) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to read change log: %w", err)
	}

	if raw {
		_, _ = fmt.Fprint(w, string(content))
		return nil
	}

	_, _ = fmt.Fprint(w, tui.RenderMarkdown(string(content)))
	return nil
}
