package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/tui"
)

// AddDocsCommand adds the docs command group to the root command.
func AddDocsCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse repository documentation",
		Long: `List and display markdown files under the repository docs directory,
including the runbooks generated for monitored endpoints.`,
	}

	addDocsListCmd(cmd)
	addDocsShowCmd(cmd)

	root.AddCommand(cmd)
}

// addDocsListCmd adds the list subcommand to the docs command.
func addDocsListCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List documentation files",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocsList(cmd.Context(), cmd, os.Stdout)
		},
	}
	parent.AddCommand(cmd)
}

// runDocsList executes the docs list command.
func runDocsList(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	docList, err := app.Docs.List()
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if len(docList) == 0 {
		if output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintf(w, "No documentation files under %s.\n", app.Docs.Dir())
		}
		return nil
	}

	if output == OutputJSON {
		return printJSON(w, docList)
	}

	styles := tui.NewOutputStyles()
	for _, doc := range docList {
		_, _ = fmt.Fprintf(w, "%s  %s\n", tui.StyleBold.Render(doc.Title), styles.Dim.Render(doc.Name))
	}
	return nil
}

// addDocsShowCmd adds the show subcommand to the docs command.
func addDocsShowCmd(parent *cobra.Command) {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Display a documentation file",
		Long: `Render a documentation file as terminal markdown. The .md extension
is optional.

Examples:
  calcifer docs show endpoint-postgres
  calcifer docs show CHANGES --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocsShow(cmd.Context(), args[0], raw, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw markdown without rendering")
	parent.AddCommand(cmd)
}

// runDocsShow executes the docs show command.
func runDocsShow(ctx context.Context, name string, raw bool, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	content, err := app.Docs.Read(name)
	if err != nil {
		return err
	}

	if raw {
		_, _ = fmt.Fprint(w, content)
		return nil
	}

	_, _ = fmt.Fprint(w, tui.RenderMarkdown(content))
	return nil
}
