package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/tui"
	"github.com/mrz1836/calcifer/internal/work"
)

// workNewFlags holds flags for the work new command.
type workNewFlags struct {
	category    string
	actionType  string
	description string
	serviceID   int64
}

// addWorkNewCmd adds the new subcommand to the work command.
func addWorkNewCmd(parent *cobra.Command) {
	flags := &workNewFlags{}

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a work item with its git branch and checklist",
		Long: `Create a work item. A git branch named
{category}/{action}/{slug}-{date} is created and checked out, and the
checklist for the category/action pair is attached.

Examples:
  calcifer work new "Add monitoring endpoint: api" -c service -t new
  calcifer work new "Fix DNS resolver" -c platform_feature -t fix -d "resolver drops AAAA"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkNew(cmd.Context(), cmd, args[0], flags, os.Stdout)
		},
	}

	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}
	actions := make([]string, 0, len(domain.ActionTypes()))
	for _, a := range domain.ActionTypes() {
		actions = append(actions, string(a))
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", "",
		fmt.Sprintf("work item category (%s)", strings.Join(categories, "|")))
	cmd.Flags().StringVarP(&flags.actionType, "type", "t", "",
		fmt.Sprintf("action type (%s)", strings.Join(actions, "|")))
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "free-form description")
	cmd.Flags().Int64Var(&flags.serviceID, "service", 0, "owning service catalog id")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("type")

	parent.AddCommand(cmd)
}

// runWorkNew executes the work new command.
func runWorkNew(ctx context.Context, cmd *cobra.Command, title string, flags *workNewFlags, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	req := work.CreateRequest{
		Title:       title,
		Category:    domain.Category(flags.category),
		ActionType:  domain.ActionType(flags.actionType),
		Description: flags.description,
	}
	if flags.serviceID > 0 {
		req.ServiceID = &flags.serviceID
	}

	item, warning, err := app.Work.Create(ctx, req)
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, item)
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Created work item #%d: %s\n",
		styles.Success.Render("✓"), item.ID, item.Title)
	_, _ = fmt.Fprintf(w, "  Branch:    %s\n", item.Branch)
	_, _ = fmt.Fprintf(w, "  Type:      %s\n", item.TypeLabel())
	_, _ = fmt.Fprintf(w, "  Checklist: %d steps\n", len(item.Checklist))

	if warning != nil {
		app.Warn(warning)
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Warning.Render("!"), warning.String())
	}

	return nil
}
