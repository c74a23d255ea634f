package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/calcifer/internal/domain"
	"github.com/mrz1836/calcifer/internal/tui"
)

// AddServiceCommand adds the service command group to the root command.
func AddServiceCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the service catalog",
		Long: `Register and list deployed services. Work items and endpoints can
reference a catalog entry as their owner via --service.`,
		Aliases: []string{"svc"},
	}

	addServiceAddCmd(cmd)
	addServiceListCmd(cmd)

	root.AddCommand(cmd)
}

// serviceAddFlags holds flags for the service add command.
type serviceAddFlags struct {
	svcType     string
	host        string
	url         string
	ports       string
	configPath  string
	description string
}

// addServiceAddCmd adds the add subcommand to the service command.
func addServiceAddCmd(parent *cobra.Command) {
	flags := &serviceAddFlags{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a service in the catalog",
		Long: `Register a deployed service, container, or VM.

Examples:
  calcifer service add grafana --type container --host vm-metrics --ports "3000"
  calcifer service add pihole --type vm --host pve1 --url http://pihole.lan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServiceAdd(cmd.Context(), cmd, args[0], flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.svcType, "type", "t", string(domain.ServiceContainer),
		"deployment type (container|vm|bare_metal)")
	cmd.Flags().StringVar(&flags.host, "host", "", "machine the service runs on")
	cmd.Flags().StringVar(&flags.url, "url", "", "access URL")
	cmd.Flags().StringVar(&flags.ports, "ports", "", "exposed ports, free text")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "configuration path in the repository")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "free-form description")
	_ = cmd.MarkFlagRequired("host")

	parent.AddCommand(cmd)
}

// runServiceAdd executes the service add command.
func runServiceAdd(ctx context.Context, cmd *cobra.Command, name string, flags *serviceAddFlags, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	now := time.Now().UTC()
	svc := &domain.Service{
		Name:        name,
		Type:        domain.ServiceType(flags.svcType),
		Host:        flags.host,
		URL:         flags.url,
		Ports:       flags.ports,
		ConfigPath:  flags.configPath,
		Description: flags.description,
		Status:      domain.ServiceStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := app.Store.CreateService(ctx, svc); err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if output == OutputJSON {
		return printJSON(w, svc)
	}

	styles := tui.NewOutputStyles()
	_, _ = fmt.Fprintf(w, "%s Registered service #%d: %s on %s\n",
		styles.Success.Render("✓"), svc.ID, svc.Name, svc.Host)
	return nil
}

// addServiceListCmd adds the list subcommand to the service command.
func addServiceListCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List catalog services",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServiceList(cmd.Context(), cmd, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runServiceList executes the service list command.
func runServiceList(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	tui.CheckNoColor()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	services, err := app.Store.ListServices(ctx)
	if err != nil {
		return err
	}

	output := cmd.Flag("output").Value.String()
	if len(services) == 0 {
		if output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintln(w, "No services. Run 'calcifer service add' to register one.")
		}
		return nil
	}

	if output == OutputJSON {
		return printJSON(w, services)
	}

	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "ID", Width: 4, Align: tui.AlignRight},
		{Name: "NAME", Width: 20},
		{Name: "TYPE", Width: 11},
		{Name: "HOST", Width: 16},
		{Name: "STATUS", Width: 12},
		{Name: "PORTS", Width: 14},
	})
	table.WriteHeader()
	for _, svc := range services {
		table.WriteRow(
			strconv.FormatInt(svc.ID, 10),
			svc.Name,
			string(svc.Type),
			svc.Host,
			string(svc.Status),
			svc.Ports,
		)
	}
	return nil
}
