package commands

import (
	"github.com/spf13/cobra"

	"github.com/brademus/ada-lab/internal/config"
	"github.com/brademus/ada-lab/internal/printer"
)

var clientsFlags struct {
	clientsPath string
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the configured client roster",
	Long: `Clients reads the roster YAML and prints each client with its
resolved outreach settings, after defaults and overrides are applied.`,
	RunE: listClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.Flags().StringVar(&clientsFlags.clientsPath, "clients", "", "path to the client roster YAML (default from config)")
}

func listClients(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		printer.Error("configuration error: %v\n", err)
		return err
	}
	if clientsFlags.clientsPath != "" {
		cfg.Clients = clientsFlags.clientsPath
	}

	roster, err := config.LoadClients(cfg.Clients)
	if err != nil {
		printer.Error("loading clients: %v\n", err)
		return err
	}

	printer.Info("%-20s %-24s %-8s %-10s %s\n", "SLUG", "NAME", "CHANNEL", "DAILY CAP", "QUIET HOURS")
	for _, c := range roster {
		quiet := c.Outreach.QuietHours
		if quiet == "" {
			quiet = "-"
		}
		printer.Info("%-20s %-24s %-8s %-10d %s\n", c.Slug, c.Name, c.Outreach.Channel, c.Outreach.DailyCap, quiet)
	}
	printer.Success("%d client(s) configured\n", len(roster))
	return nil
}
