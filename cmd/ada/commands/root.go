package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brademus/ada-lab/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ada",
	Short: "ADA - CRM audit and outreach batch runner",
	Long: `ADA audits CRM contact data for multiple client organizations and
drives a conservative, gated outreach loop: score contacts, draft
personalized messages, approve, dry-run send, and track replies.

Each client has an isolated outbox store and output artifacts under the
audits directory. One client failing never aborts the batch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return cfg, logger, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
