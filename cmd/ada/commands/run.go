package commands

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/brademus/ada-lab/internal/config"
	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/contact"
	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/orchestrator"
	"github.com/brademus/ada-lab/internal/printer"
	"github.com/brademus/ada-lab/internal/replies"
	"github.com/brademus/ada-lab/internal/reporting"
	"github.com/brademus/ada-lab/internal/source"
	"github.com/brademus/ada-lab/internal/sqlite"
	"github.com/brademus/ada-lab/internal/transport"
)

var runFlags struct {
	clientsPath     string
	auditsDir       string
	onlyClient      string
	source          string
	limit           int
	approve         bool
	sendOverride    bool
	simulateReplies bool
	seed            int64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the outreach batch for every configured client",
	Long: `Run fetches contacts for each client, scores and ranks them, drafts
outreach messages into the client's outbox, and pushes approved drafts
through the dry-run sender. Replies and meetings are recorded against
sent messages and metrics artifacts are written per client.

Sends only happen for approved messages. Use --approve to approve this
run's drafts, or --send-override to bypass the approval gate entirely
(operator decision; never read from configuration).`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.clientsPath, "clients", "", "path to the client roster YAML (default from config)")
	runCmd.Flags().StringVar(&runFlags.auditsDir, "audits-dir", "", "root directory for per-client stores and artifacts")
	runCmd.Flags().StringVar(&runFlags.onlyClient, "client", "", "run a single client by slug instead of the whole roster")
	runCmd.Flags().StringVar(&runFlags.source, "source", "", "contact source: synthetic, csv, or crm")
	runCmd.Flags().IntVar(&runFlags.limit, "limit", 0, "max contacts fetched per client")
	runCmd.Flags().BoolVar(&runFlags.approve, "approve", false, "approve this run's drafts before the send phase")
	runCmd.Flags().BoolVar(&runFlags.sendOverride, "send-override", false, "send drafted messages without approval")
	runCmd.Flags().BoolVar(&runFlags.simulateReplies, "simulate-replies", false, "run the deterministic reply simulator after sends")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0, "seed for template exploration (0 uses current time)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		printer.Error("configuration error: %v\n", err)
		return err
	}
	applyRunFlags(&cfg)

	roster, err := config.LoadClients(cfg.Clients)
	if err != nil {
		printer.Error("loading clients: %v\n", err)
		return err
	}
	if runFlags.onlyClient != "" {
		c, err := config.GetClient(roster, runFlags.onlyClient)
		if err != nil {
			printer.Error("%v\n", err)
			return err
		}
		roster = []client.Client{c}
	}

	seed := cfg.Pipeline.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	deps := orchestrator.Deps{
		Sources:  sourceFactory(cfg),
		Stores:   storeFactory(cfg, logger),
		Sender:   transport.NewDryRun(nil, logger),
		Ingestor: replies.NewSimulator(),
		Logger:   logger,
		Rand:     rand.New(rand.NewSource(seed)),
	}
	pipeline := orchestrator.NewPipeline(cfg.Pipeline, deps)

	printer.Info("Running outreach batch for %d client(s)\n", len(roster))
	summary := pipeline.RunBatch(cmd.Context(), roster)

	for _, result := range summary.Results {
		if err := reporting.WriteClientArtifacts(cfg.AuditsDir, result, summary.FinishedAt); err != nil {
			logger.Error("writing client artifacts", "client", result.Slug, "error", err)
		}
	}
	if err := reporting.WriteBatchSummary(cfg.AuditsDir, summary); err != nil {
		logger.Error("writing batch summary", "error", err)
	}

	printer.Summary(summary)
	if summary.Failed() > 0 {
		return fmt.Errorf("%d client(s) failed", summary.Failed())
	}
	printer.Success("Batch complete\n")
	return nil
}

func applyRunFlags(cfg *config.Config) {
	if runFlags.clientsPath != "" {
		cfg.Clients = runFlags.clientsPath
	}
	if runFlags.auditsDir != "" {
		cfg.AuditsDir = runFlags.auditsDir
	}
	if runFlags.source != "" {
		cfg.Pipeline.Source = runFlags.source
	}
	if runFlags.limit > 0 {
		cfg.Pipeline.Limit = runFlags.limit
	}
	if runFlags.approve {
		cfg.Pipeline.AutoApprove = true
	}
	if runFlags.simulateReplies {
		cfg.Pipeline.SimulateReplies = true
	}
	if runFlags.seed != 0 {
		cfg.Pipeline.Seed = runFlags.seed
	}
	cfg.Pipeline.SendOverride = runFlags.sendOverride
}

// storeFactory opens one sqlite outbox per client under the audits root.
func storeFactory(cfg config.Config, logger *slog.Logger) orchestrator.StoreFactory {
	return func(c client.Client) (orchestrator.Store, func() error, error) {
		path := filepath.Join(cfg.AuditsDir, c.Slug, "outbox.sqlite")
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		svc := outbox.NewService(
			sqlite.NewMessageRepository(db),
			sqlite.NewActivityRepository(db),
			sqlite.NewVariantStatsRepository(db),
			logger.With("client", c.Slug),
		)
		return svc, db.Close, nil
	}
}

// sourceFactory builds the per-client contact source selected by config.
func sourceFactory(cfg config.Config) orchestrator.SourceFactory {
	return func(c client.Client) (contact.Source, error) {
		switch cfg.Pipeline.Source {
		case "synthetic", "":
			return source.NewSyntheticSource(c.Slug, time.Now().UTC(), 0), nil
		case "csv":
			path := filepath.Join(cfg.AuditsDir, c.Slug, cfg.Pipeline.CSVName)
			return source.NewCSVSource(path), nil
		case "crm":
			// CRM credentials exist on the client but no live connector
			// ships with the batch runner; plug one in via source.CRMSource.
			return nil, fmt.Errorf("crm source requires a connector for client %q", c.Slug)
		default:
			return nil, fmt.Errorf("unknown contact source %q", cfg.Pipeline.Source)
		}
	}
}
