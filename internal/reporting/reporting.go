package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brademus/ada-lab/internal/domain/metrics"
	"github.com/brademus/ada-lab/internal/orchestrator"
)

// Per-client artifact names under the audits root. The dashboard renderer
// (external) reads these; this package only writes them.
const (
	MetricsFile = "outreach_metrics.json"
	ErrorFile   = "error.txt"
	SummaryFile = "batch_summary.json"
)

type metricsArtifact struct {
	metrics.Metrics
	TSUTC string `json:"ts_utc"`
}

// WriteClientArtifacts writes one client's outcome into its audit
// directory: metrics JSON on success, error.txt on failure. A stale
// error.txt from a previous failed run is cleared on success.
func WriteClientArtifacts(auditsDir string, result orchestrator.ClientRunResult, now time.Time) error {
	dir := filepath.Join(auditsDir, result.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("preparing client dir: %w", err)
	}

	if result.Status == orchestrator.StatusFailed {
		msg := fmt.Sprintf("%s\n%s\n", now.UTC().Format(time.RFC3339), result.Err)
		if err := os.WriteFile(filepath.Join(dir, ErrorFile), []byte(msg), 0o644); err != nil {
			return fmt.Errorf("writing error artifact: %w", err)
		}
		return nil
	}

	if err := os.Remove(filepath.Join(dir, ErrorFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing error artifact: %w", err)
	}

	artifact := metricsArtifact{
		Metrics: result.Metrics,
		TSUTC:   now.UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetricsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing metrics artifact: %w", err)
	}
	return nil
}

// WriteBatchSummary writes the cross-client summary for the dashboard.
func WriteBatchSummary(auditsDir string, summary orchestrator.BatchSummary) error {
	if err := os.MkdirAll(auditsDir, 0o755); err != nil {
		return fmt.Errorf("preparing audits dir: %w", err)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(auditsDir, SummaryFile), data, 0o644); err != nil {
		return fmt.Errorf("writing batch summary: %w", err)
	}
	return nil
}
