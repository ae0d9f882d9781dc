package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/metrics"
)

// Status marks a client run outcome.
type Status string

const (
	StatusOK     Status = "OK"
	StatusFailed Status = "FAILED"
)

// ClientRunResult is one client's outcome within a batch.
type ClientRunResult struct {
	Slug    string          `json:"slug"`
	Name    string          `json:"name"`
	Status  Status          `json:"status"`
	Err     string          `json:"error,omitempty"`
	Metrics metrics.Metrics `json:"metrics"`
}

// BatchSummary lists every client's result in input order, for the
// external dashboard renderer.
type BatchSummary struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Results    []ClientRunResult `json:"results"`
}

// Failed reports how many clients failed.
func (s BatchSummary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}

// RunBatch iterates clients in the given order, running each one's
// pipeline inside a failure boundary. One failing client is marked FAILED
// and the batch moves on; the batch itself never aborts early.
func (p *Pipeline) RunBatch(ctx context.Context, clients []client.Client) BatchSummary {
	summary := BatchSummary{
		StartedAt: p.now().UTC(),
		Results:   make([]ClientRunResult, len(clients)),
	}

	for i, c := range clients {
		result := ClientRunResult{Slug: c.Slug, Name: c.Name, Status: StatusOK}
		m, err := p.runIsolated(ctx, c)
		if err != nil {
			result.Status = StatusFailed
			result.Err = err.Error()
			p.logger.Error("client run failed", "client", c.Slug, "error", err)
		} else {
			result.Metrics = m
			p.logger.Info("client run complete", "client", c.Slug,
				"drafted", m.Drafted, "sent", m.Sent, "replies", m.Replies)
		}
		summary.Results[i] = result
	}

	summary.FinishedAt = p.now().UTC()
	return summary
}

// runIsolated converts panics from a client's pipeline into an error so
// nothing can take down the whole batch process.
func (p *Pipeline) runIsolated(ctx context.Context, c client.Client) (m metrics.Metrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	return p.Run(ctx, c)
}
