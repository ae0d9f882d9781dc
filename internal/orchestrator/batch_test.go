package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brademus/ada-lab/internal/config"
	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/contact"
	"github.com/brademus/ada-lab/internal/transport"
)

func normalized(slug string) client.Client {
	c := client.Client{Slug: slug}
	c.Normalize()
	return c
}

// TestRunBatchIsolatesFailures runs three clients where the middle one's
// source is down: it is marked FAILED and the others complete untouched
func TestRunBatchIsolatesFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sources := map[string]contact.Source{
		"alpha": &stubSource{contacts: twoContactRoster()},
		"beta":  &stubSource{err: errors.New("crm is down")},
		"gamma": &stubSource{contacts: twoContactRoster()},
	}
	p := NewPipeline(config.PipelineConfig{AutoApprove: true}, Deps{
		Sources: func(c client.Client) (contact.Source, error) { return sources[c.Slug], nil },
		Stores:  sqliteStoreFactory(t, logger),
		Sender:  transport.NewDryRun(func() time.Time { return testNow }, logger),
		Logger:  logger,
		Now:     func() time.Time { return testNow },
	})

	clients := []client.Client{normalized("alpha"), normalized("beta"), normalized("gamma")}
	summary := p.RunBatch(context.Background(), clients)

	require.Len(t, summary.Results, 3)
	require.Equal(t, 1, summary.Failed())

	require.Equal(t, StatusOK, summary.Results[0].Status)
	require.Equal(t, 2, summary.Results[0].Metrics.Sent)

	require.Equal(t, StatusFailed, summary.Results[1].Status)
	require.Contains(t, summary.Results[1].Err, "crm is down")

	require.Equal(t, StatusOK, summary.Results[2].Status)
	require.Equal(t, 2, summary.Results[2].Metrics.Sent)
}

// TestRunBatchRecoversPanics verifies a panicking client run cannot take
// down the batch process
func TestRunBatchRecoversPanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPipeline(config.PipelineConfig{}, Deps{
		Sources: func(c client.Client) (contact.Source, error) {
			if c.Slug == "boom" {
				panic("source construction exploded")
			}
			return &stubSource{contacts: twoContactRoster()}, nil
		},
		Stores: sqliteStoreFactory(t, logger),
		Sender: transport.NewDryRun(func() time.Time { return testNow }, logger),
		Logger: logger,
		Now:    func() time.Time { return testNow },
	})

	summary := p.RunBatch(context.Background(), []client.Client{normalized("boom"), normalized("calm")})

	require.Equal(t, StatusFailed, summary.Results[0].Status)
	require.Contains(t, summary.Results[0].Err, "pipeline panic")
	require.Equal(t, StatusOK, summary.Results[1].Status)
}

func TestRunBatchKeepsInputOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPipeline(config.PipelineConfig{}, Deps{
		Sources: func(client.Client) (contact.Source, error) { return &stubSource{}, nil },
		Stores:  sqliteStoreFactory(t, logger),
		Sender:  transport.NewDryRun(func() time.Time { return testNow }, logger),
		Logger:  logger,
		Now:     func() time.Time { return testNow },
	})

	clients := []client.Client{normalized("zeta"), normalized("alpha")}
	summary := p.RunBatch(context.Background(), clients)

	require.Equal(t, "zeta", summary.Results[0].Slug)
	require.Equal(t, "alpha", summary.Results[1].Slug)
	require.False(t, summary.StartedAt.IsZero())
	require.False(t, summary.FinishedAt.IsZero())
}
