package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brademus/ada-lab/internal/config"
	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/contact"
	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/replies"
	"github.com/brademus/ada-lab/internal/sqlite"
	"github.com/brademus/ada-lab/internal/transport"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// stubSource returns a fixed contact set.
type stubSource struct {
	contacts []contact.Contact
	err      error
}

func (s *stubSource) Fetch(ctx context.Context, limit int) ([]contact.Contact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.contacts, nil
}

// firstReplyIngestor replies to the earliest sent message, once.
type firstReplyIngestor struct{}

func (firstReplyIngestor) Collect(ctx context.Context, sent []outbox.Message, since time.Time) ([]replies.Event, error) {
	for _, msg := range sent {
		if msg.SentAt == nil {
			continue
		}
		return []replies.Event{{
			MessageID: msg.ID,
			Kind:      outbox.KindReply,
			At:        msg.SentAt.Add(time.Hour),
		}}, nil
	}
	return nil, nil
}

// failingSender simulates a transport outage.
type failingSender struct{}

func (failingSender) Send(ctx context.Context, msg *outbox.Message) (transport.SendResult, error) {
	return transport.SendResult{}, transport.ErrSendFailure
}

func daysBefore(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

// twoContactRoster is a high-fit and a low-fit contact: alice lands in the
// top template band, bob in the bottom one.
func twoContactRoster() []contact.Contact {
	return []contact.Contact{
		{
			ID: "alice", Email: "alice@northwind.com", FirstName: "Alice",
			Company: "Northwind", OwnerID: "o1", Lifecycle: "customer",
			LastModified: daysBefore(60),
		},
		{ID: "bob", Email: "bob@globex.com", FirstName: "Bob", Company: "Globex"},
	}
}

func sqliteStoreFactory(t *testing.T, logger *slog.Logger) StoreFactory {
	t.Helper()
	dir := t.TempDir()
	return func(c client.Client) (Store, func() error, error) {
		db, err := sqlite.Open(filepath.Join(dir, c.Slug, "outbox.sqlite"))
		if err != nil {
			return nil, nil, err
		}
		svc := outbox.NewService(
			sqlite.NewMessageRepository(db),
			sqlite.NewActivityRepository(db),
			sqlite.NewVariantStatsRepository(db),
			logger,
		)
		return svc, db.Close, nil
	}
}

func testPipeline(t *testing.T, cfg config.PipelineConfig, src contact.Source, ingestor replies.Ingestor) *Pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPipeline(cfg, Deps{
		Sources:  func(c client.Client) (contact.Source, error) { return src, nil },
		Stores:   sqliteStoreFactory(t, logger),
		Sender:   transport.NewDryRun(func() time.Time { return testNow }, logger),
		Ingestor: ingestor,
		Logger:   logger,
		Now:      func() time.Time { return testNow },
	})
}

func TestRunDraftsWithoutApproval(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	p := testPipeline(t, config.PipelineConfig{}, &stubSource{contacts: twoContactRoster()}, nil)

	m, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, m.Drafted)
	require.Zero(t, m.Sent, "unapproved drafts must not send")
}

// TestRunFullLoop drives draft, approve, send, and one reply, checking the
// resulting metrics snapshot end to end
func TestRunFullLoop(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	cfg := config.PipelineConfig{AutoApprove: true, SimulateReplies: true}
	p := testPipeline(t, cfg, &stubSource{contacts: twoContactRoster()}, firstReplyIngestor{})

	m, err := p.Run(context.Background(), c)
	require.NoError(t, err)

	require.Zero(t, m.Drafted, "every draft was approved and sent")
	require.Equal(t, 2, m.Sent)
	require.Equal(t, 1, m.Replies)
	require.InDelta(t, 0.5, m.ReplyRate, 1e-9)
	require.Zero(t, m.MeetingRate)
}

// TestRunIdempotent verifies a rerun against the same store neither
// duplicates drafts nor double-sends
func TestRunIdempotent(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := sqliteStoreFactory(t, logger)
	cfg := config.PipelineConfig{AutoApprove: true}
	src := &stubSource{contacts: twoContactRoster()}
	p := NewPipeline(cfg, Deps{
		Sources: func(client.Client) (contact.Source, error) { return src, nil },
		Stores:  stores,
		Sender:  transport.NewDryRun(func() time.Time { return testNow }, logger),
		Logger:  logger,
		Now:     func() time.Time { return testNow },
	})

	first, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, first.Sent)

	second, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, second.Sent, "rerun must not create or send new messages")
	require.Zero(t, second.Drafted)
}

// TestRunApprovesEarlierDrafts verifies drafts persisted by a previous
// non-approving run are approved and sent on an approving rerun
func TestRunApprovesEarlierDrafts(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := sqliteStoreFactory(t, logger)
	src := &stubSource{contacts: twoContactRoster()}
	newPipeline := func(cfg config.PipelineConfig) *Pipeline {
		return NewPipeline(cfg, Deps{
			Sources: func(client.Client) (contact.Source, error) { return src, nil },
			Stores:  stores,
			Sender:  transport.NewDryRun(func() time.Time { return testNow }, logger),
			Logger:  logger,
			Now:     func() time.Time { return testNow },
		})
	}

	first, err := newPipeline(config.PipelineConfig{}).Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, first.Drafted)
	require.Zero(t, first.Sent)

	second, err := newPipeline(config.PipelineConfig{AutoApprove: true}).Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, second.Sent, "existing drafts must be approved and sent")
	require.Zero(t, second.Drafted)
}

// TestRunSendFailureKeepsApproved verifies a transport failure leaves
// approved messages approved, and a later run with a working transport
// retries them
func TestRunSendFailureKeepsApproved(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := sqliteStoreFactory(t, logger)
	src := &stubSource{contacts: twoContactRoster()}
	newPipeline := func(sender transport.Sender) *Pipeline {
		return NewPipeline(config.PipelineConfig{AutoApprove: true}, Deps{
			Sources: func(client.Client) (contact.Source, error) { return src, nil },
			Stores:  stores,
			Sender:  sender,
			Logger:  logger,
			Now:     func() time.Time { return testNow },
		})
	}

	m, err := newPipeline(failingSender{}).Run(context.Background(), c)
	require.NoError(t, err, "transport failures never fail the client run")
	require.Zero(t, m.Sent)

	store, closeStore, err := stores(c)
	require.NoError(t, err)
	approved, err := store.Messages(context.Background(), outbox.ListMessagesOptions{
		States: []outbox.MessageState{outbox.StateApproved},
	})
	require.NoError(t, closeStore())
	require.NoError(t, err)
	require.Len(t, approved, 2, "failed sends stay approved for the next run")

	m, err = newPipeline(transport.NewDryRun(func() time.Time { return testNow }, logger)).Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, m.Sent, "approved messages are retried once the transport recovers")
}

// TestRunSendFailureFailsOverrideDrafts verifies an override send that
// fails marks the drafted message failed instead of leaving it pending
func TestRunSendFailureFailsOverrideDrafts(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := sqliteStoreFactory(t, logger)
	p := NewPipeline(config.PipelineConfig{SendOverride: true}, Deps{
		Sources: func(client.Client) (contact.Source, error) {
			return &stubSource{contacts: twoContactRoster()}, nil
		},
		Stores: stores,
		Sender: failingSender{},
		Logger: logger,
		Now:    func() time.Time { return testNow },
	})

	m, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Zero(t, m.Sent)
	require.Zero(t, m.Drafted)

	store, closeStore, err := stores(c)
	require.NoError(t, err)
	counts, err := store.Counts(context.Background())
	require.NoError(t, closeStore())
	require.NoError(t, err)
	require.Equal(t, 2, counts.Failed)
}

func TestRunSourceFailure(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	p := testPipeline(t, config.PipelineConfig{}, &stubSource{err: contact.ErrSourceUnavailable}, nil)

	_, err := p.Run(context.Background(), c)
	require.ErrorIs(t, err, contact.ErrSourceUnavailable)
}

// TestRunSendOverride verifies drafted messages go out without approval
// when the operator override is set
func TestRunSendOverride(t *testing.T) {
	c := client.Client{Slug: "acme"}
	c.Normalize()
	cfg := config.PipelineConfig{SendOverride: true}
	p := testPipeline(t, cfg, &stubSource{contacts: twoContactRoster()}, nil)

	m, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, m.Sent)
	require.Zero(t, m.Drafted)
}

// TestRunPolicySkips verifies plan-level exclusions never reach the outbox
func TestRunPolicySkips(t *testing.T) {
	c := client.Client{Slug: "acme", Outreach: client.OutreachConfig{Blocklist: []string{"globex.com"}}}
	c.Normalize()
	p := testPipeline(t, config.PipelineConfig{}, &stubSource{contacts: twoContactRoster()}, nil)

	m, err := p.Run(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 1, m.Drafted, "blocklisted contact is skipped")
}
