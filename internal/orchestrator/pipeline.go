package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brademus/ada-lab/internal/config"
	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/contact"
	"github.com/brademus/ada-lab/internal/domain/metrics"
	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/domain/outreach"
	"github.com/brademus/ada-lab/internal/domain/scoring"
	"github.com/brademus/ada-lab/internal/domain/templates"
	"github.com/brademus/ada-lab/internal/domain/variants"
	"github.com/brademus/ada-lab/internal/replies"
	"github.com/brademus/ada-lab/internal/transport"
)

// Store is what the pipeline needs from a client's outbox. Satisfied by
// *outbox.Service.
type Store interface {
	PutDraft(ctx context.Context, msg *outbox.Message) (bool, error)
	Approve(ctx context.Context, messageID string, at time.Time) error
	MarkSent(ctx context.Context, messageID string, override bool, at time.Time) error
	MarkFailed(ctx context.Context, messageID, reason string) error
	RecordActivity(ctx context.Context, messageID string, kind outbox.ActivityKind, at time.Time) (*outbox.Activity, error)
	Counts(ctx context.Context) (outbox.Counts, error)
	Messages(ctx context.Context, opts outbox.ListMessagesOptions) ([]outbox.Message, error)
	VariantStats(ctx context.Context) ([]variants.Stats, error)
}

// StoreFactory opens the per-client outbox store. The returned closer is
// called when the client's run completes.
type StoreFactory func(c client.Client) (Store, func() error, error)

// SourceFactory builds the contact source for one client.
type SourceFactory func(c client.Client) (contact.Source, error)

// Deps wires all collaborators into the per-client pipeline.
type Deps struct {
	Sources  SourceFactory
	Stores   StoreFactory
	Sender   transport.Sender
	Ingestor replies.Ingestor
	Library  *templates.Library
	Logger   *slog.Logger
	Now      func() time.Time
	Rand     *rand.Rand
}

// Pipeline runs the full outreach flow for a single client: fetch, score,
// plan, draft, approve, gated send, reply ingestion, metrics.
type Pipeline struct {
	cfg      config.PipelineConfig
	sources  SourceFactory
	stores   StoreFactory
	sender   transport.Sender
	ingestor replies.Ingestor
	library  *templates.Library
	logger   *slog.Logger
	now      func() time.Time
	rng      *rand.Rand
}

// NewPipeline constructs the per-client pipeline.
func NewPipeline(cfg config.PipelineConfig, deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	library := deps.Library
	if library == nil {
		library = templates.DefaultLibrary()
	}
	return &Pipeline{
		cfg:      cfg,
		sources:  deps.Sources,
		stores:   deps.Stores,
		sender:   deps.Sender,
		ingestor: deps.Ingestor,
		library:  library,
		logger:   logger,
		now:      now,
		rng:      deps.Rand,
	}
}

// Run executes the pipeline for one client and returns its metrics
// snapshot. Per-contact and per-message failures are recorded and
// skipped; only client-level failures (source, store) propagate.
func (p *Pipeline) Run(ctx context.Context, c client.Client) (metrics.Metrics, error) {
	log := p.logger.With("client", c.Slug)
	runStart := p.now().UTC()

	src, err := p.sources(c)
	if err != nil {
		return metrics.Metrics{}, fmt.Errorf("building source: %w", err)
	}
	store, closeStore, err := p.stores(c)
	if err != nil {
		return metrics.Metrics{}, fmt.Errorf("opening outbox store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("closing outbox store", "error", err)
		}
	}()

	contacts, err := src.Fetch(ctx, p.cfg.Limit)
	if err != nil {
		return metrics.Metrics{}, fmt.Errorf("fetching contacts: %w", err)
	}
	log.Info("contacts fetched", "count", len(contacts))

	ranked := scoring.NewScorer(runStart).Rank(contacts)
	plan := outreach.BuildPlan(c, ranked, p.cfg.Limit, runStart)
	log.Info("outreach plan built", "targets", len(plan.Targets), "skipped", len(plan.Reasons))

	p.draftPhase(ctx, c, store, plan, log)
	if p.cfg.AutoApprove {
		p.approvePhase(ctx, store, log)
	}
	p.sendPhase(ctx, store, log)
	if p.cfg.SimulateReplies && p.ingestor != nil {
		p.replyPhase(ctx, store, runStart, log)
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return metrics.Metrics{}, fmt.Errorf("reading counts: %w", err)
	}
	return metrics.Aggregate(counts), nil
}

// draftPhase selects, renders, and persists a draft per planned target.
// Template and render failures skip the contact, never the client.
func (p *Pipeline) draftPhase(ctx context.Context, c client.Client, store Store, plan outreach.Plan, log *slog.Logger) {
	drafted := 0
	for _, target := range plan.Targets {
		tplID, err := p.selectTemplate(ctx, c, store, target)
		if err != nil {
			log.Warn("template selection failed", "contact", target.Contact.ID, "error", err)
			continue
		}
		rendered, err := p.library.Render(tplID, target.Contact, c.Outreach.BrandVoice)
		if err != nil {
			log.Warn("render failed", "contact", target.Contact.ID, "template", tplID, "error", err)
			continue
		}

		msg := &outbox.Message{
			ID:         outbox.NewMessageID(c.Slug, target.Contact.ID, string(tplID)),
			ContactID:  target.Contact.ID,
			TemplateID: string(tplID),
			Channel:    c.Outreach.Channel,
			Subject:    rendered.Subject,
			Body:       rendered.Body,
			CreatedAt:  p.now().UTC(),
		}
		created, err := store.PutDraft(ctx, msg)
		if err != nil {
			log.Warn("draft store failed", "message", msg.ID, "error", err)
			continue
		}
		if created {
			drafted++
		}
	}
	log.Info("drafts written", "count", drafted)
}

// selectTemplate picks by score band, or epsilon-greedily over the
// library when the client opts into exploration.
func (p *Pipeline) selectTemplate(ctx context.Context, c client.Client, store Store, target scoring.Scored) (templates.TemplateID, error) {
	if c.Outreach.Epsilon > 0 && p.rng != nil {
		stats, err := store.VariantStats(ctx)
		if err != nil {
			return "", err
		}
		var ids []string
		for _, t := range p.library.Variants() {
			ids = append(ids, string(t.ID))
		}
		if chosen := variants.Choose(ids, stats, c.Outreach.Epsilon, p.rng); chosen != "" {
			return templates.TemplateID(chosen), nil
		}
	}
	return p.library.Select(target.Score.Value, target.Contact.CompanySize)
}

// approvePhase approves every pending draft in the store, including
// drafts a previous run persisted but never approved. Messages already
// past drafted are left alone.
func (p *Pipeline) approvePhase(ctx context.Context, store Store, log *slog.Logger) {
	pending, err := store.Messages(ctx, outbox.ListMessagesOptions{
		States: []outbox.MessageState{outbox.StateDrafted},
	})
	if err != nil {
		log.Warn("listing drafts failed", "error", err)
		return
	}
	for i := range pending {
		if err := store.Approve(ctx, pending[i].ID, p.now().UTC()); err != nil {
			if errors.Is(err, outbox.ErrInvalidTransition) {
				continue
			}
			log.Warn("approve failed", "message", pending[i].ID, "error", err)
		}
	}
}

// sendPhase pushes approved messages (plus drafted ones under operator
// override) through the gate and the transport. A transport failure
// leaves an approved message approved so the next run retries it.
func (p *Pipeline) sendPhase(ctx context.Context, store Store, log *slog.Logger) {
	states := []outbox.MessageState{outbox.StateApproved}
	if p.cfg.SendOverride {
		states = append(states, outbox.StateDrafted)
	}
	pending, err := store.Messages(ctx, outbox.ListMessagesOptions{States: states})
	if err != nil {
		log.Warn("listing pending messages failed", "error", err)
		return
	}

	for i := range pending {
		msg := &pending[i]
		if !outbox.CanSend(msg, p.cfg.SendOverride) {
			continue
		}
		result, err := p.sender.Send(ctx, msg)
		if err != nil {
			if msg.State == outbox.StateDrafted {
				if failErr := store.MarkFailed(ctx, msg.ID, err.Error()); failErr != nil {
					log.Warn("mark failed errored", "message", msg.ID, "error", failErr)
				}
			}
			log.Warn("send failed", "message", msg.ID, "error", err)
			continue
		}
		if err := store.MarkSent(ctx, msg.ID, p.cfg.SendOverride, result.SentAt); err != nil {
			log.Warn("mark sent failed", "message", msg.ID, "error", err)
		}
	}
}

// replyPhase records simulated or externally supplied engagement against
// messages sent during this run.
func (p *Pipeline) replyPhase(ctx context.Context, store Store, since time.Time, log *slog.Logger) {
	sent, err := store.Messages(ctx, outbox.ListMessagesOptions{
		States: []outbox.MessageState{outbox.StateSent, outbox.StateReplied, outbox.StateMet},
	})
	if err != nil {
		log.Warn("listing sent messages failed", "error", err)
		return
	}
	events, err := p.ingestor.Collect(ctx, sent, since)
	if err != nil {
		log.Warn("collecting activities failed", "error", err)
		return
	}
	for _, ev := range events {
		if _, err := store.RecordActivity(ctx, ev.MessageID, ev.Kind, ev.At); err != nil {
			log.Warn("recording activity failed", "message", ev.MessageID, "kind", ev.Kind, "error", err)
		}
	}
	log.Info("activities recorded", "count", len(events))
}
