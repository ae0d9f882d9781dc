package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brademus/ada-lab/internal/domain/variants"
)

// Service is the durable, per-client outbox: it owns Message and Activity
// records and enforces the lifecycle state machine. Every state-changing
// call persists before returning.
type Service struct {
	messages   MessageRepository
	activities ActivityRepository
	stats      VariantStatsRepository
	variantSet string
	logger     *slog.Logger
}

// NewService creates an outbox service. The stats repository is optional;
// when present, sends and engagement activities update variant counters
// best-effort.
func NewService(messages MessageRepository, activities ActivityRepository, stats VariantStatsRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		messages:   messages,
		activities: activities,
		stats:      stats,
		variantSet: variants.DefaultSet,
		logger:     logger,
	}
}

// PutDraft stores a rendered message in state drafted. Idempotent: if a
// message with the same identity already exists in any non-failed state
// the call is a no-op. Reports whether a draft was written.
func (s *Service) PutDraft(ctx context.Context, msg *Message) (bool, error) {
	if err := ValidateDraft(msg); err != nil {
		return false, err
	}
	if msg.State == "" {
		msg.State = StateDrafted
	}
	if msg.State != StateDrafted {
		return false, ErrInvalidInput
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	created, err := s.messages.PutDraft(ctx, msg)
	if err != nil {
		return false, fmt.Errorf("storing draft: %w", err)
	}
	return created, nil
}

// Approve moves a drafted message to approved.
func (s *Service) Approve(ctx context.Context, messageID string, at time.Time) error {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(msg.State, StateApproved); err != nil {
		return err
	}
	return s.messages.Transition(ctx, messageID, []MessageState{StateDrafted}, StateApproved, at)
}

// MarkSent moves an approved message to sent, recording the send
// timestamp. With override set, a drafted message may be sent directly;
// override is an operator-level flag, never implied by configuration.
func (s *Service) MarkSent(ctx context.Context, messageID string, override bool, at time.Time) error {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(msg.State, StateSent); err != nil {
		return err
	}
	from := []MessageState{StateApproved}
	if override {
		from = append(from, StateDrafted)
	}
	if err := s.messages.Transition(ctx, messageID, from, StateSent, at); err != nil {
		return err
	}
	s.bumpStats(ctx, msg.TemplateID, variants.FieldSent)
	return nil
}

// MarkFailed terminates a drafted message whose rendering or send failed.
func (s *Service) MarkFailed(ctx context.Context, messageID, reason string) error {
	return s.messages.Fail(ctx, messageID, reason)
}

// RecordActivity records a reply or meeting against a sent message,
// transitioning it to replied or met on first engagement. Further
// activities are recorded without changing state. Fails with ErrNotSent
// when the message has not reached sent.
func (s *Service) RecordActivity(ctx context.Context, messageID string, kind ActivityKind, at time.Time) (*Activity, error) {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}

	switch msg.State {
	case StateSent:
		var to MessageState
		switch kind {
		case KindReply:
			to = StateReplied
		case KindMeeting:
			to = StateMet
		}
		if to != "" {
			if err := s.messages.Transition(ctx, messageID, []MessageState{StateSent}, to, at); err != nil {
				return nil, err
			}
		}
	case StateReplied, StateMet:
		// already in a terminal engagement state; record only
	default:
		return nil, fmt.Errorf("%w: message %s is %s", ErrNotSent, messageID, msg.State)
	}

	act := &Activity{
		ID:        uuid.NewString(),
		MessageID: messageID,
		Kind:      kind,
		CreatedAt: at,
	}
	if err := s.activities.Log(ctx, act); err != nil {
		return nil, fmt.Errorf("logging activity: %w", err)
	}

	switch kind {
	case KindReply:
		s.bumpStats(ctx, msg.TemplateID, variants.FieldReplies)
	case KindMeeting:
		s.bumpStats(ctx, msg.TemplateID, variants.FieldMeetings)
	case KindOpen:
		s.bumpStats(ctx, msg.TemplateID, variants.FieldOpens)
	}
	return act, nil
}

// Counts returns the per-state message snapshot plus activity totals.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	byState, err := s.messages.CountByState(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("counting messages: %w", err)
	}
	byKind, err := s.activities.CountByKind(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("counting activities: %w", err)
	}
	return Counts{
		Drafted:  byState[StateDrafted],
		Approved: byState[StateApproved],
		Sent:     byState[StateSent],
		Replied:  byState[StateReplied],
		Met:      byState[StateMet],
		Failed:   byState[StateFailed],
		Replies:  byKind[KindReply],
		Meetings: byKind[KindMeeting],
	}, nil
}

// Messages lists messages in the outbox.
func (s *Service) Messages(ctx context.Context, opts ListMessagesOptions) ([]Message, error) {
	return s.messages.List(ctx, opts)
}

// Get returns one message by id.
func (s *Service) Get(ctx context.Context, messageID string) (*Message, error) {
	return s.messages.Get(ctx, messageID)
}

// VariantStats returns accumulated per-template counters, or nil when no
// stats repository is wired.
func (s *Service) VariantStats(ctx context.Context) ([]variants.Stats, error) {
	if s.stats == nil {
		return nil, nil
	}
	return s.stats.List(ctx, s.variantSet)
}

func (s *Service) bumpStats(ctx context.Context, templateID, field string) {
	if s.stats == nil || templateID == "" {
		return
	}
	if err := s.stats.Increment(ctx, s.variantSet, templateID, field); err != nil {
		s.logger.Warn("variant stats update failed", "template", templateID, "field", field, "error", err)
	}
}
