package repository

import (
	"context"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/domain/variants"
)

// MessageRepository manages message persistence for one client's outbox
type MessageRepository interface {
	PutDraft(ctx context.Context, msg *outbox.Message) (bool, error)
	Get(ctx context.Context, id string) (*outbox.Message, error)
	Transition(ctx context.Context, id string, from []outbox.MessageState, to outbox.MessageState, at time.Time) error
	Fail(ctx context.Context, id, reason string) error
	List(ctx context.Context, opts outbox.ListMessagesOptions) ([]outbox.Message, error)
	CountByState(ctx context.Context) (map[outbox.MessageState]int, error)
}

// ActivityRepository manages engagement activity persistence
type ActivityRepository interface {
	Log(ctx context.Context, act *outbox.Activity) error
	List(ctx context.Context, opts outbox.ListActivitiesOptions) ([]outbox.Activity, error)
	CountByKind(ctx context.Context) (map[outbox.ActivityKind]int, error)
}

// VariantStatsRepository manages per-template outcome counters
type VariantStatsRepository interface {
	Increment(ctx context.Context, variantSet, variantID, field string) error
	List(ctx context.Context, variantSet string) ([]variants.Stats, error)
}
