package outbox

import (
	"context"
	"time"

	"github.com/brademus/ada-lab/internal/domain/variants"
)

// MessageRepository persists messages for one client's outbox.
type MessageRepository interface {
	// PutDraft stores a draft. A message with the same id in any
	// non-failed state is left untouched; a failed message is re-drafted.
	// Reports whether a draft was written.
	PutDraft(ctx context.Context, msg *Message) (bool, error)
	Get(ctx context.Context, id string) (*Message, error)
	// Transition conditionally moves a message from one of the given
	// states to the target state, stamping the matching timestamp column.
	// Fails with repository.ErrNotFound or ErrInvalidTransition; an
	// invalid transition leaves the stored record unchanged.
	Transition(ctx context.Context, id string, from []MessageState, to MessageState, at time.Time) error
	// Fail terminates a drafted message with a reason.
	Fail(ctx context.Context, id, reason string) error
	List(ctx context.Context, opts ListMessagesOptions) ([]Message, error)
	CountByState(ctx context.Context) (map[MessageState]int, error)
}

// ListMessagesOptions provides filtering options for listing messages.
type ListMessagesOptions struct {
	States    []MessageState
	ContactID string
	Limit     int
}

// ActivityRepository persists engagement activities.
type ActivityRepository interface {
	Log(ctx context.Context, act *Activity) error
	List(ctx context.Context, opts ListActivitiesOptions) ([]Activity, error)
	CountByKind(ctx context.Context) (map[ActivityKind]int, error)
}

// ListActivitiesOptions provides filtering options for listing activities.
type ListActivitiesOptions struct {
	MessageID string
	Kind      *ActivityKind
	Since     *time.Time
	Limit     int
}

// VariantStatsRepository records per-template outcome counters.
// Satisfied by variants.StatsRepository implementations.
type VariantStatsRepository = variants.StatsRepository
