package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/domain/variants"
)

// MessageRepository is a mock for repository.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) PutDraft(ctx context.Context, msg *outbox.Message) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

func (m *MessageRepository) Get(ctx context.Context, id string) (*outbox.Message, error) {
	args := m.Called(ctx, id)
	if msg, ok := args.Get(0).(*outbox.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) Transition(ctx context.Context, id string, from []outbox.MessageState, to outbox.MessageState, at time.Time) error {
	args := m.Called(ctx, id, from, to, at)
	return args.Error(0)
}

func (m *MessageRepository) Fail(ctx context.Context, id, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MessageRepository) List(ctx context.Context, opts outbox.ListMessagesOptions) ([]outbox.Message, error) {
	args := m.Called(ctx, opts)
	if msgs, ok := args.Get(0).([]outbox.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) CountByState(ctx context.Context) (map[outbox.MessageState]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[outbox.MessageState]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, act *outbox.Activity) error {
	args := m.Called(ctx, act)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts outbox.ListActivitiesOptions) ([]outbox.Activity, error) {
	args := m.Called(ctx, opts)
	if acts, ok := args.Get(0).([]outbox.Activity); ok {
		return acts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) CountByKind(ctx context.Context) (map[outbox.ActivityKind]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[outbox.ActivityKind]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

// VariantStatsRepository is a mock for repository.VariantStatsRepository.
type VariantStatsRepository struct {
	mock.Mock
}

func (m *VariantStatsRepository) Increment(ctx context.Context, variantSet, variantID, field string) error {
	args := m.Called(ctx, variantSet, variantID, field)
	return args.Error(0)
}

func (m *VariantStatsRepository) List(ctx context.Context, variantSet string) ([]variants.Stats, error) {
	args := m.Called(ctx, variantSet)
	if stats, ok := args.Get(0).([]variants.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
