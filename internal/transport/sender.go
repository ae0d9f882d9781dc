package transport

import (
	"context"
	"errors"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
)

// ErrSendFailure indicates the transport could not deliver. The message
// stays approved and is retried on a future run, never within the same one.
var ErrSendFailure = errors.New("send failed")

// SendResult reports a completed delivery attempt.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the pluggable delivery sink. A real SMTP/REST transport is an
// external collaborator satisfying this contract; callers must not assume
// which implementation is active, and remain responsible for MarkSent.
type Sender interface {
	Send(ctx context.Context, msg *outbox.Message) (SendResult, error)
}
