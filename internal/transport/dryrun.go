package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
)

// DryRun is the in-scope Sender: it performs no network I/O and
// deterministically succeeds with a timestamp from the injected clock.
type DryRun struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewDryRun creates a dry-run sender. A nil clock uses time.Now.
func NewDryRun(now func() time.Time, logger *slog.Logger) *DryRun {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRun{now: now, logger: logger}
}

// Send simulates delivery.
func (d *DryRun) Send(ctx context.Context, msg *outbox.Message) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}
	at := d.now().UTC()
	d.logger.Info("dry-send", "message", msg.ID, "contact", msg.ContactID, "subject", msg.Subject)
	return SendResult{MessageID: msg.ID, SentAt: at}, nil
}
