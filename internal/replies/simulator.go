package replies

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
)

// Event is one engagement observation against a sent message.
type Event struct {
	MessageID string
	Kind      outbox.ActivityKind
	At        time.Time
}

// Ingestor collects engagement events for messages sent since a cutoff.
// A real deployment would poll an external mailbox behind this contract.
type Ingestor interface {
	Collect(ctx context.Context, sent []outbox.Message, since time.Time) ([]Event, error)
}

// Simulator derives events deterministically from message identities so
// repeated runs observe identical engagement. Roughly a third of sent
// messages reply; a tenth books a meeting.
type Simulator struct{}

// NewSimulator creates the deterministic ingestor.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Collect produces events for the given sent messages. Messages without a
// send timestamp or sent before the cutoff are skipped.
func (s *Simulator) Collect(ctx context.Context, sent []outbox.Message, since time.Time) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var events []Event
	for _, msg := range sent {
		if msg.SentAt == nil || msg.SentAt.Before(since) {
			continue
		}
		bucket := hashBucket(msg.ID)
		if bucket%3 == 0 {
			events = append(events, Event{
				MessageID: msg.ID,
				Kind:      outbox.KindReply,
				At:        msg.SentAt.Add(1 * time.Hour),
			})
		}
		if bucket%10 == 0 {
			events = append(events, Event{
				MessageID: msg.ID,
				Kind:      outbox.KindMeeting,
				At:        msg.SentAt.Add(24 * time.Hour),
			})
		}
	}
	return events, nil
}

func hashBucket(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32()
}
