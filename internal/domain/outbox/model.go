package outbox

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// MessageState is the lifecycle state of an outreach message.
type MessageState string

const (
	StateDrafted  MessageState = "drafted"
	StateApproved MessageState = "approved"
	StateSent     MessageState = "sent"
	StateReplied  MessageState = "replied"
	StateMet      MessageState = "met"
	StateFailed   MessageState = "failed"
)

// Message is one outreach message moving through the lifecycle
// drafted → approved → sent → {replied, met}, with failed reachable only
// from drafted. The id is stable across runs for the same
// client+contact+template pairing so reruns never duplicate drafts.
type Message struct {
	ID         string       `json:"id"`
	ContactID  string       `json:"contact_id"`
	TemplateID string       `json:"template_id"`
	Channel    string       `json:"channel"`
	Subject    string       `json:"subject"`
	Body       string       `json:"body"`
	State      MessageState `json:"state"`
	CreatedAt  time.Time    `json:"created_at"`
	ApprovedAt *time.Time   `json:"approved_at,omitempty"`
	SentAt     *time.Time   `json:"sent_at,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// NewMessageID derives the stable message identity from the client,
// contact, and template.
func NewMessageID(slug, contactID, templateID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", slug, contactID, templateID)))
	return hex.EncodeToString(sum[:16])
}

// ActivityKind classifies an engagement event against a sent message.
type ActivityKind string

const (
	KindReply   ActivityKind = "reply"
	KindMeeting ActivityKind = "meeting"
	KindOpen    ActivityKind = "open"
)

// Activity records an engagement event. It references a Message without
// owning it and never exists before that message reached sent.
type Activity struct {
	ID        string       `json:"id"`
	MessageID string       `json:"message_id"`
	Kind      ActivityKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// Counts is a per-state snapshot of one client's outbox plus activity
// totals, consumed by the metrics aggregator.
type Counts struct {
	Drafted  int `json:"drafted"`
	Approved int `json:"approved"`
	Sent     int `json:"sent"`
	Replied  int `json:"replied"`
	Met      int `json:"met"`
	Failed   int `json:"failed"`
	Replies  int `json:"replies"`
	Meetings int `json:"meetings"`
}

// SentTotal counts every message that reached sent, including those that
// have since moved to a terminal engagement state.
func (c Counts) SentTotal() int {
	return c.Sent + c.Replied + c.Met
}
