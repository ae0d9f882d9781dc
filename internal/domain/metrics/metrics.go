package metrics

import "github.com/brademus/ada-lab/internal/domain/outbox"

// Metrics is the per-client outreach snapshot consumed by the dashboard.
type Metrics struct {
	Drafted     int     `json:"emails_drafted"`
	Sent        int     `json:"emails_sent"`
	Replies     int     `json:"replies"`
	Meetings    int     `json:"meetings"`
	ReplyRate   float64 `json:"reply_rate"`
	MeetingRate float64 `json:"meeting_rate"`
}

// Aggregate computes metrics from an outbox counts snapshot. Sent counts
// every message that reached sent, including ones that have since moved
// to replied or met. Rates are 0 when nothing was sent, never an error.
func Aggregate(c outbox.Counts) Metrics {
	sent := c.SentTotal()
	m := Metrics{
		Drafted:  c.Drafted,
		Sent:     sent,
		Replies:  c.Replies,
		Meetings: c.Meetings,
	}
	if sent > 0 {
		m.ReplyRate = float64(c.Replies) / float64(sent)
		m.MeetingRate = float64(c.Meetings) / float64(sent)
	}
	return m
}
