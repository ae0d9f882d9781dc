package variants

import "time"

// Stats accumulates outcomes for one template variant within a variant set.
type Stats struct {
	VariantSet  string    `json:"variant_set"`
	VariantID   string    `json:"variant_id"`
	Sent        int       `json:"sent"`
	Opens       int       `json:"opens"`
	Replies     int       `json:"replies"`
	Meetings    int       `json:"meetings"`
	LastUpdated time.Time `json:"last_updated"`
}

// Conversion is the learning signal: (replies+meetings)/sent, 0 when the
// variant has never been sent.
func (s Stats) Conversion() float64 {
	if s.Sent == 0 {
		return 0
	}
	return float64(s.Replies+s.Meetings) / float64(s.Sent)
}

// DefaultSet is the variant set used when a client has no explicit one.
const DefaultSet = "baseline"

// Field names accepted by StatsRepository.Increment.
const (
	FieldSent     = "sent"
	FieldOpens    = "opens"
	FieldReplies  = "replies"
	FieldMeetings = "meetings"
)
