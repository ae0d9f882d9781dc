package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/contact"
)

// Score is a bounded fit value in [0,1] plus the attribute snapshot it was
// computed from. Deterministic given identical inputs.
type Score struct {
	Value    float64           `json:"value"`
	Snapshot map[string]string `json:"snapshot"`
}

// Scored pairs a contact with its fit score for the duration of one run.
type Scored struct {
	Contact contact.Contact
	Score   Score
}

// Scorer computes fit scores from contact attributes. Recency is measured
// against a fixed reference time so a Scorer is a pure function of its
// inputs once constructed.
type Scorer struct {
	ref time.Time
}

// NewScorer creates a scorer anchored at the given reference time.
func NewScorer(ref time.Time) *Scorer {
	return &Scorer{ref: ref}
}

// Weight components. Email and owner presence are worth 0.2 each, a
// qualified lifecycle stage 0.2, and recency up to 0.4.
const (
	emailWeight     = 0.2
	ownerWeight     = 0.2
	lifecycleWeight = 0.2
	recencyMax      = 0.4
)

var qualifiedLifecycles = []string{
	"opportunity",
	"customer",
	"marketingqualifiedlead",
	"salesqualifiedlead",
}

// Score assigns a fit value to a contact. Total over all inputs: missing
// optional fields degrade the score rather than failing.
func (s *Scorer) Score(c contact.Contact) Score {
	value := 0.0
	if c.Email != "" {
		value += emailWeight
	}
	if c.OwnerID != "" {
		value += ownerWeight
	}
	lifecycle := strings.ToLower(c.Lifecycle)
	for _, q := range qualifiedLifecycles {
		if strings.Contains(lifecycle, q) {
			value += lifecycleWeight
			break
		}
	}
	value += s.recency(c.LastModified)

	if value > 1.0 {
		value = 1.0
	}

	snapshot := map[string]string{
		"email":     c.Email,
		"owner_id":  c.OwnerID,
		"lifecycle": c.Lifecycle,
	}
	if c.LastModified != nil {
		snapshot["last_modified"] = c.LastModified.UTC().Format(time.RFC3339)
	}
	return Score{Value: value, Snapshot: snapshot}
}

// recency maps the age of the last CRM touch to a 0..recencyMax band.
func (s *Scorer) recency(lastModified *time.Time) float64 {
	if lastModified == nil {
		return 0
	}
	age := s.ref.Sub(*lastModified)
	switch {
	case age < 0:
		return recencyMax
	case age <= 30*24*time.Hour:
		return recencyMax
	case age <= 90*24*time.Hour:
		return 0.3
	case age <= 180*24*time.Hour:
		return 0.15
	default:
		return 0
	}
}

// Rank scores the given contacts and sorts them by score descending.
// Ties keep ingestion order, which downstream draft ordering depends on.
func (s *Scorer) Rank(contacts []contact.Contact) []Scored {
	scored := make([]Scored, len(contacts))
	for i, c := range contacts {
		scored[i] = Scored{Contact: c, Score: s.Score(c)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Value > scored[j].Score.Value
	})
	return scored
}
