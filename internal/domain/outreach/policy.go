package outreach

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/scoring"
)

// Plan is the selected outreach targets for one client run, with a skip
// reason recorded for every contact that was considered and excluded.
type Plan struct {
	Slug        string
	GeneratedAt time.Time
	Targets     []scoring.Scored
	Reasons     map[string]string
	DailyCap    int
}

var quietHoursPattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// BuildPlan selects contacts under the client's outreach policy:
// contacts without email are excluded, allowlist/blocklist entries match
// either the full email or its domain, per-domain caps bound how many
// contacts share a domain, and the quiet-hours window (which may wrap
// midnight) empties the selection entirely. Survivors keep score order and
// are truncated by the daily cap and the optional limit.
func BuildPlan(c client.Client, ranked []scoring.Scored, limit int, now time.Time) Plan {
	plan := Plan{
		Slug:        c.Slug,
		GeneratedAt: now,
		Reasons:     make(map[string]string),
		DailyCap:    c.Outreach.DailyCap,
	}

	if inQuietHours(now, c.Outreach.QuietHours) {
		for _, s := range ranked {
			plan.Reasons[s.Contact.ID] = "quiet-hours"
		}
		return plan
	}

	allow := normalizeSet(c.Outreach.Allowlist)
	block := normalizeSet(c.Outreach.Blocklist)

	var pool []scoring.Scored
	for _, s := range ranked {
		if s.Contact.Email == "" {
			plan.Reasons[s.Contact.ID] = "no-email"
			continue
		}
		email := strings.ToLower(strings.TrimSpace(s.Contact.Email))
		domain := s.Contact.Domain()
		if len(block) > 0 && (block[email] || block[domain]) {
			plan.Reasons[s.Contact.ID] = "blocklisted"
			continue
		}
		if len(allow) > 0 && !allow[email] && !allow[domain] {
			plan.Reasons[s.Contact.ID] = "not-allowlisted"
			continue
		}
		pool = append(pool, s)
	}

	takenByDomain := make(map[string]int)
	var capped []scoring.Scored
	for _, s := range pool {
		domain := s.Contact.Domain()
		domainCap, ok := c.Outreach.DomainCaps[domain]
		if !ok {
			capped = append(capped, s)
			continue
		}
		if takenByDomain[domain] < domainCap {
			capped = append(capped, s)
			takenByDomain[domain]++
		} else {
			plan.Reasons[s.Contact.ID] = "domain-cap-reached:" + domain
		}
	}

	take := len(capped)
	reason := ""
	if limit > 0 && limit < take {
		take = limit
		reason = "limit-reached"
	}
	if plan.DailyCap > 0 && plan.DailyCap < take {
		take = plan.DailyCap
		reason = fmt.Sprintf("daily-cap-reached:%d", plan.DailyCap)
	}
	for _, s := range capped[take:] {
		plan.Reasons[s.Contact.ID] = reason
	}
	plan.Targets = capped[:take]
	return plan
}

// inQuietHours reports whether now falls inside a "HH:MM-HH:MM" window.
// Malformed windows are treated as no window.
func inQuietHours(now time.Time, window string) bool {
	m := quietHoursPattern.FindStringSubmatch(strings.TrimSpace(window))
	if m == nil {
		return false
	}
	sh, _ := strconv.Atoi(m[1])
	sm, _ := strconv.Atoi(m[2])
	eh, _ := strconv.Atoi(m[3])
	em, _ := strconv.Atoi(m[4])
	start := sh*60 + sm
	end := eh*60 + em
	cur := now.Hour()*60 + now.Minute()
	if start <= end {
		return start <= cur && cur < end
	}
	// window wraps midnight
	return cur >= start || cur < end
}

func normalizeSet(entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = true
		}
	}
	return set
}
