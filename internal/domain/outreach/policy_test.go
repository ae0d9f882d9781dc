package outreach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brademus/ada-lab/internal/domain/client"
	"github.com/brademus/ada-lab/internal/domain/contact"
	"github.com/brademus/ada-lab/internal/domain/scoring"
)

var noon = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func scored(id, email string) scoring.Scored {
	return scoring.Scored{
		Contact: contact.Contact{ID: id, Email: email},
		Score:   scoring.Score{Value: 0.5},
	}
}

func testClient(cfg client.OutreachConfig) client.Client {
	c := client.Client{Slug: "acme", Name: "Acme", Outreach: cfg}
	c.Normalize()
	return c
}

func TestBuildPlanSelectsInScoreOrder(t *testing.T) {
	c := testClient(client.OutreachConfig{})
	ranked := []scoring.Scored{scored("c1", "a@x.com"), scored("c2", "b@y.com")}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 2)
	require.Equal(t, "c1", plan.Targets[0].Contact.ID)
	require.Empty(t, plan.Reasons)
}

func TestBuildPlanSkipsMissingEmail(t *testing.T) {
	c := testClient(client.OutreachConfig{})
	ranked := []scoring.Scored{scored("c1", ""), scored("c2", "b@y.com")}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "no-email", plan.Reasons["c1"])
}

func TestBuildPlanBlocklist(t *testing.T) {
	c := testClient(client.OutreachConfig{
		Blocklist: []string{"b@y.com", "blocked.com"},
	})
	ranked := []scoring.Scored{
		scored("c1", "a@x.com"),
		scored("c2", "b@y.com"),
		scored("c3", "any@blocked.com"),
	}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "blocklisted", plan.Reasons["c2"], "exact email match")
	require.Equal(t, "blocklisted", plan.Reasons["c3"], "domain match")
}

func TestBuildPlanAllowlist(t *testing.T) {
	c := testClient(client.OutreachConfig{
		Allowlist: []string{"x.com"},
	})
	ranked := []scoring.Scored{scored("c1", "a@x.com"), scored("c2", "b@y.com")}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "c1", plan.Targets[0].Contact.ID)
	require.Equal(t, "not-allowlisted", plan.Reasons["c2"])
}

func TestBuildPlanDomainCap(t *testing.T) {
	c := testClient(client.OutreachConfig{
		DomainCaps: map[string]int{"x.com": 1},
	})
	ranked := []scoring.Scored{
		scored("c1", "a@x.com"),
		scored("c2", "b@x.com"),
		scored("c3", "c@y.com"),
	}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 2)
	require.Equal(t, "domain-cap-reached:x.com", plan.Reasons["c2"])
}

func TestBuildPlanDailyCap(t *testing.T) {
	c := testClient(client.OutreachConfig{DailyCap: 1})
	ranked := []scoring.Scored{scored("c1", "a@x.com"), scored("c2", "b@y.com")}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "c1", plan.Targets[0].Contact.ID)
	require.Contains(t, plan.Reasons["c2"], "daily-cap-reached")
}

// TestBuildPlanLimitTruncation verifies a limit cut is not misreported as
// the daily cap
func TestBuildPlanLimitTruncation(t *testing.T) {
	c := testClient(client.OutreachConfig{})
	ranked := []scoring.Scored{scored("c1", "a@x.com"), scored("c2", "b@y.com")}

	plan := BuildPlan(c, ranked, 1, noon)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "limit-reached", plan.Reasons["c2"])
}

func TestBuildPlanQuietHoursEmptiesSelection(t *testing.T) {
	c := testClient(client.OutreachConfig{QuietHours: "11:00-13:00"})
	ranked := []scoring.Scored{scored("c1", "a@x.com")}

	plan := BuildPlan(c, ranked, 0, noon)
	require.Empty(t, plan.Targets)
	require.Equal(t, "quiet-hours", plan.Reasons["c1"])
}

func TestInQuietHours(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 1, h, m, 0, 0, time.UTC)
	}

	require.True(t, inQuietHours(at(22, 30), "22:00-06:00"), "wrapping window, evening side")
	require.True(t, inQuietHours(at(5, 59), "22:00-06:00"), "wrapping window, morning side")
	require.False(t, inQuietHours(at(12, 0), "22:00-06:00"))

	require.True(t, inQuietHours(at(9, 0), "09:00-17:00"), "start inclusive")
	require.False(t, inQuietHours(at(17, 0), "09:00-17:00"), "end exclusive")

	require.False(t, inQuietHours(at(12, 0), ""), "no window")
	require.False(t, inQuietHours(at(12, 0), "not-a-window"), "malformed window ignored")
}
