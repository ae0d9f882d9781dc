package client

import (
	"regexp"
	"strings"
)

// Client is one consultancy tenant with isolated credentials, data,
// and output artifacts. Loaded once per batch run and immutable after that.
type Client struct {
	Slug        string            `yaml:"slug"`
	Name        string            `yaml:"name"`
	Credentials map[string]string `yaml:"credentials"`
	Outreach    OutreachConfig    `yaml:"outreach"`
}

// OutreachConfig carries per-client outreach policy knobs.
type OutreachConfig struct {
	Channel    string         `yaml:"channel"`
	DailyCap   int            `yaml:"daily_cap"`
	QuietHours string         `yaml:"quiet_hours"`
	BrandVoice string         `yaml:"brand_voice"`
	Allowlist  []string       `yaml:"allowlist"`
	Blocklist  []string       `yaml:"blocklist"`
	DomainCaps map[string]int `yaml:"domain_caps"`
	Epsilon    float64        `yaml:"epsilon"`
}

const (
	DefaultChannel  = "email"
	DefaultDailyCap = 25
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a name into a filesystem-safe slug: lowercase,
// underscores, no leading or trailing underscores.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugNonAlnum.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// Normalize fills defaults for optional outreach fields.
func (c *Client) Normalize() {
	c.Slug = Slugify(c.Slug)
	if c.Name == "" {
		c.Name = titleFromSlug(c.Slug)
	}
	if c.Outreach.Channel == "" {
		c.Outreach.Channel = DefaultChannel
	}
	if c.Outreach.DailyCap <= 0 {
		c.Outreach.DailyCap = DefaultDailyCap
	}
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
