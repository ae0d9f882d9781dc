package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brademus/ada-lab/internal/domain/client"
)

// clientSection mirrors one roster entry. Section keys like
// "client_acme_corp" become slug "acme_corp".
type clientSection struct {
	Name        string                `yaml:"name"`
	Credentials map[string]string     `yaml:"credentials"`
	Overrides   client.OutreachConfig `yaml:"overrides"`
}

// LoadClients reads the YAML client roster. Each top-level key is one
// client section; the roster must not be empty. Returned clients are
// normalized and sorted by slug so batch order is stable.
func LoadClients(path string) ([]client.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clients file: %w", err)
	}

	var raw map[string]clientSection
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse clients file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no clients loaded from %s", path)
	}

	clients := make([]client.Client, 0, len(raw))
	for key, section := range raw {
		slug := strings.TrimPrefix(key, "client_")
		c := client.Client{
			Slug:        slug,
			Name:        section.Name,
			Credentials: section.Credentials,
			Outreach:    section.Overrides,
		}
		c.Normalize()
		if c.Slug == "" {
			return nil, fmt.Errorf("invalid client section key %q", key)
		}
		clients = append(clients, c)
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Slug < clients[j].Slug
	})
	return clients, nil
}

// GetClient finds a client by slug, case-insensitively.
func GetClient(clients []client.Client, slug string) (client.Client, error) {
	target := client.Slugify(slug)
	for _, c := range clients {
		if c.Slug == target {
			return c, nil
		}
	}
	return client.Client{}, fmt.Errorf("client %q not found", slug)
}
