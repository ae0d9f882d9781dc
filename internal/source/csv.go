package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/contact"
)

// CSVSource reads contacts from a CSV export. The first row is a header;
// recognized columns are id, email, first_name, last_name, company,
// company_size, owner_id, lifecycle, last_modified (RFC 3339). Unknown
// columns are ignored, missing ones leave the field empty.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSV-backed contact source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Fetch reads up to limit contacts in file order.
func (s *CSVSource) Fetch(ctx context.Context, limit int) ([]contact.Contact, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contact.ErrSourceUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contact.ErrSourceUnavailable, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var contacts []contact.Contact
	for limit <= 0 || len(contacts) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contact.ErrSourceUnavailable, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		c := contact.Contact{
			ID:          field("id"),
			Email:       field("email"),
			FirstName:   field("first_name"),
			LastName:    field("last_name"),
			Company:     field("company"),
			CompanySize: field("company_size"),
			OwnerID:     field("owner_id"),
			Lifecycle:   field("lifecycle"),
		}
		if raw := field("last_modified"); raw != "" {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				c.LastModified = &ts
			}
		}
		if c.ID == "" {
			// rows without an id cannot be referenced by messages
			continue
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}
