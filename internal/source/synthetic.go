package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/contact"
)

// SyntheticSource generates a deterministic contact set for demos and
// dry runs. The same slug and base time always yield the same contacts.
type SyntheticSource struct {
	Slug string
	Base time.Time
	Size int
}

// NewSyntheticSource creates a generator for one client. base anchors the
// last-modified timestamps; size is the pool size before limit applies.
func NewSyntheticSource(slug string, base time.Time, size int) *SyntheticSource {
	if size <= 0 {
		size = 40
	}
	return &SyntheticSource{Slug: slug, Base: base, Size: size}
}

var (
	firstNames   = []string{"Alice", "Bob", "Carol", "Dan", "Erin", "Frank", "Grace", "Hugo"}
	lastNames    = []string{"Nguyen", "Smith", "Okafor", "Garcia", "Ito", "Muller", "Patel", "Brown"}
	companies    = []string{"Northwind", "Globex", "Initech", "Umbrella", "Stark Industries", "Wayne Enterprises"}
	companySizes = []string{"10-50", "51-200", "201-500", "501-1000", "enterprise"}
	lifecycles   = []string{"lead", "marketingqualifiedlead", "salesqualifiedlead", "opportunity", "customer", ""}
)

// Fetch generates up to limit contacts. Attributes cycle through fixed
// pools offset by a slug hash, so different clients see different but
// stable data.
func (s *SyntheticSource) Fetch(ctx context.Context, limit int) ([]contact.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := s.Size
	if limit > 0 && limit < n {
		n = limit
	}

	h := fnv.New32a()
	h.Write([]byte(s.Slug))
	offset := int(h.Sum32() % 1000)

	contacts := make([]contact.Contact, 0, n)
	for i := 0; i < n; i++ {
		k := offset + i
		first := firstNames[k%len(firstNames)]
		last := lastNames[k%len(lastNames)]
		company := companies[k%len(companies)]
		modified := s.Base.AddDate(0, 0, -(k % 365))

		c := contact.Contact{
			ID:           fmt.Sprintf("%s-%04d", s.Slug, i+1),
			FirstName:    first,
			LastName:     last,
			Company:      company,
			CompanySize:  companySizes[k%len(companySizes)],
			Lifecycle:    lifecycles[k%len(lifecycles)],
			LastModified: &modified,
		}
		// every fifth contact is missing an email, every seventh an owner
		if k%5 != 0 {
			domain := strings.ReplaceAll(strings.ToLower(company), " ", "")
			c.Email = fmt.Sprintf("%s.%s@%s.example.com",
				strings.ToLower(first), strings.ToLower(last), domain)
		}
		if k%7 != 0 {
			c.OwnerID = fmt.Sprintf("owner-%d", k%4+1)
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}
