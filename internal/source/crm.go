package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/brademus/ada-lab/internal/domain/contact"
)

// FetchFunc is the capability an external CRM client provides: fetch up
// to limit contacts for the client whose credentials it was built with.
type FetchFunc func(ctx context.Context, limit int) ([]contact.Contact, error)

// CRMSource adapts an external CRM fetch capability to the Source
// contract. The CRM client itself (auth, pagination, retries) lives
// outside this module.
type CRMSource struct {
	fetch FetchFunc
}

// NewCRMSource wraps an external fetch capability.
func NewCRMSource(fetch FetchFunc) *CRMSource {
	return &CRMSource{fetch: fetch}
}

// Fetch delegates to the external capability, normalizing failures to
// ErrSourceUnavailable and enforcing the limit cap.
func (s *CRMSource) Fetch(ctx context.Context, limit int) ([]contact.Contact, error) {
	if s.fetch == nil {
		return nil, fmt.Errorf("%w: no CRM capability configured", contact.ErrSourceUnavailable)
	}
	contacts, err := s.fetch(ctx, limit)
	if err != nil {
		if errors.Is(err, contact.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", contact.ErrSourceUnavailable, err)
	}
	if limit > 0 && len(contacts) > limit {
		contacts = contacts[:limit]
	}
	return contacts, nil
}
