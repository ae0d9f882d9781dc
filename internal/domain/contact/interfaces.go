package contact

import "context"

// Source yields contacts for one client from a CRM, a CSV export, or a
// synthetic generator. Implementations must apply limit as a hard cap and
// preserve source order. Zero contacts is not an error.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]Contact, error)
}
