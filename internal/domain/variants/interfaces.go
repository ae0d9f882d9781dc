package variants

import "context"

// StatsRepository persists variant performance counters in the client store.
type StatsRepository interface {
	Increment(ctx context.Context, variantSet, variantID, field string) error
	List(ctx context.Context, variantSet string) ([]Stats, error)
}
