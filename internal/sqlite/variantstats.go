package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brademus/ada-lab/internal/domain/variants"
)

// VariantStatsRepository implements repository.VariantStatsRepository for SQLite
type VariantStatsRepository struct {
	db *DB
}

// NewVariantStatsRepository creates a new VariantStatsRepository
func NewVariantStatsRepository(db *DB) *VariantStatsRepository {
	return &VariantStatsRepository{db: db}
}

var statFields = map[string]bool{
	variants.FieldSent:     true,
	variants.FieldOpens:    true,
	variants.FieldReplies:  true,
	variants.FieldMeetings: true,
}

// Increment bumps one counter for a variant, creating the row on first use
func (r *VariantStatsRepository) Increment(ctx context.Context, variantSet, variantID, field string) error {
	if !statFields[field] {
		return fmt.Errorf("unknown variant stat field: %s", field)
	}

	now := time.Now().UTC()
	ensure := `
		INSERT OR IGNORE INTO variant_stats (variant_set, variant_id, last_updated)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, ensure, variantSet, variantID, now); err != nil {
		return fmt.Errorf("failed to ensure variant stats row: %w", err)
	}

	// field is validated against statFields above
	update := fmt.Sprintf(
		"UPDATE variant_stats SET %s = %s + 1, last_updated = ? WHERE variant_set = ? AND variant_id = ?",
		field, field,
	)
	if _, err := r.db.ExecContext(ctx, update, now, variantSet, variantID); err != nil {
		return fmt.Errorf("failed to increment variant stats: %w", err)
	}

	return nil
}

// List returns stats for a variant set in stable order
func (r *VariantStatsRepository) List(ctx context.Context, variantSet string) ([]variants.Stats, error) {
	query := `
		SELECT variant_set, variant_id, sent, opens, replies, meetings, last_updated
		FROM variant_stats
		WHERE variant_set = ?
		ORDER BY variant_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, variantSet)
	if err != nil {
		return nil, fmt.Errorf("failed to list variant stats: %w", err)
	}
	defer rows.Close()

	var stats []variants.Stats
	for rows.Next() {
		var s variants.Stats
		var updated sql.NullTime
		if err := rows.Scan(&s.VariantSet, &s.VariantID, &s.Sent, &s.Opens, &s.Replies, &s.Meetings, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan variant stats: %w", err)
		}
		if updated.Valid {
			s.LastUpdated = updated.Time
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant stats rows: %w", err)
	}

	return stats, nil
}
