package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity
func (r *ActivityRepository) Log(ctx context.Context, act *outbox.Activity) error {
	createdAt := act.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activities (id, message_id, kind, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, act.ID, act.MessageID, act.Kind, createdAt)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	act.CreatedAt = createdAt
	return nil
}

// List returns activities matching the given filters, oldest first
func (r *ActivityRepository) List(ctx context.Context, opts outbox.ListActivitiesOptions) ([]outbox.Activity, error) {
	query := `SELECT id, message_id, kind, created_at FROM activities`

	var args []interface{}
	var conditions []string

	if opts.MessageID != "" {
		conditions = append(conditions, "message_id = ?")
		args = append(args, opts.MessageID)
	}
	if opts.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *opts.Kind)
	}
	if opts.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *opts.Since)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var acts []outbox.Activity
	for rows.Next() {
		var act outbox.Activity
		if err := rows.Scan(&act.ID, &act.MessageID, &act.Kind, &act.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		acts = append(acts, act)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return acts, nil
}

// CountByKind returns activity counts grouped by kind
func (r *ActivityRepository) CountByKind(ctx context.Context) (map[outbox.ActivityKind]int, error) {
	query := `SELECT kind, COUNT(*) FROM activities GROUP BY kind`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	defer rows.Close()

	counts := make(map[outbox.ActivityKind]int)
	for rows.Next() {
		var kind outbox.ActivityKind
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		counts[kind] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}
