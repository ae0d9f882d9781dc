package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/brademus/ada-lab/internal/domain/outbox"
	"github.com/brademus/ada-lab/internal/repository"
)

// MessageRepository implements repository.MessageRepository for SQLite
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// PutDraft inserts a draft, leaving any existing non-failed message with
// the same id untouched. A failed message is re-drafted in place. Reports
// whether a draft row was written.
func (r *MessageRepository) PutDraft(ctx context.Context, msg *outbox.Message) (bool, error) {
	query := `
		INSERT INTO messages (
			id, contact_id, template_id, channel, subject, body,
			state, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			body = excluded.body,
			state = 'drafted',
			created_at = excluded.created_at,
			approved_at = NULL,
			sent_at = NULL,
			error = NULL
		WHERE messages.state = 'failed'
	`

	result, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.ContactID,
		msg.TemplateID,
		msg.Channel,
		msg.Subject,
		msg.Body,
		outbox.StateDrafted,
		msg.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to put draft: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Get retrieves a message by ID
func (r *MessageRepository) Get(ctx context.Context, id string) (*outbox.Message, error) {
	query := `
		SELECT id, contact_id, template_id, channel, subject, body,
		       state, created_at, approved_at, sent_at, error
		FROM messages
		WHERE id = ?
	`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// Transition conditionally moves a message to a new state in a single
// UPDATE so a competing writer can never leave a half-applied transition.
func (r *MessageRepository) Transition(ctx context.Context, id string, from []outbox.MessageState, to outbox.MessageState, at time.Time) error {
	if len(from) == 0 {
		return outbox.ErrInvalidTransition
	}

	set := "state = ?"
	args := []interface{}{to}
	switch to {
	case outbox.StateApproved:
		set += ", approved_at = ?"
		args = append(args, at)
	case outbox.StateSent:
		set += ", sent_at = ?"
		args = append(args, at)
	}
	args = append(args, id)

	placeholders := make([]string, len(from))
	for i, state := range from {
		placeholders[i] = "?"
		args = append(args, state)
	}
	query := fmt.Sprintf(
		"UPDATE messages SET %s WHERE id = ? AND state IN (%s)",
		set, strings.Join(placeholders, ","),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM messages WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check message existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return outbox.ErrInvalidTransition
	}

	return nil
}

// Fail terminates a drafted message with a reason. Failed is reachable
// only from drafted.
func (r *MessageRepository) Fail(ctx context.Context, id, reason string) error {
	query := `UPDATE messages SET state = ?, error = ? WHERE id = ? AND state = ?`

	result, err := r.db.ExecContext(ctx, query, outbox.StateFailed, reason, id, outbox.StateDrafted)
	if err != nil {
		return fmt.Errorf("failed to mark message failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM messages WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check message existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return outbox.ErrInvalidTransition
	}

	return nil
}

// List returns messages matching the given options in creation order
func (r *MessageRepository) List(ctx context.Context, opts outbox.ListMessagesOptions) ([]outbox.Message, error) {
	query := `
		SELECT id, contact_id, template_id, channel, subject, body,
		       state, created_at, approved_at, sent_at, error
		FROM messages
	`

	var args []interface{}
	var conditions []string

	if len(opts.States) > 0 {
		placeholders := make([]string, len(opts.States))
		for i, state := range opts.States {
			placeholders[i] = "?"
			args = append(args, state)
		}
		conditions = append(conditions, fmt.Sprintf("state IN (%s)", strings.Join(placeholders, ",")))
	}
	if opts.ContactID != "" {
		conditions = append(conditions, "contact_id = ?")
		args = append(args, opts.ContactID)
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
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []outbox.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, *msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return msgs, nil
}

// CountByState returns a snapshot of message counts per state
func (r *MessageRepository) CountByState(ctx context.Context) (map[outbox.MessageState]int, error) {
	query := `SELECT state, COUNT(*) FROM messages GROUP BY state`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	defer rows.Close()

	counts := make(map[outbox.MessageState]int)
	for rows.Next() {
		var state outbox.MessageState
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts[state] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (*outbox.Message, error) {
	var msg outbox.Message
	var approvedAt, sentAt sql.NullTime
	var errText sql.NullString
	err := row.Scan(
		&msg.ID,
		&msg.ContactID,
		&msg.TemplateID,
		&msg.Channel,
		&msg.Subject,
		&msg.Body,
		&msg.State,
		&msg.CreatedAt,
		&approvedAt,
		&sentAt,
		&errText,
	)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		msg.ApprovedAt = &approvedAt.Time
	}
	if sentAt.Valid {
		msg.SentAt = &sentAt.Time
	}
	if errText.Valid {
		msg.Error = errText.String
	}
	return &msg, nil
}
