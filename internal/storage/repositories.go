package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// DB is the database access interface the repositories depend on.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// EmailRepository handles CRUD operations on processed emails.
type EmailRepository struct {
	db DB
}

// NewEmailRepository creates an email repository.
func NewEmailRepository(db DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// Create stores a new email record, assigning an id when absent.
func (r *EmailRepository) Create(ctx context.Context, email *EmailRecord) error {
	if email.ID == uuid.Nil {
		email.ID = uuid.New()
	}
	if email.ReceivedAt.IsZero() {
		email.ReceivedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO emails (id, student_name, subject, body, confidence, status, suggested_reply, article_id, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		email.ID.String(), email.StudentName, email.Subject, email.Body,
		email.Confidence, string(email.Status), email.SuggestedReply,
		email.ArticleID, email.ReceivedAt,
	)
	return err
}

// GetByID retrieves one email record.
func (r *EmailRepository) GetByID(ctx context.Context, id uuid.UUID) (*EmailRecord, error) {
	query := `
		SELECT id, student_name, subject, body, confidence, status, suggested_reply, article_id, received_at
		FROM emails WHERE id = $1
	`
	return scanEmail(r.db.QueryRowContext(ctx, query, id.String()))
}

// List returns emails ordered most recent first. A non-empty status
// filters the result.
func (r *EmailRepository) List(ctx context.Context, status EmailStatus) ([]*EmailRecord, error) {
	query := `
		SELECT id, student_name, subject, body, confidence, status, suggested_reply, article_id, received_at
		FROM emails
	`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY received_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*EmailRecord
	for rows.Next() {
		email, err := scanEmailRows(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// Update applies an advisor's edits to a stored email.
func (r *EmailRepository) Update(ctx context.Context, id uuid.UUID, update EmailUpdate) (*EmailRecord, error) {
	email, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Status != nil {
		email.Status = *update.Status
	}
	if update.SuggestedReply != nil {
		email.SuggestedReply = *update.SuggestedReply
	}

	query := `UPDATE emails SET status = $1, suggested_reply = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, string(email.Status), email.SuggestedReply, id.String()); err != nil {
		return nil, err
	}
	return email, nil
}

// Delete removes a stored email.
func (r *EmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM emails WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Metrics computes the dashboard aggregates. The day boundary is midnight
// UTC of the supplied instant.
func (r *EmailRepository) Metrics(ctx context.Context, now time.Time) (*Metrics, error) {
	startOfDay := now.UTC().Truncate(24 * time.Hour)

	m := &Metrics{}
	query := `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN received_at >= $1 THEN 1 END),
			COUNT(CASE WHEN status = $2 THEN 1 END),
			COUNT(CASE WHEN status = $3 THEN 1 END),
			COALESCE(AVG(confidence), 0),
			COALESCE(AVG(CASE WHEN status = $2 THEN confidence END), 0)
		FROM emails
	`
	err := r.db.QueryRowContext(ctx, query, startOfDay, string(StatusAuto), string(StatusReview)).Scan(
		&m.EmailsTotal, &m.EmailsToday, &m.AutoCount, &m.ReviewCount,
		&m.AvgConfidence, &m.AvgAutoConfidence,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func scanEmail(row *sql.Row) (*EmailRecord, error) {
	email := &EmailRecord{}
	var id, status string
	err := row.Scan(&id, &email.StudentName, &email.Subject, &email.Body,
		&email.Confidence, &status, &email.SuggestedReply, &email.ArticleID, &email.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	email.ID, err = uuid.Parse(id)
	email.Status = EmailStatus(status)
	return email, err
}

func scanEmailRows(rows *sql.Rows) (*EmailRecord, error) {
	email := &EmailRecord{}
	var id, status string
	err := rows.Scan(&id, &email.StudentName, &email.Subject, &email.Body,
		&email.Confidence, &status, &email.SuggestedReply, &email.ArticleID, &email.ReceivedAt)
	if err != nil {
		return nil, err
	}
	email.ID, err = uuid.Parse(id)
	email.Status = EmailStatus(status)
	return email, err
}
