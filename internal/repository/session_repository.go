package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/repository/base"
)

type SessionRepository struct {
	base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a session from form data. New sessions start planned.
func (r *SessionRepository) Create(ctx context.Context, form *model.SessionForm) (*model.Session, error) {
	query := `
		INSERT INTO sessions (id, class_id, subject, date, start_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	session := &model.Session{
		ID:              uuid.New(),
		ClassID:         form.ClassID,
		Subject:         form.Subject,
		Date:            form.Date,
		StartTime:       form.StartTime,
		DurationMinutes: form.DurationMinutes,
		Status:          model.SessionStatusPlanned,
	}

	err := r.QueryRow(
		ctx, query,
		session.ID,
		session.ClassID,
		session.Subject,
		session.Date,
		session.StartTime,
		session.DurationMinutes,
		session.Status,
	).Scan(&session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

// GetByClass returns the sessions of a class in chronological order.
func (r *SessionRepository) GetByClass(ctx context.Context, classID uuid.UUID) ([]*model.Session, error) {
	query := `
		SELECT id, class_id, subject, date, start_time, duration_minutes, status, created_at
		FROM sessions
		WHERE class_id = $1
		ORDER BY date, start_time
	`

	rows, err := r.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by class: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		var session model.Session
		err := rows.Scan(
			&session.ID,
			&session.ClassID,
			&session.Subject,
			&session.Date,
			&session.StartTime,
			&session.DurationMinutes,
			&session.Status,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

// CountByClass returns the number of sessions of a class.
func (r *SessionRepository) CountByClass(ctx context.Context, classID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRow(ctx, `SELECT count(*) FROM sessions WHERE class_id = $1`, classID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions by class: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a session between planned/done/cancelled.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE sessions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// DeleteByClass removes every session of a class. Used before
// regeneration; destructive and not wrapped in a transaction with the
// subsequent creates.
func (r *SessionRepository) DeleteByClass(ctx context.Context, classID uuid.UUID) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE class_id = $1`, classID)
	if err != nil {
		return fmt.Errorf("delete sessions by class: %w", err)
	}
	return nil
}
