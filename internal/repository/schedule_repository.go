package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/repository/base"
)

type ScheduleRepository struct {
	base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a new schedule slot.
func (r *ScheduleRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (id, class_id, day_of_week, start_time, duration_minutes, subject, frequency, start_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	err := r.QueryRow(
		ctx, query,
		slot.ID,
		slot.ClassID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.DurationMinutes,
		slot.Subject,
		slot.Frequency,
		slot.StartWeek,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create schedule slot: %w", err)
	}

	return nil
}

// GetByID returns a slot by id, nil when it does not exist.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	query := `
		SELECT id, class_id, day_of_week, start_time, duration_minutes, subject, frequency, start_week, created_at, updated_at
		FROM schedule_slots
		WHERE id = $1
	`

	var slot model.ScheduleSlot
	err := r.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.ClassID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.DurationMinutes,
		&slot.Subject,
		&slot.Frequency,
		&slot.StartWeek,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule slot by id: %w", err)
	}

	return &slot, nil
}

// GetByClass returns the recurring slots of a class ordered by weekday
// and start time.
func (r *ScheduleRepository) GetByClass(ctx context.Context, classID uuid.UUID) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT id, class_id, day_of_week, start_time, duration_minutes, subject, frequency, start_week, created_at, updated_at
		FROM schedule_slots
		WHERE class_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("get schedule slots by class: %w", err)
	}
	defer rows.Close()

	var slots []*model.ScheduleSlot
	for rows.Next() {
		var slot model.ScheduleSlot
		err := rows.Scan(
			&slot.ID,
			&slot.ClassID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.DurationMinutes,
			&slot.Subject,
			&slot.Frequency,
			&slot.StartWeek,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// Update rewrites every mutable field of a slot.
func (r *ScheduleRepository) Update(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET day_of_week = $1, start_time = $2, duration_minutes = $3, subject = $4, frequency = $5, start_week = $6, updated_at = now()
		WHERE id = $7
	`

	affected, err := r.ExecAffected(
		ctx, query,
		slot.DayOfWeek,
		slot.StartTime,
		slot.DurationMinutes,
		slot.Subject,
		slot.Frequency,
		slot.StartWeek,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update schedule slot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule slot not found")
	}

	return nil
}

// Delete removes a slot.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM schedule_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule slot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule slot not found")
	}

	return nil
}
