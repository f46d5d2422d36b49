package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/repository/base"
)

type ClassRepository struct {
	base.Repository
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, class *model.Class) error {
	query := `
		INSERT INTO classes (id, name, level)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}

	err := r.QueryRow(ctx, query, class.ID, class.Name, class.Level).
		Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}

	return nil
}

// GetByID returns a class by id, nil when it does not exist.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	query := `
		SELECT id, name, level, created_at, updated_at
		FROM classes
		WHERE id = $1
	`

	var class model.Class
	err := r.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Level,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class by id: %w", err)
	}

	return &class, nil
}

// GetByName returns a class by its exact name, nil when it does not exist.
func (r *ClassRepository) GetByName(ctx context.Context, name string) (*model.Class, error) {
	query := `
		SELECT id, name, level, created_at, updated_at
		FROM classes
		WHERE name = $1
	`

	var class model.Class
	err := r.QueryRow(ctx, query, name).Scan(
		&class.ID,
		&class.Name,
		&class.Level,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class by name: %w", err)
	}

	return &class, nil
}

// GetAll returns every class ordered by name.
func (r *ClassRepository) GetAll(ctx context.Context) ([]*model.Class, error) {
	query := `
		SELECT id, name, level, created_at, updated_at
		FROM classes
		ORDER BY name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all classes: %w", err)
	}
	defer rows.Close()

	var classes []*model.Class
	for rows.Next() {
		var class model.Class
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Level,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, &class)
	}

	return classes, nil
}

// Update updates name and level.
func (r *ClassRepository) Update(ctx context.Context, class *model.Class) error {
	query := `
		UPDATE classes
		SET name = $1, level = $2, updated_at = now()
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, class.Name, class.Level, class.ID)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("class not found")
	}

	return nil
}

// Delete removes a class; slots and sessions are removed by cascade.
func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("class not found")
	}

	return nil
}
