package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/repository/base"
)

// SettingsRepository stores the single active school-year configuration
// row (zone + year bounds).
type SettingsRepository struct {
	base.Repository
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(pool)}
}

// Get returns the active settings, nil when nothing is configured yet.
func (r *SettingsRepository) Get(ctx context.Context) (*model.SchoolYearSettings, error) {
	query := `
		SELECT zone, school_year_start, school_year_end, updated_at
		FROM school_year_settings
		WHERE id = 1
	`

	var settings model.SchoolYearSettings
	err := r.QueryRow(ctx, query).Scan(
		&settings.Zone,
		&settings.SchoolYearStart,
		&settings.SchoolYearEnd,
		&settings.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school year settings: %w", err)
	}

	return &settings, nil
}

// Upsert replaces the active settings.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.SchoolYearSettings) error {
	query := `
		INSERT INTO school_year_settings (id, zone, school_year_start, school_year_end)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET zone = EXCLUDED.zone,
		    school_year_start = EXCLUDED.school_year_start,
		    school_year_end = EXCLUDED.school_year_end,
		    updated_at = now()
	`

	_, err := r.ExecAffected(ctx, query, settings.Zone, settings.SchoolYearStart, settings.SchoolYearEnd)
	if err != nil {
		return fmt.Errorf("upsert school year settings: %w", err)
	}

	return nil
}
