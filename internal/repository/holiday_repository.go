package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/repository/base"
)

// HolidayRepository reads the seeded school vacation periods. The data
// is reference material loaded by migrations; there are no writes at
// runtime.
type HolidayRepository struct {
	base.Repository
}

func NewHolidayRepository(pool *pgxpool.Pool) *HolidayRepository {
	return &HolidayRepository{Repository: base.NewRepository(pool)}
}

// GetBySchoolYear returns every vacation period of a school year, all
// zones included, ordered by start date. Empty when the year is not
// seeded.
func (r *HolidayRepository) GetBySchoolYear(ctx context.Context, schoolYear string) ([]*model.Holiday, error) {
	query := `
		SELECT id, description, start_date, end_date, zones, school_year
		FROM school_holidays
		WHERE school_year = $1
		ORDER BY start_date
	`

	rows, err := r.Query(ctx, query, schoolYear)
	if err != nil {
		return nil, fmt.Errorf("get holidays by school year: %w", err)
	}
	defer rows.Close()

	var holidays []*model.Holiday
	for rows.Next() {
		var (
			holiday model.Holiday
			zones   []string
		)
		err := rows.Scan(
			&holiday.ID,
			&holiday.Description,
			&holiday.Start,
			&holiday.End,
			&zones,
			&holiday.SchoolYear,
		)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holiday.Zones = make([]model.Zone, len(zones))
		for i, z := range zones {
			holiday.Zones[i] = model.Zone(z)
		}
		holidays = append(holidays, &holiday)
	}

	return holidays, nil
}
