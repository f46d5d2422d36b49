package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// FallbackSchoolYear is the reference year used when a requested school
// year has no seeded vacation data. The fallback keeps old behavior for
// dates outside the seeded range instead of silently treating every day
// as working.
const FallbackSchoolYear = "2024-2025"

// HolidayService answers whether a calendar date is a school holiday
// (zone-specific), a public holiday, or a non-working day. Lookups for
// a school year are computed once and kept in a TTL cache; the cache is
// safe for concurrent readers and an explicit ClearCache is available.
type HolidayService struct {
	holidayRepo HolidayStore
	cache       *cache.Cache
	ttl         time.Duration
	logger      *zap.Logger
}

func NewHolidayService(holidayRepo HolidayStore, ttl time.Duration, logger *zap.Logger) *HolidayService {
	return &HolidayService{
		holidayRepo: holidayRepo,
		cache:       cache.New(ttl, 2*ttl),
		ttl:         ttl,
		logger:      logger,
	}
}

// IsSchoolHoliday reports whether date falls inside a vacation period
// of the given zone. The school year is derived from the date itself
// (September–August).
func (s *HolidayService) IsSchoolHoliday(ctx context.Context, date time.Time, zone model.Zone) (bool, error) {
	return s.IsSchoolHolidayInYear(ctx, date, zone, calendar.SchoolYearLabel(date))
}

// IsSchoolHolidayInYear is IsSchoolHoliday with an explicit school-year
// label, for callers that already know it.
func (s *HolidayService) IsSchoolHolidayInYear(ctx context.Context, date time.Time, zone model.Zone, schoolYear string) (bool, error) {
	holidays, err := s.schoolHolidays(ctx, schoolYear)
	if err != nil {
		return false, err
	}

	date = calendar.Truncate(date)
	for _, h := range holidays {
		if h.ContainsDate(date, zone) {
			return true, nil
		}
	}
	return false, nil
}

// IsPublicHoliday reports whether date is a French public holiday.
// Public holidays are zone-independent and computed, not stored.
func (s *HolidayService) IsPublicHoliday(ctx context.Context, date time.Time) (bool, error) {
	return s.IsPublicHolidayInYear(ctx, date, calendar.SchoolYearLabel(date))
}

// IsPublicHolidayInYear checks date against the public holidays of both
// calendar years spanned by the school year.
func (s *HolidayService) IsPublicHolidayInYear(_ context.Context, date time.Time, schoolYear string) (bool, error) {
	holidays, err := s.publicHolidays(schoolYear)
	if err != nil {
		return false, err
	}

	date = calendar.Truncate(date)
	for _, h := range holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// IsNonWorkingDay reports whether date is excluded from session
// generation: weekend, school holiday for the zone, or public holiday.
// The weekend check needs no holiday data at all.
func (s *HolidayService) IsNonWorkingDay(ctx context.Context, date time.Time, zone model.Zone) (bool, error) {
	if calendar.IsWeekend(date) {
		return true, nil
	}

	schoolHoliday, err := s.IsSchoolHoliday(ctx, date, zone)
	if err != nil {
		return false, err
	}
	if schoolHoliday {
		return true, nil
	}

	return s.IsPublicHoliday(ctx, date)
}

// WarmCache loads the school and public holidays of a school year into
// the cache ahead of time.
func (s *HolidayService) WarmCache(ctx context.Context, schoolYear string) error {
	if _, err := s.schoolHolidays(ctx, schoolYear); err != nil {
		return err
	}
	if _, err := s.publicHolidays(schoolYear); err != nil {
		return err
	}
	return nil
}

// ClearCache drops every cached holiday lookup.
func (s *HolidayService) ClearCache() {
	s.cache.Flush()
}

func (s *HolidayService) schoolHolidays(ctx context.Context, schoolYear string) ([]*model.Holiday, error) {
	key := "school:" + schoolYear
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Holiday), nil
	}

	holidays, err := s.holidayRepo.GetBySchoolYear(ctx, schoolYear)
	if err != nil {
		return nil, fmt.Errorf("load school holidays %s: %w", schoolYear, err)
	}

	if len(holidays) == 0 && schoolYear != FallbackSchoolYear {
		s.logger.Warn("No school holiday data for school year, falling back to reference year",
			zap.String("school_year", schoolYear),
			zap.String("fallback", FallbackSchoolYear))

		holidays, err = s.holidayRepo.GetBySchoolYear(ctx, FallbackSchoolYear)
		if err != nil {
			return nil, fmt.Errorf("load fallback school holidays %s: %w", FallbackSchoolYear, err)
		}
	}

	s.cache.Set(key, holidays, s.ttl)
	return holidays, nil
}

func (s *HolidayService) publicHolidays(schoolYear string) ([]model.PublicHoliday, error) {
	key := "public:" + schoolYear
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.PublicHoliday), nil
	}

	first, second, err := calendar.SchoolYearCalendarYears(schoolYear)
	if err != nil {
		return nil, err
	}

	holidays := append(calendar.PublicHolidays(first), calendar.PublicHolidays(second)...)
	s.cache.Set(key, holidays, s.ttl)
	return holidays, nil
}
