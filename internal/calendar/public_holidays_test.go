package calendar

import (
	"testing"

	"github.com/mlefevre/cartable/internal/model"
)

func TestPublicHolidays_2024(t *testing.T) {
	holidays := PublicHolidays(2024)

	if len(holidays) != 11 {
		t.Fatalf("expected 11 public holidays, got %d", len(holidays))
	}

	byDate := make(map[string]model.PublicHoliday, len(holidays))
	for _, h := range holidays {
		byDate[FormatDate(h.Date)] = h
	}

	cases := []struct {
		date string
		name string
		typ  model.PublicHolidayType
	}{
		{"2024-01-01", "Jour de l'an", model.PublicHolidayTypePublic},
		{"2024-04-01", "Lundi de Pâques", model.PublicHolidayTypeReligious},
		{"2024-05-01", "Fête du Travail", model.PublicHolidayTypePublic},
		{"2024-05-08", "Victoire 1945", model.PublicHolidayTypeCommemorative},
		{"2024-05-09", "Ascension", model.PublicHolidayTypeReligious},
		{"2024-05-20", "Lundi de Pentecôte", model.PublicHolidayTypeReligious},
		{"2024-07-14", "Fête nationale", model.PublicHolidayTypePublic},
		{"2024-08-15", "Assomption", model.PublicHolidayTypeReligious},
		{"2024-11-01", "Toussaint", model.PublicHolidayTypeReligious},
		{"2024-11-11", "Armistice 1918", model.PublicHolidayTypeCommemorative},
		{"2024-12-25", "Noël", model.PublicHolidayTypeReligious},
	}
	for _, tc := range cases {
		h, ok := byDate[tc.date]
		if !ok {
			t.Errorf("missing public holiday on %s (%s)", tc.date, tc.name)
			continue
		}
		if h.Name != tc.name || h.Type != tc.typ {
			t.Errorf("%s: got (%q, %s), want (%q, %s)", tc.date, h.Name, h.Type, tc.name, tc.typ)
		}
	}
}

func TestPublicHolidays_Sorted(t *testing.T) {
	holidays := PublicHolidays(2025)
	for i := 1; i < len(holidays); i++ {
		if holidays[i].Date.Before(holidays[i-1].Date) {
			t.Fatalf("holidays not sorted: %s after %s",
				FormatDate(holidays[i].Date), FormatDate(holidays[i-1].Date))
		}
	}
}
