package calendar

import (
	"sort"
	"time"

	"github.com/mlefevre/cartable/internal/model"
)

// PublicHolidays generates the French public holidays of a calendar
// year: the fixed-date ones plus the three Easter-derived Mondays and
// Thursday. Zone-independent, sorted chronologically.
func PublicHolidays(year int) []model.PublicHoliday {
	holidays := []model.PublicHoliday{
		{Date: Date(year, time.January, 1), Name: "Jour de l'an", Type: model.PublicHolidayTypePublic},
		{Date: EasterMonday(year), Name: "Lundi de Pâques", Type: model.PublicHolidayTypeReligious},
		{Date: Date(year, time.May, 1), Name: "Fête du Travail", Type: model.PublicHolidayTypePublic},
		{Date: Date(year, time.May, 8), Name: "Victoire 1945", Type: model.PublicHolidayTypeCommemorative},
		{Date: AscensionDay(year), Name: "Ascension", Type: model.PublicHolidayTypeReligious},
		{Date: PentecostMonday(year), Name: "Lundi de Pentecôte", Type: model.PublicHolidayTypeReligious},
		{Date: Date(year, time.July, 14), Name: "Fête nationale", Type: model.PublicHolidayTypePublic},
		{Date: Date(year, time.August, 15), Name: "Assomption", Type: model.PublicHolidayTypeReligious},
		{Date: Date(year, time.November, 1), Name: "Toussaint", Type: model.PublicHolidayTypeReligious},
		{Date: Date(year, time.November, 11), Name: "Armistice 1918", Type: model.PublicHolidayTypeCommemorative},
		{Date: Date(year, time.December, 25), Name: "Noël", Type: model.PublicHolidayTypeReligious},
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays
}
