package calendar

import "time"

// Easter computes the date of Easter Sunday for any Gregorian year
// with the Meeus/Jones/Butcher algorithm. Exact for all Gregorian
// years, no table lookups.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date(year, time.Month(month), day)
}

// EasterMonday is Easter Sunday + 1 day (lundi de Pâques).
func EasterMonday(year int) time.Time {
	return Easter(year).AddDate(0, 0, 1)
}

// AscensionDay is Easter Sunday + 39 days (jeudi de l'Ascension).
func AscensionDay(year int) time.Time {
	return Easter(year).AddDate(0, 0, 39)
}

// PentecostMonday is Easter Sunday + 50 days (lundi de Pentecôte).
func PentecostMonday(year int) time.Time {
	return Easter(year).AddDate(0, 0, 50)
}
