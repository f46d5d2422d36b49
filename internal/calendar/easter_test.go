package calendar

import "testing"

func TestEaster_KnownYears(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{2000, "2000-04-23"},
		{2016, "2016-03-27"},
		{2019, "2019-04-21"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
	}
	for _, tc := range cases {
		if got := FormatDate(Easter(tc.year)); got != tc.want {
			t.Errorf("Easter(%d) = %s, want %s", tc.year, got, tc.want)
		}
	}
}

func TestEasterDerivedDates_2024(t *testing.T) {
	if got := FormatDate(EasterMonday(2024)); got != "2024-04-01" {
		t.Errorf("EasterMonday(2024) = %s, want 2024-04-01", got)
	}
	if got := FormatDate(AscensionDay(2024)); got != "2024-05-09" {
		t.Errorf("AscensionDay(2024) = %s, want 2024-05-09", got)
	}
	if got := FormatDate(PentecostMonday(2024)); got != "2024-05-20" {
		t.Errorf("PentecostMonday(2024) = %s, want 2024-05-20", got)
	}
}
