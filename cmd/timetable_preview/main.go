// Renders a sample timetable image to a file, for checking the layout
// without running the bot.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mlefevre/cartable/internal/controller/timetable"
	"github.com/mlefevre/cartable/internal/model"
)

func main() {
	out := flag.String("o", "timetable.png", "output file")
	flag.Parse()

	weekA := 0
	weekB := 1
	slots := []*model.ScheduleSlot{
		{DayOfWeek: 1, StartTime: "09:00", DurationMinutes: 60, Subject: "Mathématiques", Frequency: model.FrequencyWeekly},
		{DayOfWeek: 1, StartTime: "14:00", DurationMinutes: 55, Subject: "Histoire", Frequency: model.FrequencyBiweekly, StartWeek: &weekA},
		{DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 90, Subject: "Français", Frequency: model.FrequencyWeekly},
		{DayOfWeek: 4, StartTime: "08:30", DurationMinutes: 60, Subject: "Sciences", Frequency: model.FrequencyBiweekly, StartWeek: &weekB},
		{DayOfWeek: 5, StartTime: "15:00", DurationMinutes: 45, Subject: "Anglais", Frequency: model.FrequencyWeekly},
	}

	png, err := timetable.Render("CM2 A", slots)
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(png))
}
