// Package timetable renders a class's recurring weekly schedule as a PNG.
package timetable

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"github.com/mlefevre/cartable/internal/model"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 80
	leftLabelsWidth = 70
	legendWidth     = 150
	dayPaddingX     = 6
	minSlotHeight   = 16.0
	slotRadius      = 5.0
	daysShown       = 7
	hourPaddingTop  = 1
	hourPaddingBot  = 1
	defaultMinHour  = 8
	defaultMaxHour  = 18
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{222, 222, 222, 255}

	slotWeeklyColor    = color.RGBA{133, 193, 85, 220}
	slotBiweeklyAColor = color.RGBA{120, 170, 220, 220}
	slotBiweeklyBColor = color.RGBA{230, 180, 100, 220}
	slotTextColor      = color.RGBA{20, 24, 28, 230}
	legendTextColor    = color.RGBA{70, 74, 78, 220}
)

var dayLabels = [daysShown]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// hourRange is the vertical extent of the grid in whole hours.
type hourRange struct {
	start int
	end   int
	total int
}

// Render draws the weekly grid for the given slots and returns PNG bytes.
// The title is usually the class name.
func Render(title string, slots []*model.ScheduleSlot) ([]byte, error) {
	hours := calculateHourRange(slots)
	slotsByDay := groupSlotsByDay(slots)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / daysShown
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, title)
	drawHourLabels(dc, hours, cellHeight)

	for dayIndex := 0; dayIndex < daysShown; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex)
		drawDayHeader(dc, dayIndex, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range slotsByDay[dayIndex+1] {
			drawSlot(dc, slot, x, dayWidth, hours, cellHeight)
		}
	}

	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

func groupSlotsByDay(slots []*model.ScheduleSlot) map[int][]*model.ScheduleSlot {
	byDay := make(map[int][]*model.ScheduleSlot)
	for _, slot := range slots {
		byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], slot)
	}
	return byDay
}

func calculateHourRange(slots []*model.ScheduleSlot) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		start, err := time.Parse("15:04", slot.StartTime)
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(slot.DurationMinutes) * time.Minute)
		startH := start.Hour()
		endH := end.Hour()
		if end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawHeader(dc *gg.Context, title string) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/3, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := formatTwoDigits(hours.start+hIdx) + ":00"
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, dayIndex int, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(dayLabels[dayIndex], x+float64(dayWidth)/2, y-12, 0.5, 0.5)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, slot *model.ScheduleSlot, x float64, dayWidth int, hours hourRange, cellHeight float64) {
	start, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return
	}
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := startHour + float64(slot.DurationMinutes)/60.0

	slotY := float64(headerHeight) + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := slotColor(slot)
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Stroke()

	dc.SetColor(slotTextColor)
	txtX := x + float64(dayPaddingX) + 6
	dc.DrawStringAnchored(slot.StartTime, txtX, slotY+14, 0, 0)
	if slotHeight > 30 {
		subject := slot.Subject
		if len(subject) > 18 {
			subject = subject[:15] + "..."
		}
		dc.DrawStringAnchored(subject, txtX, slotY+28, 0, 0)
	}
}

func slotColor(slot *model.ScheduleSlot) color.RGBA {
	if slot.Frequency == model.FrequencyWeekly {
		return slotWeeklyColor
	}
	if slot.StartWeek != nil && *slot.StartWeek == 1 {
		return slotBiweeklyBColor
	}
	return slotBiweeklyAColor
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + daysShown*dayWidth + 10)
	legendY := float64(headerHeight) + 10

	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Hebdomadaire", slotWeeklyColor},
		{"Quinzaine A", slotBiweeklyAColor},
		{"Quinzaine B", slotBiweeklyBColor},
	}

	boxW := 20.0
	boxH := 14.0
	liY := legendY

	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
