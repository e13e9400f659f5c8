package scraper

import "time"

// DateForWeek returns midnight, in weekOneStart's location, of the given day
// in teaching week `week`. weekOneStart is any date inside week 1; its Monday
// anchors the calculation.
func DateForWeek(weekOneStart time.Time, week int, day Weekday) time.Time {
	offset := int(weekOneStart.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started the previous Monday
	}
	monday := time.Date(weekOneStart.Year(), weekOneStart.Month(), weekOneStart.Day()-offset, 0, 0, 0, 0, weekOneStart.Location())
	return monday.AddDate(0, 0, (week-1)*7+int(day))
}

// At combines a date with a wall-clock time in the date's location.
func At(date time.Time, t TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}
