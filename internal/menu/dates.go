package menu

import "time"

// DateLayout is the format Mealie expects for meal-plan dates.
const DateLayout = "2006-01-02"

// WeekDates returns Monday through Sunday of ISO week `week` of `year`.
// Week 1 is the week holding January 4th, so its Monday may fall in the
// previous December.
func WeekDates(year, week int) [7]time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -sinceMonday+(week-1)*7)

	var dates [7]time.Time
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}
