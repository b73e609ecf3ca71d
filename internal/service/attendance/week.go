package attendance

import "time"

// weekStart returns the most recent Sunday at midnight in t's location.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// weekKeyFor returns the ISO date of the week's Sunday, used as a stable
// bucket key and filter value.
func weekKeyFor(t time.Time) string {
	return weekStart(t).Format("2006-01-02")
}

// weekLabel renders a Sunday-to-Saturday span as "Jan 4 – Jan 10".
func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return start.Format("Jan 2") + " – " + end.Format("Jan 2")
}
