package clock

import "time"

// DayLayout is the calendar-day identifier persisted as lastDate.
const DayLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports device-local time; day boundaries follow the user's zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// DayKey returns the local calendar date of t.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
