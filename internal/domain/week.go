package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// WeekdayKeys are the day keys of a week in Monday-first order.
var WeekdayKeys = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// WeekWindow is the half-open interval [Start, End) covering one Monday-first UTC week.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// CalendarDay returns midnight UTC of the UTC date of t.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CurrentWeekWindow returns the week containing now: Start is the most recent
// Monday 00:00 UTC on or before now and End is seven days later.
func CurrentWeekWindow(now time.Time) WeekWindow {
	day := CalendarDay(now)
	start := day.AddDate(0, 0, -weekdayIndex(day))
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

// WeekdayKey returns the lowercase three-letter abbreviation of t's UTC weekday.
func WeekdayKey(t time.Time) string {
	return WeekdayKeys[weekdayIndex(t.UTC())]
}

// weekdayIndex maps time.Weekday (Sunday=0) to Monday=0.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DailyCheckins records, for each day of a week, whether a workout was logged.
// Index 0 is Monday.
type DailyCheckins [7]bool

// Mark sets the day named by key. Unknown keys are ignored and reported as false.
func (d *DailyCheckins) Mark(key string) bool {
	for i, k := range WeekdayKeys {
		if k == key {
			d[i] = true
			return true
		}
	}
	return false
}

// Get reports whether the day named by key is checked.
func (d DailyCheckins) Get(key string) bool {
	for i, k := range WeekdayKeys {
		if k == key {
			return d[i]
		}
	}
	return false
}

// MarshalJSON encodes the week as an object whose keys keep the mon..sun order.
func (d DailyCheckins) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range WeekdayKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatBool(d[i]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by day abbreviation.
func (d *DailyCheckins) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = DailyCheckins{}
	for k, v := range m {
		if v {
			d.Mark(k)
		}
	}
	return nil
}
