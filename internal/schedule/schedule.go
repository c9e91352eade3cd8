package schedule

import (
	"time"

	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/models"
)

// IsDueOn determines whether a habit is scheduled on the given date.
// One-time habits are due exactly on their specific dates; start/end bounds
// are not applied to them since the dates themselves already encode the
// window. Recurring habits are due when the date's weekday is in the habit's
// day set and the date falls inside the optional inclusive bounds. Habits
// with an empty day or date set are never due.
func IsDueOn(habit models.Habit, date time.Time) bool {
	if habit.IsOneTime {
		day := date.Format(constants.DateFormat)
		for _, d := range habit.SpecificDates {
			if d == day {
				return true
			}
		}
		return false
	}

	if len(habit.DaysOfWeek) == 0 {
		return false
	}

	matched := false
	weekday := int(date.Weekday())
	for _, d := range habit.DaysOfWeek {
		if d == weekday {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	// Malformed stored bounds make the habit not due rather than panicking;
	// the caller owns supplying valid calendar dates.
	if habit.StartDate != "" {
		start, err := time.Parse(constants.DateFormat, habit.StartDate)
		if err != nil || dayBefore(date, start) {
			return false
		}
	}
	if habit.EndDate != "" {
		end, err := time.Parse(constants.DateFormat, habit.EndDate)
		if err != nil || dayBefore(end, date) {
			return false
		}
	}

	return true
}

// dayBefore compares calendar days, ignoring time-of-day and timezone drift
// between parsed UTC bounds and local query dates
func dayBefore(a, b time.Time) bool {
	return a.Format(constants.DateFormat) < b.Format(constants.DateFormat)
}

// ToggleCompletion flips the completion state of a habit for a day and
// adjusts the streak incrementally: +1 on completion, -1 on undo, floored at
// zero. It returns a new habit value and never touches other fields.
//
// The streak is deliberately NOT the length of a consecutive calendar run; it
// is the net number of toggle-on events minus toggle-off events since
// creation. Toggling an old date therefore still moves the counter.
func ToggleCompletion(habit models.Habit, day string) models.Habit {
	updated := habit.Clone()

	if habit.CompletedOn(day) {
		kept := make([]string, 0, len(updated.CompletedDates))
		for _, d := range updated.CompletedDates {
			if d != day {
				kept = append(kept, d)
			}
		}
		updated.CompletedDates = kept
		if updated.Streak > 0 {
			updated.Streak--
		}
		return updated
	}

	updated.CompletedDates = append(updated.CompletedDates, day)
	updated.Streak++
	return updated
}

// TrendPoint is one day of the weekly completion trend
type TrendPoint struct {
	Day   string // YYYY-MM-DD
	Label string // weekday abbreviation, e.g. "Mon"
	Count int
}

// WeeklyTrend counts completions per day over the 7 calendar days ending at
// reference inclusive, oldest first. A completion counts whether or not the
// habit was due that day.
func WeeklyTrend(habits []models.Habit, reference time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := reference.AddDate(0, 0, -i)
		day := d.Format(constants.DateFormat)
		count := 0
		for _, h := range habits {
			if h.CompletedOn(day) {
				count++
			}
		}
		points = append(points, TrendPoint{
			Day:   day,
			Label: d.Format("Mon"),
			Count: count,
		})
	}
	return points
}
