package models

import (
	"strings"
	"time"
)

// Category is one of the fixed focus areas a habit belongs to
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryMindset      Category = "Mindset"
	CategoryProductivity Category = "Productivity"
	CategoryFinance      Category = "Finance"
	CategorySocial       Category = "Social"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryMindset,
		CategoryProductivity,
		CategoryFinance,
		CategorySocial,
	}
}

// ValidCategory reports whether c is a member of the category enumeration
func ValidCategory(c Category) bool {
	switch c {
	case CategoryHealth, CategoryMindset, CategoryProductivity, CategoryFinance, CategorySocial:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Habit represents a recurring or one-time practice to track.
// DaysOfWeek is meaningful only for recurring habits (0=Sunday..6=Saturday);
// SpecificDates only for one-time habits. Streak is an incrementally adjusted
// counter owned by the completion toggle, never recomputed from history.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	Frequency      Frequency `json:"frequency"`
	DaysOfWeek     []int     `json:"daysOfWeek"`
	Time           string    `json:"time,omitempty"` // HH:MM format
	Description    string    `json:"description,omitempty"`
	Streak         int       `json:"streak"`
	CompletedDates []string  `json:"completedDates"` // YYYY-MM-DD format
	CreatedAt      time.Time `json:"createdAt"`
	IsOneTime      bool      `json:"isOneTime,omitempty"`
	SpecificDates  []string  `json:"specificDates,omitempty"` // YYYY-MM-DD format
	StartDate      string    `json:"startDate,omitempty"`     // YYYY-MM-DD format
	EndDate        string    `json:"endDate,omitempty"`       // YYYY-MM-DD format
}

// Clone returns a deep copy so callers can mutate without aliasing the
// store's canonical slice
func (h Habit) Clone() Habit {
	c := h
	c.DaysOfWeek = append([]int(nil), h.DaysOfWeek...)
	c.CompletedDates = append([]string(nil), h.CompletedDates...)
	c.SpecificDates = append([]string(nil), h.SpecificDates...)
	return c
}

// CompletedOn reports whether the habit was marked done on the given day
func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// HabitDraft carries the optional fields accepted by create and update.
// Nil pointer fields mean "not provided"; defaults are filled explicitly by
// the store rather than by merging untyped maps.
type HabitDraft struct {
	Name          string     `json:"name"`
	Category      *Category  `json:"category,omitempty"`
	Frequency     *Frequency `json:"frequency,omitempty"`
	DaysOfWeek    []int      `json:"daysOfWeek,omitempty"`
	Time          *string    `json:"time,omitempty"`
	Description   *string    `json:"description,omitempty"`
	IsOneTime     *bool      `json:"isOneTime,omitempty"`
	SpecificDates []string   `json:"specificDates,omitempty"`
	StartDate     *string    `json:"startDate,omitempty"`
	EndDate       *string    `json:"endDate,omitempty"`
}

// HasName reports whether the draft names the habit with anything besides
// whitespace
func (d HabitDraft) HasName() bool {
	return strings.TrimSpace(d.Name) != ""
}
