package cli

import (
	"testing"

	"github.com/lruiz/growthspace/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"day names", "mon,wed,fri", []int{1, 3, 5}, false},
		{"full names", "sunday,saturday", []int{0, 6}, false},
		{"numbers", "0,2,4", []int{0, 2, 4}, false},
		{"mixed", "mon,3", []int{1, 3}, false},
		{"spaces and case", " Mon , TUE ", []int{1, 2}, false},
		{"out of range", "7", nil, true},
		{"garbage", "someday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseWeekdays(%q)[%d] = %d, want %d", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-02-14"); err != nil {
		t.Errorf("parseDate valid date failed: %v", err)
	}
	if _, err := parseDate("today"); err != nil {
		t.Errorf("parseDate 'today' failed: %v", err)
	}
	if _, err := parseDate("02/14/2026"); err == nil {
		t.Error("parseDate accepted a slash-formatted date")
	}

	d, err := parseDate("2026-02-14")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 2026 || d.Month() != 2 || d.Day() != 14 {
		t.Errorf("parseDate returned wrong date: %v", d)
	}
}

func TestParseCategory(t *testing.T) {
	got, err := parseCategory("health")
	if err != nil {
		t.Fatalf("parseCategory lowercase failed: %v", err)
	}
	if got != models.CategoryHealth {
		t.Errorf("parseCategory(\"health\") = %q, want %q", got, models.CategoryHealth)
	}

	if _, err := parseCategory("Sleep"); err == nil {
		t.Error("parseCategory accepted an unknown category")
	}
}

func TestDescribeSchedule(t *testing.T) {
	tests := []struct {
		name  string
		habit models.Habit
		want  string
	}{
		{
			"every day",
			models.Habit{DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6}},
			"every day",
		},
		{
			"weekday subset",
			models.Habit{DaysOfWeek: []int{1, 3}},
			"Mon,Wed",
		},
		{
			"bounded",
			models.Habit{DaysOfWeek: []int{1}, StartDate: "2026-01-01", EndDate: "2026-03-01"},
			"Mon from 2026-01-01 until 2026-03-01",
		},
		{
			"one time",
			models.Habit{IsOneTime: true, SpecificDates: []string{"2026-02-14"}},
			"on 2026-02-14",
		},
		{
			"one time without dates",
			models.Habit{IsOneTime: true},
			"one-time (no date)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeSchedule(tt.habit); got != tt.want {
				t.Errorf("describeSchedule() = %q, want %q", got, tt.want)
			}
		})
	}
}
