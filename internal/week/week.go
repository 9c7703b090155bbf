// Package week builds the weekly schedule view data.
package week

import (
	"sort"
	"time"

	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Slot is one row in a weekday column: a recurring daily entry or a dated
// task projected onto its due day.
type Slot struct {
	Time     string // HH:MM; dated tasks carry "00:00"
	Label    string
	Daily    bool // true when the slot comes from the daily list
	Done     bool // completion state for daily slots
	Priority int  // 1-5 for dated tasks, 0 for daily slots
}

// Day is one weekday column.
type Day struct {
	Date  time.Time
	Slots []Slot
}

// Schedule is a Monday-based week of columns.
type Schedule struct {
	Start time.Time // Monday
	End   time.Time // Sunday
	Days  [7]Day
}

// Build assembles the weekly schedule for the week containing ref.
// Daily entries repeat on every weekday; dated tasks appear on their due
// day. Slots within a day are ordered by time, daily entries first within
// a time slot.
func Build(ref time.Time, entries []*daily.Entry, tasks []*task.Task) *Schedule {
	monday, sunday := dateutil.WeekRange(ref)

	s := &Schedule{Start: monday, End: sunday}
	for i := range s.Days {
		s.Days[i].Date = monday.AddDate(0, 0, i)
	}

	for i := range s.Days {
		for _, e := range entries {
			s.Days[i].Slots = append(s.Days[i].Slots, Slot{
				Time:  e.Time,
				Label: e.Text,
				Daily: true,
				Done:  e.Completed,
			})
		}
	}

	// Due dates and the reference clock may carry different locations;
	// the window check compares calendar days.
	weekStart := dateutil.DateOnly(monday)
	weekEnd := dateutil.DateOnly(sunday)
	for _, t := range tasks {
		due := dateutil.DateOnly(t.Due)
		if due.Before(weekStart) || due.After(weekEnd) {
			continue
		}
		idx := int(due.Sub(weekStart).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		s.Days[idx].Slots = append(s.Days[idx].Slots, Slot{
			Time:     "00:00",
			Label:    t.Name,
			Priority: t.Priority,
		})
	}

	for i := range s.Days {
		sortSlots(s.Days[i].Slots)
	}
	return s
}

// TodayIndex returns the column index of today within the schedule, or -1
// when today falls outside the week.
func (s *Schedule) TodayIndex(now time.Time) int {
	today := dateutil.DateOnly(now)
	for i, d := range s.Days {
		if dateutil.DateOnly(d.Date).Equal(today) {
			return i
		}
	}
	return -1
}

// sortSlots orders by time slot; stability keeps daily entries ahead of
// dated tasks within the same slot.
func sortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return dateutil.MinutesOfDay(slots[i].Time) < dateutil.MinutesOfDay(slots[j].Time)
	})
}
