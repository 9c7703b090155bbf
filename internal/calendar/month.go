// Package calendar builds the month view data.
package calendar

import (
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/task"
)

// GridRows is the number of week rows per rendered month, padded so every
// month occupies the same grid.
const GridRows = 6

// Cell is one day cell in the month grid.
type Cell struct {
	Day     int // 0 for padding cells outside the month
	Date    time.Time
	Tasks   []*task.Task
	Today   bool
	Overdue bool // at least one task in this cell is overdue
}

// Month is a rendered month grid, weeks starting on Sunday.
type Month struct {
	Year  int
	Month time.Month
	Grid  [GridRows][7]Cell
}

// New builds the grid for the given year/month, attaching tasks to their
// due-date cells.
func New(year int, month time.Month, tasks []*task.Task, now time.Time) *Month {
	m := &Month{Year: year, Month: month}

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	startCol := int(first.Weekday()) // Sunday = 0

	byDay := make(map[int][]*task.Task)
	for _, t := range tasks {
		if t.Due.Year() == year && t.Due.Month() == month {
			byDay[t.Due.Day()] = append(byDay[t.Due.Day()], t)
		}
	}

	today := dateutil.TruncateToDay(now)
	for day := 1; day <= daysInMonth; day++ {
		pos := startCol + day - 1
		row, col := pos/7, pos%7
		date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

		cell := Cell{
			Day:   day,
			Date:  date,
			Tasks: byDay[day],
			Today: date.Equal(today),
		}
		for _, t := range cell.Tasks {
			if t.BucketFor(now) == task.BucketOverdue {
				cell.Overdue = true
				break
			}
		}
		m.Grid[row][col] = cell
	}

	return m
}

// Title returns "June 2025" style heading text.
func (m *Month) Title() string {
	return m.Month.String() + " " + strconv.Itoa(m.Year)
}

// Prev returns the year/month of the previous month.
func (m *Month) Prev() (int, time.Month) {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// Next returns the year/month of the following month.
func (m *Month) Next() (int, time.Month) {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}
