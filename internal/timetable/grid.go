// Package timetable turns sparse schedule data into dense day by period
// grids and resolves what each timetable slot should display.
package timetable

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/upasthiti/admin-console/internal/models"
)

type cellKey struct {
	day    models.Day
	period int
}

// Grid is a dense days x periods view over schedule entries.
type Grid struct {
	days    []models.Day
	periods []models.PeriodDef
	cells   map[cellKey]models.ScheduleEntry
	dropped []models.ScheduleEntry
}

// BuildWeekGrid places every entry at its (day, period). When two entries
// claim the same cell the later one in entries wins. Entries for a day or
// period outside the grid are kept aside and reported by Dropped. The input
// slices are not modified.
func BuildWeekGrid(entries []models.ScheduleEntry, periods []models.PeriodDef, days []models.Day) *Grid {
	g := &Grid{
		days:    append([]models.Day(nil), days...),
		periods: append([]models.PeriodDef(nil), periods...),
		cells:   make(map[cellKey]models.ScheduleEntry, len(entries)),
	}

	knownDay := make(map[models.Day]bool, len(days))
	for _, d := range days {
		knownDay[d] = true
	}
	knownPeriod := make(map[int]bool, len(periods))
	for _, p := range periods {
		knownPeriod[p.Period] = true
	}

	for _, e := range entries {
		day, err := models.ParseDay(string(e.Day))
		if err != nil || !knownDay[day] || !knownPeriod[e.Period] {
			g.dropped = append(g.dropped, e)
			continue
		}
		e.Day = day
		g.cells[cellKey{day, e.Period}] = e
	}
	return g
}

// At returns the entry occupying (day, period), if any.
func (g *Grid) At(day models.Day, period int) (models.ScheduleEntry, bool) {
	e, ok := g.cells[cellKey{day, period}]
	return e, ok
}

func (g *Grid) Days() []models.Day { return append([]models.Day(nil), g.days...) }

func (g *Grid) Periods() []models.PeriodDef { return append([]models.PeriodDef(nil), g.periods...) }

func (g *Grid) Dropped() []models.ScheduleEntry { return g.dropped }

// Filled is the number of occupied cells.
func (g *Grid) Filled() int { return len(g.cells) }

// Row is one day of the grid; Slots[i] belongs to the i-th period and is nil
// when the period is free.
type Row struct {
	Day   models.Day              `json:"day"`
	Slots []*models.ScheduleEntry `json:"slots"`
}

func (g *Grid) Rows() []Row {
	rows := make([]Row, 0, len(g.days))
	for _, d := range g.days {
		row := Row{Day: d, Slots: make([]*models.ScheduleEntry, len(g.periods))}
		for i, p := range g.periods {
			if e, ok := g.cells[cellKey{d, p.Period}]; ok {
				row.Slots[i] = &e
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// MarshalJSON writes {"monday": {"1": entry|null, ...}, ...} in grid order.
func (g *Grid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range g.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(d)))
		buf.WriteString(":{")
		for j, p := range g.periods {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(p.Period)))
			buf.WriteByte(':')
			e, ok := g.cells[cellKey{d, p.Period}]
			if !ok {
				buf.WriteString("null")
				continue
			}
			b, err := json.Marshal(e)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
