package timetable

import (
	"sort"
	"strings"

	"github.com/upasthiti/admin-console/internal/grouping"
	"github.com/upasthiti/admin-console/internal/models"
)

// Key identifies one timetable: a department's section for a semester
// within a validity window.
type Key struct {
	Department string
	Section    string
	Semester   int
	ValidFrom  string
	ValidUntil string
}

func KeyOf(doc models.TimetableDocument) Key {
	return Key{
		Department: doc.Department,
		Section:    doc.Section,
		Semester:   doc.Semester,
		ValidFrom:  doc.ValidFrom.ISO(),
		ValidUntil: doc.ValidUntil.ISO(),
	}
}

// Index holds at most one document per Key. A later Put for an existing key
// replaces the document but keeps its original position.
type Index struct {
	order []Key
	docs  map[Key]models.TimetableDocument
}

func NewIndex() *Index {
	return &Index{docs: make(map[Key]models.TimetableDocument)}
}

func BuildIndex(docs []models.TimetableDocument) *Index {
	ix := NewIndex()
	for _, d := range docs {
		ix.Put(d)
	}
	return ix
}

// Put stores doc and reports whether it replaced an earlier one.
func (ix *Index) Put(doc models.TimetableDocument) bool {
	k := KeyOf(doc)
	_, replaced := ix.docs[k]
	if !replaced {
		ix.order = append(ix.order, k)
	}
	ix.docs[k] = doc
	return replaced
}

func (ix *Index) Get(k Key) (models.TimetableDocument, bool) {
	d, ok := ix.docs[k]
	return d, ok
}

func (ix *Index) Len() int { return len(ix.order) }

// Documents returns every document in insertion order.
func (ix *Index) Documents() []models.TimetableDocument {
	out := make([]models.TimetableDocument, 0, len(ix.order))
	for _, k := range ix.order {
		out = append(out, ix.docs[k])
	}
	return out
}

// DayPeriods returns the slots of day sorted by period number. Duplicate
// period numbers collapse to the last one listed.
func DayPeriods(doc models.TimetableDocument, day models.Day) []models.PeriodSlot {
	byPeriod := make(map[int]models.PeriodSlot)
	for _, s := range doc.WeekSchedule[day] {
		byPeriod[s.Period] = s
	}
	out := make([]models.PeriodSlot, 0, len(byPeriod))
	for _, s := range byPeriod {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

type DayView struct {
	Day     models.Day `json:"day"`
	Periods []Tag      `json:"periods"`
}

type TimetableView struct {
	ID         string    `json:"id,omitempty"`
	Semester   int       `json:"semester"`
	ValidFrom  string    `json:"validFrom"`
	ValidUntil string    `json:"validUntil"`
	Days       []DayView `json:"days"`
}

type SectionView struct {
	Section    string          `json:"section"`
	Timetables []TimetableView `json:"timetables"`
}

type DepartmentView struct {
	Department string        `json:"department"`
	Sections   []SectionView `json:"sections"`
}

// View groups the indexed timetables department then section, both in order
// of first appearance. A non-empty search keeps only timetables with a slot
// whose label or teacher contains it.
func (ix *Index) View(search string, days []models.Day, periods []models.PeriodDef) []DepartmentView {
	times := make(map[int]string, len(periods))
	for _, p := range periods {
		times[p.Period] = p.Time
	}

	depts := grouping.GroupAndFilter(ix.Documents(),
		func(d models.TimetableDocument) string { return d.Department },
		matchesSearch(search),
	)

	out := make([]DepartmentView, 0, depts.Len())
	depts.Each(func(dept string, docs []models.TimetableDocument) {
		dv := DepartmentView{Department: dept}
		sections := grouping.GroupAndFilter(docs, func(d models.TimetableDocument) string { return d.Section })
		sections.Each(func(section string, docs []models.TimetableDocument) {
			sv := SectionView{Section: section}
			for _, doc := range docs {
				sv.Timetables = append(sv.Timetables, render(doc, days, times))
			}
			dv.Sections = append(dv.Sections, sv)
		})
		out = append(out, dv)
	})
	return out
}

func render(doc models.TimetableDocument, days []models.Day, times map[int]string) TimetableView {
	tv := TimetableView{
		ID:         doc.ID,
		Semester:   doc.Semester,
		ValidFrom:  doc.ValidFrom.String(),
		ValidUntil: doc.ValidUntil.String(),
		Days:       make([]DayView, 0, len(days)),
	}
	for _, d := range days {
		slots := DayPeriods(doc, d)
		dv := DayView{Day: d, Periods: make([]Tag, 0, len(slots))}
		for _, s := range slots {
			t := s.Time
			if t == "" {
				t = times[s.Period]
			}
			dv.Periods = append(dv.Periods, Resolve(s, t))
		}
		tv.Days = append(tv.Days, dv)
	}
	return tv
}

func matchesSearch(query string) grouping.Predicate[models.TimetableDocument] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(doc models.TimetableDocument) bool {
		if q == "" {
			return true
		}
		for _, slots := range doc.WeekSchedule {
			for _, s := range slots {
				if strings.Contains(strings.ToLower(Label(s)), q) || strings.Contains(strings.ToLower(Teacher(s)), q) {
					return true
				}
			}
		}
		return false
	}
}
