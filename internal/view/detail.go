package view

import (
	"sort"
	"strconv"

	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/timetable"
)

type FacultyDetail struct {
	FacultyCard
	SchoolID string `json:"schoolId"`
}

func NewFacultyDetail(f models.FacultyRecord, privacy models.PrivacySettings) FacultyDetail {
	return FacultyDetail{FacultyCard: NewFacultyCard(f, privacy), SchoolID: f.SchoolID}
}

type StudentDetail struct {
	StudentCard
	ClassID  string `json:"classId"`
	SchoolID string `json:"schoolId"`
}

func NewStudentDetail(s models.StudentRecord, privacy models.PrivacySettings) StudentDetail {
	return StudentDetail{StudentCard: NewStudentCard(s, privacy), ClassID: s.ClassID, SchoolID: s.SchoolID}
}

// SubjectsBySemester orders semesters numerically. Keys that are not numbers
// sort after the numeric ones.
func SubjectsBySemester(in map[string][]models.SubjectAssignment) []models.SemesterSubjects {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	out := make([]models.SemesterSubjects, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.SemesterSubjects{Semester: k, Subjects: in[k]})
	}
	return out
}

// Schedule is a faculty member's week laid out Monday to Saturday over the
// standard periods.
type Schedule struct {
	Periods []models.PeriodDef `json:"periods"`
	Rows    []timetable.Row    `json:"rows"`
	Grid    *timetable.Grid    `json:"grid"`
}

func NewSchedule(entries []models.ScheduleEntry) Schedule {
	g := timetable.BuildWeekGrid(entries, models.StandardPeriods, models.WorkWeek)
	return Schedule{Periods: g.Periods(), Rows: g.Rows(), Grid: g}
}
