package models

import (
	"fmt"
	"strings"
)

type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// WorkWeek is the Monday–Saturday week used by faculty schedules.
var WorkWeek = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// FullWeek is the week the timetable page iterates over.
var FullWeek = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay accepts full or abbreviated English day names in any case.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range FullWeek {
		if s == string(d) || (len(s) >= 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// ScheduleEntry is one teaching slot of a faculty member.
type ScheduleEntry struct {
	Day         Day    `json:"day" validate:"required"`
	Period      int    `json:"period" validate:"min=1,max=10"`
	SubjectName string `json:"subjectName"`
	Room        string `json:"room"`
	ClassID     string `json:"classId"`
	Semester    int    `json:"semester"`
}

type PeriodDef struct {
	Period int    `json:"period"`
	Time   string `json:"time"`
}

// StandardPeriods are the ten fixed teaching periods of a school day.
var StandardPeriods = []PeriodDef{
	{Period: 1, Time: "9:00-9:50"},
	{Period: 2, Time: "9:50-10:40"},
	{Period: 3, Time: "10:40-11:30"},
	{Period: 4, Time: "11:30-12:20"},
	{Period: 5, Time: "12:20-1:10"},
	{Period: 6, Time: "1:10-2:00"},
	{Period: 7, Time: "2:00-2:50"},
	{Period: 8, Time: "2:50-3:40"},
	{Period: 9, Time: "3:40-4:30"},
	{Period: 10, Time: "4:30-5:20"},
}
