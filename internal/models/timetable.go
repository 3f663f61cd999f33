package models

type SlotType string

const (
	SlotClass      SlotType = "class"
	SlotLab        SlotType = "lab"
	SlotLunch      SlotType = "lunch"
	SlotLibrary    SlotType = "library"
	SlotMentorship SlotType = "mentorship"
)

// GroupSlot is one cohort's half of a group-split lab.
type GroupSlot struct {
	SubjectName string `json:"subjectName"`
	TeacherName string `json:"teacherName"`
	Room        string `json:"room"`
}

type LabGroups struct {
	Group1 *GroupSlot `json:"group1,omitempty"`
	Group2 *GroupSlot `json:"group2,omitempty"`
}

// PeriodSlot is one period of a timetable day. Which fields are meaningful
// depends on Type.
type PeriodSlot struct {
	Period       int        `json:"period"`
	Time         string     `json:"time,omitempty"`
	Type         SlotType   `json:"type"`
	SubjectName  string     `json:"subjectName,omitempty"`
	TeacherName  string     `json:"teacherName,omitempty"`
	Room         string     `json:"room,omitempty"`
	IsGroupSplit bool       `json:"isGroupSplit,omitempty"`
	Groups       *LabGroups `json:"groups,omitempty"`
}

type TimetableDocument struct {
	ID           string               `json:"_id,omitempty"`
	Department   string               `json:"department"`
	Section      string               `json:"section"`
	Semester     int                  `json:"semester"`
	ValidFrom    Date                 `json:"validFrom"`
	ValidUntil   Date                 `json:"validUntil"`
	WeekSchedule map[Day][]PeriodSlot `json:"weekSchedule"`
}
