package timetable

import (
	"fmt"

	"github.com/upasthiti/admin-console/internal/models"
)

// Placeholder is shown when neither the slot nor its groups name a teacher
// or room.
const Placeholder = "-"

const (
	lunchLabel      = "LUNCH"
	labLabel        = "Lab"
	splitLabel      = "Lab (Group Split)"
	libraryLabel    = "Library"
	mentorshipLabel = "Mentorship"
)

// Tag is what one timetable period renders as.
type Tag struct {
	Period  int             `json:"period"`
	Time    string          `json:"time,omitempty"`
	Type    models.SlotType `json:"type"`
	Label   string          `json:"label"`
	Teacher string          `json:"teacher"`
	Room    string          `json:"room"`
	Split   bool            `json:"isGroupSplit"`
}

// Label resolves the subject column of a slot. Split labs list both groups'
// subjects on separate lines.
func Label(s models.PeriodSlot) string {
	switch s.Type {
	case models.SlotLunch:
		return lunchLabel
	case models.SlotClass:
		return s.SubjectName
	case models.SlotLab:
		if s.IsGroupSplit {
			if s.Groups == nil {
				return splitLabel
			}
			return fmt.Sprintf("Group 1: %s\nGroup 2: %s", groupSubject(s.Groups.Group1), groupSubject(s.Groups.Group2))
		}
		if s.SubjectName == "" {
			return labLabel
		}
		return s.SubjectName
	case models.SlotLibrary:
		return libraryLabel
	case models.SlotMentorship:
		return mentorshipLabel
	}
	return s.SubjectName
}

func groupSubject(g *models.GroupSlot) string {
	if g == nil {
		return Placeholder
	}
	return g.SubjectName
}

// Teacher falls back from the slot to group 1, then group 2.
func Teacher(s models.PeriodSlot) string {
	return firstOf(s, func(g *models.GroupSlot) string { return g.TeacherName }, s.TeacherName)
}

// Room falls back the same way as Teacher, independently of it.
func Room(s models.PeriodSlot) string {
	return firstOf(s, func(g *models.GroupSlot) string { return g.Room }, s.Room)
}

func firstOf(s models.PeriodSlot, field func(*models.GroupSlot) string, direct string) string {
	if direct != "" {
		return direct
	}
	if s.Groups != nil {
		for _, g := range []*models.GroupSlot{s.Groups.Group1, s.Groups.Group2} {
			if g != nil && field(g) != "" {
				return field(g)
			}
		}
	}
	return Placeholder
}

// Resolve builds the display tag of a slot. time is the period's clock range
// and may be empty.
func Resolve(s models.PeriodSlot, time string) Tag {
	return Tag{
		Period:  s.Period,
		Time:    time,
		Type:    s.Type,
		Label:   Label(s),
		Teacher: Teacher(s),
		Room:    Room(s),
		Split:   s.Type == models.SlotLab && s.IsGroupSplit,
	}
}
