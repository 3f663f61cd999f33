package models

import "strings"

// Faculty ranks reported by the backend count endpoint.
const (
	RankProfessor           = "Professor"
	RankProfessorOfPractice = "ProfessorOfPractice"
	RankAssociateProfessor  = "AssociateProfessor"
	RankAssistantProfessor  = "AssistantProfessor"
)

type FacultyRecord struct {
	ID             string     `json:"_id,omitempty"`
	FacultyID      string     `json:"facultyId" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	OfficialEmail  string     `json:"officialEmail"`
	Phone          FlexString `json:"phone"`
	DepartmentID   string     `json:"departmentId"`
	Type           string     `json:"type"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	SchoolID       string     `json:"schoolId"`
	UID            string     `json:"uid" validate:"required"`
}

func (f FacultyRecord) Initial() string {
	return initial(f.Name)
}

type StudentRecord struct {
	ID             string     `json:"_id,omitempty"`
	EnrollmentNo   string     `json:"enrollmentNo"`
	Name           string     `json:"name" validate:"required"`
	Email          string     `json:"email"`
	Phone          FlexString `json:"phone"`
	Branch         string     `json:"branch"`
	BatchEnd       FlexString `json:"batchEnd"`
	ClassID        string     `json:"classId"`
	SchoolID       string     `json:"schoolId"`
	UID            string     `json:"uid" validate:"required"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
}

func (s StudentRecord) Initial() string {
	return initial(s.Name)
}

// SubjectAssignment is one subject a faculty member teaches in a semester.
type SubjectAssignment struct {
	SubjectName string `json:"subjectName"`
	SubjectCode string `json:"subjectCode"`
	ClassID     string `json:"classId"`
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

// SemesterSubjects is the subject list of one semester, as rendered on the
// faculty detail page.
type SemesterSubjects struct {
	Semester string              `json:"semester"`
	Subjects []SubjectAssignment `json:"subjects"`
}
