package view

import (
	"github.com/upasthiti/admin-console/internal/grouping"
	"github.com/upasthiti/admin-console/internal/models"
)

const (
	otherFaculty  = "Other"
	otherStudents = "Others"
)

// Group is one titled section of a roster page.
type Group[T any] struct {
	Key     string `json:"key"`
	Heading string `json:"heading"`
	Members []T    `json:"members"`
}

type Roster[T any] struct {
	Total  int        `json:"total"`
	Groups []Group[T] `json:"groups"`
}

type FacultyFilter struct {
	Search     string `form:"search"`
	Type       string `form:"type"`
	Department string `form:"department"`
}

type StudentFilter struct {
	Search string `form:"search"`
	Branch string `form:"branch"`
	Year   string `form:"year"`
}

type FacultyCard struct {
	UID            string `json:"uid"`
	FacultyID      string `json:"facultyId"`
	Name           string `json:"name"`
	Initial        string `json:"initial"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Type           string `json:"type"`
	DepartmentID   string `json:"departmentId"`
	Department     string `json:"department"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type StudentCard struct {
	UID            string `json:"uid"`
	EnrollmentNo   string `json:"enrollmentNo"`
	Name           string `json:"name"`
	Initial        string `json:"initial"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Branch         string `json:"branch"`
	BranchName     string `json:"branchName"`
	BatchEnd       string `json:"batchEnd"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func NewFacultyCard(f models.FacultyRecord, privacy models.PrivacySettings) FacultyCard {
	return FacultyCard{
		UID:            f.UID,
		FacultyID:      f.FacultyID,
		Name:           f.Name,
		Initial:        f.Initial(),
		Email:          Email(f.OfficialEmail, privacy),
		Phone:          Phone(f.Phone.String(), privacy),
		Type:           f.Type,
		DepartmentID:   f.DepartmentID,
		Department:     DepartmentName(f.DepartmentID),
		ProfilePicture: f.ProfilePicture,
	}
}

func NewStudentCard(s models.StudentRecord, privacy models.PrivacySettings) StudentCard {
	return StudentCard{
		UID:            s.UID,
		EnrollmentNo:   s.EnrollmentNo,
		Name:           s.Name,
		Initial:        s.Initial(),
		Email:          Email(s.Email, privacy),
		Phone:          Phone(s.Phone.String(), privacy),
		Branch:         s.Branch,
		BranchName:     BranchName(s.Branch),
		BatchEnd:       s.BatchEnd.String(),
		ProfilePicture: s.ProfilePicture,
	}
}

// FacultyRoster groups faculty by rank, then filters by name, rank and
// department in that order.
func FacultyRoster(records []models.FacultyRecord, f FacultyFilter, privacy models.PrivacySettings) Roster[FacultyCard] {
	groups := grouping.GroupAndFilter(records,
		grouping.WithFallback(func(r models.FacultyRecord) string { return r.Type }, otherFaculty),
		grouping.Search(f.Search, func(r models.FacultyRecord) string { return r.Name }),
		grouping.Match(f.Type, func(r models.FacultyRecord) string { return r.Type }),
		grouping.Match(f.Department, func(r models.FacultyRecord) string { return r.DepartmentID }),
	)
	return project(groups, facultyHeading, func(r models.FacultyRecord) FacultyCard {
		return NewFacultyCard(r, privacy)
	})
}

// StudentRoster groups students by graduation year, then filters by name,
// branch and year.
func StudentRoster(records []models.StudentRecord, f StudentFilter, privacy models.PrivacySettings) Roster[StudentCard] {
	groups := grouping.GroupAndFilter(records,
		grouping.WithFallback(func(r models.StudentRecord) string { return r.BatchEnd.String() }, otherStudents),
		grouping.Search(f.Search, func(r models.StudentRecord) string { return r.Name }),
		grouping.Match(f.Branch, func(r models.StudentRecord) string { return r.Branch }),
		grouping.Match(f.Year, func(r models.StudentRecord) string { return r.BatchEnd.String() }),
	)
	return project(groups, func(k string) string { return k }, func(r models.StudentRecord) StudentCard {
		return NewStudentCard(r, privacy)
	})
}

func facultyHeading(rank string) string {
	switch rank {
	case "Assistant Professor":
		return "Assistant Professors"
	case "Lab Assistant":
		return "LAB ASSISTANT"
	}
	return rank
}

func project[R, C any](groups *grouping.Groups[R], heading func(string) string, card func(R) C) Roster[C] {
	out := Roster[C]{Groups: make([]Group[C], 0, groups.Len())}
	groups.Each(func(key string, records []R) {
		g := Group[C]{Key: key, Heading: heading(key), Members: make([]C, 0, len(records))}
		for _, r := range records {
			g.Members = append(g.Members, card(r))
		}
		out.Total += len(records)
		out.Groups = append(out.Groups, g)
	})
	return out
}
