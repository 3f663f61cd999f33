package view

import (
	"time"

	"github.com/upasthiti/admin-console/internal/models"
)

// Account is the signed-in administrator's own profile card. Loading is set
// while no profile could be resolved yet.
type Account struct {
	Loading        bool   `json:"loading"`
	AdminID        string `json:"adminId,omitempty"`
	Name           string `json:"name,omitempty"`
	Initial        string `json:"initial,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	SchoolID       string `json:"schoolId,omitempty"`
	School         string `json:"school,omitempty"`
	UID            string `json:"uid,omitempty"`
}

func NewAccount(p *models.AdminProfile, privacy models.PrivacySettings) Account {
	if p == nil {
		return Account{Loading: true}
	}
	return Account{
		AdminID:        p.AdminID,
		Name:           p.Name,
		Initial:        p.Initial(),
		Email:          Email(p.OfficialEmail, privacy),
		Phone:          Phone(p.PhoneNumber.String(), privacy),
		ProfilePicture: p.ProfilePicture,
		SchoolID:       p.SchoolID,
		School:         p.School.Name,
		UID:            p.UID,
	}
}

// DashboardBranches are the branches the dashboard always lists.
var DashboardBranches = []string{"CSE", "AIML", "AIDS", "VLSI", "IIOT", "CSAM", "CSE-CS"}

var dashboardRanks = []struct{ rank, label string }{
	{models.RankProfessor, "Professor"},
	{models.RankProfessorOfPractice, "Professor of Practice"},
	{models.RankAssociateProfessor, "Associate Professor"},
	{models.RankAssistantProfessor, "Assistant Professor"},
}

type RankCount struct {
	Rank  string `json:"rank"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type BranchCount struct {
	Branch string `json:"branch"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type Dashboard struct {
	Greeting     string        `json:"greeting"`
	Admin        Account       `json:"admin"`
	StudentTotal int           `json:"studentTotal"`
	FacultyTotal int           `json:"facultyTotal"`
	Faculty      []RankCount   `json:"faculty"`
	Branches     []BranchCount `json:"branches"`
}

// Greeting picks the salutation for the hour of now.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// NewDashboard fills every fixed rank and branch, using 0 for any the
// backend did not report. counts may be nil.
func NewDashboard(now time.Time, admin *models.AdminProfile, counts *models.Counts, privacy models.PrivacySettings) Dashboard {
	if counts == nil {
		counts = &models.Counts{}
	}
	d := Dashboard{
		Greeting:     Greeting(now),
		Admin:        NewAccount(admin, privacy),
		StudentTotal: counts.StudentTotal,
		Faculty:      make([]RankCount, 0, len(dashboardRanks)),
		Branches:     make([]BranchCount, 0, len(DashboardBranches)),
	}
	for _, r := range dashboardRanks {
		n := counts.FacultyByType[r.rank]
		d.Faculty = append(d.Faculty, RankCount{Rank: r.rank, Label: r.label, Count: n})
		d.FacultyTotal += n
	}
	for _, b := range DashboardBranches {
		d.Branches = append(d.Branches, BranchCount{Branch: b, Name: BranchName(b), Count: counts.ByBranch[b]})
	}
	return d
}
