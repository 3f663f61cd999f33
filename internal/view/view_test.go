package view

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/upasthiti/admin-console/internal/models"
)

var hideAll = models.PrivacySettings{}

func TestRedactionHidesEmailEverywhere(t *testing.T) {
	admin := &models.AdminProfile{AdminID: "A1", Name: "Asha", OfficialEmail: "asha@vips.edu", PhoneNumber: "98765", UID: "u-1"}
	faculty := models.FacultyRecord{FacultyID: "F1", Name: "Rao", OfficialEmail: "rao@vips.edu", Phone: "12345", UID: "f-1"}
	student := models.StudentRecord{Name: "Ravi", Email: "ravi@vips.edu", Phone: "55555", UID: "s-1"}

	rendered := []any{
		NewAccount(admin, hideAll),
		NewDashboard(time.Now(), admin, nil, hideAll),
		NewFacultyCard(faculty, hideAll),
		NewFacultyDetail(faculty, hideAll),
		NewStudentCard(student, hideAll),
		NewStudentDetail(student, hideAll),
		FacultyRoster([]models.FacultyRecord{faculty}, FacultyFilter{}, hideAll),
		StudentRoster([]models.StudentRecord{student}, StudentFilter{}, hideAll),
	}
	for i, v := range rendered {
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %d: %v", i, err)
		}
		s := string(out)
		for _, secret := range []string{"asha@vips.edu", "rao@vips.edu", "ravi@vips.edu", "98765", "12345", "55555"} {
			if strings.Contains(s, secret) {
				t.Fatalf("view %d leaked %q: %s", i, secret, s)
			}
		}
		if !strings.Contains(s, Placeholder) {
			t.Fatalf("view %d has no placeholder: %s", i, s)
		}
	}
}

func TestRedactionShowsWhenAllowed(t *testing.T) {
	p := models.PrivacySettings{ShowEmail: true}
	if got := Email("a@b.c", p); got != "a@b.c" {
		t.Fatalf("expected email, got %q", got)
	}
	if got := Phone("123", p); got != Placeholder {
		t.Fatalf("expected phone hidden, got %q", got)
	}
}

func TestAccountLoading(t *testing.T) {
	if a := NewAccount(nil, hideAll); !a.Loading || a.Name != "" {
		t.Fatalf("expected loading account, got %+v", a)
	}
}

func TestGreeting(t *testing.T) {
	cases := map[int]string{0: "Good Morning", 11: "Good Morning", 12: "Good Afternoon", 17: "Good Afternoon", 18: "Good Evening", 23: "Good Evening"}
	for hour, want := range cases {
		if got := Greeting(time.Date(2027, 1, 1, hour, 30, 0, 0, time.Local)); got != want {
			t.Fatalf("hour %d: expected %q, got %q", hour, want, got)
		}
	}
}

func TestDashboardFillsMissingCounts(t *testing.T) {
	counts := &models.Counts{
		StudentTotal:  120,
		ByBranch:      map[string]int{"CSE": 80, "MECH": 5},
		FacultyByType: map[string]int{models.RankProfessor: 3, models.RankAssistantProfessor: 7},
	}
	d := NewDashboard(time.Now(), nil, counts, hideAll)

	if d.StudentTotal != 120 || d.FacultyTotal != 10 {
		t.Fatalf("unexpected totals %d/%d", d.StudentTotal, d.FacultyTotal)
	}
	if len(d.Branches) != len(DashboardBranches) || d.Branches[0].Count != 80 || d.Branches[1].Count != 0 {
		t.Fatalf("unexpected branches %+v", d.Branches)
	}
	if d.Faculty[1].Rank != models.RankProfessorOfPractice || d.Faculty[1].Count != 0 {
		t.Fatalf("unexpected faculty %+v", d.Faculty)
	}
	if !d.Admin.Loading {
		t.Fatalf("expected loading admin card")
	}
}

func TestStudentRosterGroupsByYearAndFilters(t *testing.T) {
	records := []models.StudentRecord{
		{Name: "a", UID: "1", Branch: "CSE", BatchEnd: "2027"},
		{Name: "b", UID: "2", Branch: "AIML", BatchEnd: "2027"},
		{Name: "c", UID: "3", Branch: "CSE", BatchEnd: "2026"},
		{Name: "d", UID: "4", Branch: "CSE"},
	}
	r := StudentRoster(records, StudentFilter{Branch: "CSE"}, hideAll)

	var keys []string
	for _, g := range r.Groups {
		keys = append(keys, g.Key)
	}
	if !reflect.DeepEqual(keys, []string{"2027", "2026", "Others"}) {
		t.Fatalf("unexpected groups %v", keys)
	}
	if r.Total != 3 || r.Groups[0].Members[0].UID != "1" {
		t.Fatalf("unexpected roster %+v", r)
	}
	if r.Groups[0].Members[0].BranchName != "Computer Science & Engineering" {
		t.Fatalf("unexpected branch name %q", r.Groups[0].Members[0].BranchName)
	}

	r = StudentRoster(records, StudentFilter{Year: "2026", Branch: "all"}, hideAll)
	if r.Total != 1 || r.Groups[0].Key != "2026" {
		t.Fatalf("unexpected year filter result %+v", r)
	}
}

func TestFacultyRosterHeadingsAndFilters(t *testing.T) {
	records := []models.FacultyRecord{
		{Name: "Dr. Rao", UID: "1", Type: "Assistant Professor", DepartmentID: "DEPT-CSE"},
		{Name: "Dr. Iyer", UID: "2", Type: "Professor", DepartmentID: "DEPT-IT"},
		{Name: "Mr. Rao", UID: "3", DepartmentID: "DEPT-XYZ"},
	}
	r := FacultyRoster(records, FacultyFilter{Search: "rao"}, hideAll)
	if len(r.Groups) != 2 || r.Groups[0].Heading != "Assistant Professors" || r.Groups[1].Key != "Other" {
		t.Fatalf("unexpected groups %+v", r.Groups)
	}
	if r.Groups[1].Members[0].Department != "DEPT-XYZ" {
		t.Fatalf("expected raw department code, got %q", r.Groups[1].Members[0].Department)
	}

	r = FacultyRoster(records, FacultyFilter{Department: "DEPT-IT"}, hideAll)
	if r.Total != 1 || r.Groups[0].Members[0].Department != "Information Technology" {
		t.Fatalf("unexpected department filter result %+v", r)
	}
}

func TestSubjectsBySemesterNumericOrder(t *testing.T) {
	in := map[string][]models.SubjectAssignment{
		"10": {{SubjectName: "Project"}},
		"2":  {{SubjectName: "Maths II"}},
		"1":  {{SubjectName: "Maths I"}},
	}
	var got []string
	for _, s := range SubjectsBySemester(in) {
		got = append(got, s.Semester)
	}
	if !reflect.DeepEqual(got, []string{"1", "2", "10"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestScheduleUsesWorkWeek(t *testing.T) {
	s := NewSchedule([]models.ScheduleEntry{{Day: models.Saturday, Period: 10, SubjectName: "Seminar"}})
	if len(s.Rows) != 6 || len(s.Periods) != 10 {
		t.Fatalf("unexpected shape %d x %d", len(s.Rows), len(s.Periods))
	}
	if s.Rows[5].Slots[9] == nil || s.Rows[5].Slots[9].SubjectName != "Seminar" {
		t.Fatalf("expected Saturday period 10 filled")
	}
}
