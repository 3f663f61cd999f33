package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/upasthiti/admin-console/internal/models"
)

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type itemEnvelope[T any] struct {
	Data *T `json:"data"`
}

// Admin fetches the administrator profile (with school) for an identity.
func (c *Client) Admin(ctx context.Context, uid string) (*models.AdminProfile, error) {
	const endpoint = "GET /api/admin"
	var env listEnvelope[models.AdminProfile]
	if err := c.getJSON(ctx, endpoint, "/api/admin", url.Values{"uid": {uid}}, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, ErrNotFound
	}
	admin := env.Data[0]
	if err := c.check(endpoint, admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateAdmin patches fields of the administrator record.
func (c *Client) UpdateAdmin(ctx context.Context, uid string, updates map[string]any) error {
	body := map[string]any{"uid": uid, "updates": updates}
	return c.sendJSON(ctx, http.MethodPatch, "PATCH /api/admin/update", c.baseURL+"/api/admin/update", body, nil)
}

type countBucket struct {
	Count int `json:"count"`
}

type countsPayload struct {
	Students struct {
		Total    int                    `json:"total"`
		ByBranch map[string]countBucket `json:"byBranch"`
	} `json:"students"`
	Faculty struct {
		ByType map[string]countBucket `json:"byType"`
	} `json:"faculty"`
}

// Counts fetches the school-wide student and faculty aggregates.
func (c *Client) Counts(ctx context.Context) (*models.Counts, error) {
	var p countsPayload
	if err := c.getJSON(ctx, "GET /api/count", "/api/count", nil, &p); err != nil {
		return nil, err
	}
	out := &models.Counts{
		StudentTotal:  p.Students.Total,
		ByBranch:      make(map[string]int, len(p.Students.ByBranch)),
		FacultyByType: make(map[string]int, len(p.Faculty.ByType)),
	}
	for branch, b := range p.Students.ByBranch {
		out.ByBranch[branch] = b.Count
	}
	for rank, b := range p.Faculty.ByType {
		out.FacultyByType[rank] = b.Count
	}
	return out, nil
}

func (c *Client) Faculty(ctx context.Context, uid string) (*models.FacultyRecord, error) {
	const endpoint = "GET /api/faculty"
	var env itemEnvelope[models.FacultyRecord]
	if err := c.getJSON(ctx, endpoint, "/api/faculty", url.Values{"uid": {uid}}, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrNotFound
	}
	if err := c.check(endpoint, *env.Data); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) AllFaculty(ctx context.Context) ([]models.FacultyRecord, error) {
	const endpoint = "GET /api/faculty/all"
	var env listEnvelope[models.FacultyRecord]
	if err := c.getJSON(ctx, endpoint, "/api/faculty/all", nil, &env); err != nil {
		return nil, err
	}
	return keepValid(c, endpoint, env.Data), nil
}

// FacultySubjects returns subjects keyed by semester number as sent by the
// backend. Ordering is left to the caller.
func (c *Client) FacultySubjects(ctx context.Context, facultyID string) (map[string][]models.SubjectAssignment, error) {
	var p struct {
		SubjectsBySemester map[string][]models.SubjectAssignment `json:"subjectsBySemester"`
	}
	if err := c.getJSON(ctx, "GET /api/faculty/subjects", "/api/faculty/subjects", url.Values{"facultyId": {facultyID}}, &p); err != nil {
		return nil, err
	}
	if p.SubjectsBySemester == nil {
		p.SubjectsBySemester = map[string][]models.SubjectAssignment{}
	}
	return p.SubjectsBySemester, nil
}

func (c *Client) FacultySchedule(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error) {
	const endpoint = "GET /api/faculty/schedule"
	var p struct {
		Schedule []models.ScheduleEntry `json:"schedule"`
	}
	if err := c.getJSON(ctx, endpoint, "/api/faculty/schedule", url.Values{"facultyId": {facultyID}}, &p); err != nil {
		return nil, err
	}
	return keepValid(c, endpoint, p.Schedule), nil
}

func (c *Client) Student(ctx context.Context, uid string) (*models.StudentRecord, error) {
	const endpoint = "GET /api/student"
	var env listEnvelope[models.StudentRecord]
	if err := c.getJSON(ctx, endpoint, "/api/student", url.Values{"uid": {uid}}, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, ErrNotFound
	}
	s := env.Data[0]
	if err := c.check(endpoint, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AllStudents(ctx context.Context) ([]models.StudentRecord, error) {
	const endpoint = "GET /api/student/all"
	var env listEnvelope[models.StudentRecord]
	if err := c.getJSON(ctx, endpoint, "/api/student/all", nil, &env); err != nil {
		return nil, err
	}
	return keepValid(c, endpoint, env.Data), nil
}

func (c *Client) Timetables(ctx context.Context) ([]models.TimetableDocument, error) {
	const endpoint = "GET /api/admin/timetables"
	var env listEnvelope[models.TimetableDocument]
	if err := c.getJSON(ctx, endpoint, "/api/admin/timetables", nil, &env); err != nil {
		return nil, err
	}
	return keepValid(c, endpoint, env.Data), nil
}

// SignUpload asks the signing endpoint for a one-shot image-host credential.
func (c *Client) SignUpload(ctx context.Context, folder string) (*models.UploadCredential, error) {
	const endpoint = "POST /api/signprofilepicture"
	var cred models.UploadCredential
	err := c.sendJSON(ctx, http.MethodPost, endpoint, c.signingURL+"/api/signprofilepicture", map[string]string{"folder": folder}, &cred)
	if err != nil {
		return nil, err
	}
	if err := c.check(endpoint, cred); err != nil {
		return nil, err
	}
	return &cred, nil
}
