package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/upasthiti/admin-console/internal/auth"
	"github.com/upasthiti/admin-console/internal/cdn"
	"github.com/upasthiti/admin-console/internal/gateway"
	"github.com/upasthiti/admin-console/internal/identity"
	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/session"
	"github.com/upasthiti/admin-console/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	admin      *models.AdminProfile
	counts     *models.Counts
	faculty    []models.FacultyRecord
	students   []models.StudentRecord
	subjects   map[string][]models.SubjectAssignment
	schedule   []models.ScheduleEntry
	timetables []models.TimetableDocument
	uploaded   []models.TimetableDocument
	upload     *models.UploadResult
	err        error

	gotFilename string
	gotCSV      string
	gotWindow   [2]string
}

func (f *fakeBackend) Admin(ctx context.Context, uid string) (*models.AdminProfile, error) {
	if f.admin == nil {
		return nil, gateway.ErrNotFound
	}
	p := *f.admin
	return &p, nil
}

func (f *fakeBackend) UpdateAdmin(ctx context.Context, uid string, updates map[string]any) error {
	return nil
}

func (f *fakeBackend) SignUpload(ctx context.Context, folder string) (*models.UploadCredential, error) {
	return &models.UploadCredential{Timestamp: 1, Signature: "sig", APIKey: "key", Folder: folder}, nil
}

func (f *fakeBackend) Counts(ctx context.Context) (*models.Counts, error) {
	return f.counts, f.err
}

func (f *fakeBackend) Faculty(ctx context.Context, uid string) (*models.FacultyRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.faculty {
		if r.UID == uid {
			return &r, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeBackend) AllFaculty(ctx context.Context) ([]models.FacultyRecord, error) {
	return f.faculty, f.err
}

func (f *fakeBackend) FacultySubjects(ctx context.Context, facultyID string) (map[string][]models.SubjectAssignment, error) {
	return f.subjects, f.err
}

func (f *fakeBackend) FacultySchedule(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error) {
	return f.schedule, f.err
}

func (f *fakeBackend) Student(ctx context.Context, uid string) (*models.StudentRecord, error) {
	for _, s := range f.students {
		if s.UID == uid {
			return &s, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeBackend) AllStudents(ctx context.Context) ([]models.StudentRecord, error) {
	return f.students, f.err
}

func (f *fakeBackend) Timetables(ctx context.Context) ([]models.TimetableDocument, error) {
	return f.timetables, f.err
}

func (f *fakeBackend) UploadFaculty(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error) {
	return f.recordUpload(filename, csv)
}

func (f *fakeBackend) UploadStudents(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error) {
	return f.recordUpload(filename, csv)
}

func (f *fakeBackend) recordUpload(filename string, csv io.Reader) (*models.UploadResult, error) {
	data, _ := io.ReadAll(csv)
	f.gotFilename, f.gotCSV = filename, string(data)
	return f.upload, f.err
}

func (f *fakeBackend) UploadTimetables(ctx context.Context, filename string, csv io.Reader, validFrom, validUntil string) ([]models.TimetableDocument, error) {
	f.gotFilename = filename
	f.gotWindow = [2]string{validFrom, validUntil}
	return f.uploaded, f.err
}

type fakeImages struct {
	url string
	err error
}

func (f fakeImages) Upload(ctx context.Context, cred models.UploadCredential, filename string, image io.Reader) (string, error) {
	return f.url, f.err
}

type fakeProvider struct {
	newPassword string
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Identity, error) {
	return &identity.Identity{UID: "u-1", Email: email}, nil
}

func (p *fakeProvider) SignInWithGoogle(ctx context.Context, token string) (*identity.Identity, error) {
	return nil, identity.GoogleSignInCancelled()
}

func (p *fakeProvider) SendPasswordReset(ctx context.Context, email string) error { return nil }

func (p *fakeProvider) UpdatePassword(ctx context.Context, uid, password string) error {
	p.newPassword = password
	return nil
}

func (p *fakeProvider) SignOut(ctx context.Context, uid string) error { return nil }

var asha = models.AdminProfile{
	AdminID:       "A1",
	Name:          "Asha",
	OfficialEmail: "asha@vips.edu",
	PhoneNumber:   "9876543210",
	UID:           "u-1",
	School:        models.SchoolInfo{Name: "VIPS"},
}

type testServer struct {
	router   *gin.Engine
	backend  *fakeBackend
	provider *fakeProvider
	settings *session.Settings
	token    string
}

func newTestServer(t *testing.T, backend *fakeBackend, images fakeImages) *testServer {
	t.Helper()
	store := session.NewMemoryStore()
	cache := session.NewCache(backend, images, store)
	settings := session.NewSettings(store, nil)
	provider := &fakeProvider{}
	tokens := auth.NewTokens("secret", time.Minute, time.Hour)

	h := NewHandler(backend, cache, settings, provider, DefaultPasswords{Faculty: "Faculty@123", Student: "Student@123"}, nil)
	h.now = func() time.Time { return time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC) }

	router := SetupRouter(Server{
		API:     h,
		Auth:    auth.NewHandler(tokens, provider, cache.Forget, nil),
		Tokens:  tokens,
		Signer:  cdn.NewSigner("key", "secret"),
		Folder:  "profilepictures",
		Metrics: prometheus.NewRegistry(),
	})

	pair, err := tokens.Issue(identity.Identity{UID: "u-1", Email: "asha@vips.edu"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &testServer{router: router, backend: backend, provider: provider, settings: settings, token: pair.AccessToken}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	io.WriteString(part, content)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return s.do(t, http.MethodPost, path, &buf, mw.FormDataContentType())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	req := httptest.NewRequest(http.MethodGet, "/admin/account", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAccountIsRedacted(t *testing.T) {
	s := newTestServer(t, &fakeBackend{admin: &asha}, fakeImages{})
	w := s.do(t, http.MethodGet, "/admin/account", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	acc := decode[view.Account](t, w)
	if acc.Loading || acc.Email != "asha@vips.edu" || acc.Phone != view.Placeholder {
		t.Fatalf("unexpected account %+v", acc)
	}
}

func TestAccountLoadingWhenBackendFails(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	acc := decode[view.Account](t, s.do(t, http.MethodGet, "/admin/account", nil, ""))
	if !acc.Loading {
		t.Fatalf("expected loading account, got %+v", acc)
	}
}

func TestProfilePictureFailureIsOneNotice(t *testing.T) {
	s := newTestServer(t, &fakeBackend{admin: &asha}, fakeImages{err: errors.New("host down")})
	w := s.upload(t, "/admin/account/picture", "me.png", "png", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	body := decode[map[string]string](t, w)
	if body["error"] != session.PictureFailedNotice {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestProfilePictureSuccess(t *testing.T) {
	s := newTestServer(t, &fakeBackend{admin: &asha}, fakeImages{url: "https://cdn/new.png"})
	w := s.upload(t, "/admin/account/picture", "me.png", "png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if acc := decode[view.Account](t, w); acc.ProfilePicture != "https://cdn/new.png" {
		t.Fatalf("unexpected picture %q", acc.ProfilePicture)
	}
}

func TestDashboardFillsMissingCounts(t *testing.T) {
	backend := &fakeBackend{
		admin:  &asha,
		counts: &models.Counts{StudentTotal: 80, ByBranch: map[string]int{"CSE": 80}, FacultyByType: map[string]int{"Professor": 2}},
	}
	s := newTestServer(t, backend, fakeImages{})
	d := decode[view.Dashboard](t, s.do(t, http.MethodGet, "/admin/dashboard", nil, ""))
	if d.Greeting != "Good Morning" || d.StudentTotal != 80 || d.FacultyTotal != 2 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if len(d.Branches) != len(view.DashboardBranches) || d.Branches[1].Count != 0 {
		t.Fatalf("expected every branch listed, got %+v", d.Branches)
	}
}

func TestDashboardGreetsInViewerTimeZone(t *testing.T) {
	backend := &fakeBackend{admin: &asha, counts: &models.Counts{}}
	s := newTestServer(t, backend, fakeImages{})

	d := decode[view.Dashboard](t, s.do(t, http.MethodGet, "/admin/dashboard?tz=Asia/Kolkata", nil, ""))
	if d.Greeting != "Good Afternoon" {
		t.Fatalf("expected afternoon at 14:30 IST, got %q", d.Greeting)
	}

	w := s.do(t, http.MethodGet, "/admin/dashboard?tz=Mars/Olympus", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown zone, got %d", w.Code)
	}
}

func TestFacultyRosterFilters(t *testing.T) {
	backend := &fakeBackend{faculty: []models.FacultyRecord{
		{UID: "f1", FacultyID: "F1", Name: "Ravi", Type: "Professor", DepartmentID: "CSE"},
		{UID: "f2", FacultyID: "F2", Name: "Meera", Type: "Assistant Professor", DepartmentID: "CSE"},
		{UID: "f3", FacultyID: "F3", Name: "Ravina", Type: "", DepartmentID: "ECE"},
	}}
	s := newTestServer(t, backend, fakeImages{})

	r := decode[view.Roster[view.FacultyCard]](t, s.do(t, http.MethodGet, "/admin/faculty?search=rav&department=all", nil, ""))
	if r.Total != 2 || len(r.Groups) != 2 || r.Groups[0].Key != "Professor" || r.Groups[1].Key != "Other" {
		t.Fatalf("unexpected roster %+v", r)
	}
}

func TestFacultyNotFound(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	w := s.do(t, http.MethodGet, "/admin/faculty/nobody", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBackendMessageIsPassedThrough(t *testing.T) {
	backend := &fakeBackend{err: &gateway.StatusError{
		Endpoint:   "GET /api/student/all",
		StatusCode: http.StatusInternalServerError,
		Body:       []byte(`{"error":"database unavailable"}`),
	}}
	s := newTestServer(t, backend, fakeImages{})
	w := s.do(t, http.MethodGet, "/admin/students", nil, "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if body := decode[map[string]string](t, w); body["error"] != "database unavailable" {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestFacultySubjectsAndSchedule(t *testing.T) {
	backend := &fakeBackend{
		faculty: []models.FacultyRecord{{UID: "f1", FacultyID: "F1", Name: "Ravi"}},
		subjects: map[string][]models.SubjectAssignment{
			"10": {{SubjectName: "Compilers"}},
			"2":  {{SubjectName: "Maths"}},
		},
		schedule: []models.ScheduleEntry{{Day: models.Monday, Period: 1, SubjectName: "DBMS"}},
	}
	s := newTestServer(t, backend, fakeImages{})

	subjects := decode[[]models.SemesterSubjects](t, s.do(t, http.MethodGet, "/admin/faculty/f1/subjects", nil, ""))
	if len(subjects) != 2 || subjects[0].Semester != "2" || subjects[1].Semester != "10" {
		t.Fatalf("unexpected semester order %+v", subjects)
	}

	w := s.do(t, http.MethodGet, "/admin/faculty/f1/schedule", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"DBMS"`) {
		t.Fatalf("unexpected schedule %d: %s", w.Code, w.Body)
	}
}

func TestUploadStudentsReportsSummary(t *testing.T) {
	backend := &fakeBackend{upload: &models.UploadResult{
		Success: true,
		Stats:   models.UploadStats{Total: 10, Successful: 8, Failed: 2},
	}}
	s := newTestServer(t, backend, fakeImages{})
	w := s.upload(t, "/admin/students/upload", "students.csv", "name,email\n", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if res := decode[UploadResponse](t, w); res.Summary != "8/10" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
	if backend.gotFilename != "students.csv" || backend.gotCSV != "name,email\n" {
		t.Fatalf("csv not forwarded as is: %q %q", backend.gotFilename, backend.gotCSV)
	}
}

func TestUploadRejectsOtherFiles(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	w := s.upload(t, "/admin/faculty/upload", "faculty.txt", "x", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTimetableUploadDefaultsAndMerges(t *testing.T) {
	existing := models.TimetableDocument{
		Department: "CSE", Section: "A", Semester: 5,
		ValidFrom: models.NewDate(2027, 1, 1), ValidUntil: models.NewDate(2028, 1, 1),
		WeekSchedule: map[models.Day][]models.PeriodSlot{models.Monday: {{Period: 1, Type: models.SlotClass, SubjectName: "Old"}}},
	}
	replacement := existing
	replacement.WeekSchedule = map[models.Day][]models.PeriodSlot{models.Monday: {{Period: 1, Type: models.SlotClass, SubjectName: "New"}}}

	backend := &fakeBackend{timetables: []models.TimetableDocument{existing}, uploaded: []models.TimetableDocument{replacement}}
	s := newTestServer(t, backend, fakeImages{})

	w := s.upload(t, "/admin/timetables/upload", "tt.csv", "x", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if backend.gotWindow != [2]string{DefaultValidFrom, DefaultValidUntil} {
		t.Fatalf("unexpected window %v", backend.gotWindow)
	}
	res := decode[TimetableUploadResponse](t, w)
	if res.Created != 1 || res.Replaced != 1 || len(res.Departments) != 1 {
		t.Fatalf("unexpected upload response %+v", res)
	}
	if label := res.Departments[0].Sections[0].Timetables[0].Days[0].Periods[0].Label; label != "New" {
		t.Fatalf("expected the uploaded timetable to win, got %q", label)
	}
}

func TestTimetableUploadRejectsBadWindow(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	w := s.upload(t, "/admin/timetables/upload", "tt.csv", "x", map[string]string{"validFrom": "2028-01-01", "validUntil": "2027-01-01"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})

	bad := `{"appearance":{"theme":"purple"},"security":{"sessionTimeout":"30"},"auth":{"authMethod":"google"}}`
	if w := s.do(t, http.MethodPut, "/admin/settings", strings.NewReader(bad), "application/json"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid theme, got %d", w.Code)
	}

	want := models.DefaultSettings()
	want.Appearance.Theme = "dark"
	want.Privacy.ShowPhone = true
	payload, _ := json.Marshal(want)
	if w := s.do(t, http.MethodPut, "/admin/settings", bytes.NewReader(payload), "application/json"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	got := decode[models.AppSettings](t, s.do(t, http.MethodGet, "/admin/settings", nil, ""))
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSwitchToPassword(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})

	w := s.do(t, http.MethodPost, "/admin/settings/password", strings.NewReader(`{"newPassword":"secret1","confirmPassword":"secret2"}`), "application/json")
	if body := decode[map[string]string](t, w); w.Code != http.StatusBadRequest || body["error"] != "Passwords don't match." {
		t.Fatalf("unexpected response %d %v", w.Code, body)
	}

	w = s.do(t, http.MethodPost, "/admin/settings/password", strings.NewReader(`{"newPassword":"secret1","confirmPassword":"secret1"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if s.provider.newPassword != "secret1" {
		t.Fatalf("password not sent to the provider")
	}
	if got := s.settings.Get(context.Background(), "u-1"); got.Auth.AuthMethod != session.AuthMethodEmail {
		t.Fatalf("expected email auth method, got %+v", got.Auth)
	}
}

func TestCredentialsPDF(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	body := `{"roster":"faculty","accounts":[{"name":"Ravi","email":"ravi@vips.edu"}]}`
	w := s.do(t, http.MethodPost, "/admin/credentials/pdf", strings.NewReader(body), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if w.Header().Get("Content-Type") != "application/pdf" || !strings.Contains(w.Header().Get("Content-Disposition"), "faculty_credentials.pdf") {
		t.Fatalf("unexpected headers %v", w.Header())
	}

	w = s.do(t, http.MethodPost, "/admin/credentials/pdf", strings.NewReader(`{"roster":"staff"}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown roster, got %d", w.Code)
	}
}

func TestExportStudentsWorkbook(t *testing.T) {
	backend := &fakeBackend{students: []models.StudentRecord{{UID: "s1", Name: "Ravi", Branch: "CSE", BatchEnd: "2027"}}}
	s := newTestServer(t, backend, fakeImages{})
	w := s.do(t, http.MethodGet, "/admin/students/export", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected export %d %v", w.Code, w.Header())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected a zip-based workbook")
	}
}

func TestSignUploadEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	req := httptest.NewRequest(http.MethodPost, "/api/signprofilepicture", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	cred := decode[models.UploadCredential](t, w)
	if cred.APIKey != "key" || cred.Folder != "profilepictures" || cred.Signature == "" {
		t.Fatalf("unexpected credential %+v", cred)
	}
}

func TestSignUploadRejectsBadBodyAndForeignFolder(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, fakeImages{})
	sign := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/signprofilepicture", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	if w := sign(`{"folder":`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
	if w := sign(`{"folder":"invoices"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for another folder, got %d", w.Code)
	}

	cred := decode[models.UploadCredential](t, sign(""))
	if cred.Folder != "profilepictures" {
		t.Fatalf("expected default folder for empty body, got %+v", cred)
	}
	cred = decode[models.UploadCredential](t, sign(`{"folder":"profilepictures"}`))
	if cred.Folder != "profilepictures" || cred.Signature == "" {
		t.Fatalf("unexpected credential %+v", cred)
	}
}
