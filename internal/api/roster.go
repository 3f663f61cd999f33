package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/excel"
	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/report"
	"github.com/upasthiti/admin-console/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadResponse reports a bulk import. Summary reads "successful/total".
type UploadResponse struct {
	models.UploadResult
	Summary string `json:"summary"`
}

func newUploadResponse(res *models.UploadResult) UploadResponse {
	return UploadResponse{
		UploadResult: *res,
		Summary:      fmt.Sprintf("%d/%d", res.Stats.Successful, res.Stats.Total),
	}
}

// ListFaculty godoc
// @Summary      Faculty roster
// @Description  Faculty grouped by rank, filtered by name search, rank and department. "all" or empty disables a filter.
// @Tags         faculty
// @Produce      json
// @Param        search      query  string  false  "Name contains"
// @Param        type        query  string  false  "Rank"
// @Param        department  query  string  false  "Department code"
// @Success      200 {object} view.Roster[view.FacultyCard]
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty [get]
func (h *Handler) ListFaculty(c *gin.Context) {
	roster, ok := h.facultyRoster(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, roster)
}

// ExportFaculty godoc
// @Summary      Export the faculty roster
// @Description  Same filters as the roster; one sheet per rank.
// @Tags         faculty
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search      query  string  false  "Name contains"
// @Param        type        query  string  false  "Rank"
// @Param        department  query  string  false  "Department code"
// @Success      200 {file} file
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty/export [get]
func (h *Handler) ExportFaculty(c *gin.Context) {
	roster, ok := h.facultyRoster(c)
	if !ok {
		return
	}
	h.sendWorkbook(c, "faculty.xlsx", excel.FacultySheets(roster))
}

func (h *Handler) facultyRoster(c *gin.Context) (view.Roster[view.FacultyCard], bool) {
	var filter view.FacultyFilter
	_ = c.ShouldBindQuery(&filter)
	records, err := h.backend.AllFaculty(c.Request.Context())
	if err != nil {
		h.backendError(c, err, "faculty")
		return view.Roster[view.FacultyCard]{}, false
	}
	return view.FacultyRoster(records, filter, h.privacy(c)), true
}

// UploadFaculty godoc
// @Summary      Bulk import faculty
// @Description  Accepts a .csv or .xlsx file. A partially failed import still answers 200; see stats and errors.
// @Tags         faculty
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Faculty roster"
// @Success      200   {object} UploadResponse
// @Failure      400   {object} map[string]string
// @Failure      502   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty/upload [post]
func (h *Handler) UploadFaculty(c *gin.Context) {
	h.uploadRoster(c, h.backend.UploadFaculty)
}

// UploadStudents godoc
// @Summary      Bulk import students
// @Description  Accepts a .csv or .xlsx file. A partially failed import still answers 200; see stats and errors.
// @Tags         students
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Student roster"
// @Success      200   {object} UploadResponse
// @Failure      400   {object} map[string]string
// @Failure      502   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/upload [post]
func (h *Handler) UploadStudents(c *gin.Context) {
	h.uploadRoster(c, h.backend.UploadStudents)
}

type uploadFunc func(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error)

func (h *Handler) uploadRoster(c *gin.Context, upload uploadFunc) {
	name, csv, done, err := openUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}
	defer done()

	res, err := upload(c.Request.Context(), name, csv)
	if err != nil {
		h.backendError(c, err, "upload")
		return
	}
	c.JSON(http.StatusOK, newUploadResponse(res))
}

// GetFaculty godoc
// @Summary      Faculty detail
// @Tags         faculty
// @Produce      json
// @Param        uid  path  string  true  "Faculty uid"
// @Success      200  {object} view.FacultyDetail
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty/{uid} [get]
func (h *Handler) GetFaculty(c *gin.Context) {
	f, err := h.backend.Faculty(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.backendError(c, err, "faculty")
		return
	}
	c.JSON(http.StatusOK, view.NewFacultyDetail(*f, h.privacy(c)))
}

// GetFacultySubjects godoc
// @Summary      Subjects taught, by semester
// @Description  Semesters are ordered numerically.
// @Tags         faculty
// @Produce      json
// @Param        uid  path  string  true  "Faculty uid"
// @Success      200  {array}  models.SemesterSubjects
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty/{uid}/subjects [get]
func (h *Handler) GetFacultySubjects(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := h.backend.Faculty(ctx, c.Param("uid"))
	if err != nil {
		h.backendError(c, err, "faculty")
		return
	}
	subjects, err := h.backend.FacultySubjects(ctx, f.FacultyID)
	if err != nil {
		h.backendError(c, err, "subjects")
		return
	}
	c.JSON(http.StatusOK, view.SubjectsBySemester(subjects))
}

// GetFacultySchedule godoc
// @Summary      Weekly teaching schedule
// @Description  Monday to Saturday over the ten standard periods. Empty cells are null.
// @Tags         faculty
// @Produce      json
// @Param        uid  path  string  true  "Faculty uid"
// @Success      200  {object} view.Schedule
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculty/{uid}/schedule [get]
func (h *Handler) GetFacultySchedule(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := h.backend.Faculty(ctx, c.Param("uid"))
	if err != nil {
		h.backendError(c, err, "faculty")
		return
	}
	entries, err := h.backend.FacultySchedule(ctx, f.FacultyID)
	if err != nil {
		h.backendError(c, err, "schedule")
		return
	}
	schedule := view.NewSchedule(entries)
	if dropped := schedule.Grid.Dropped(); len(dropped) > 0 {
		h.log.Warn("schedule entries outside the week grid",
			zap.String("facultyId", f.FacultyID),
			zap.Int("dropped", len(dropped)),
		)
	}
	c.JSON(http.StatusOK, schedule)
}

// ListStudents godoc
// @Summary      Student roster
// @Description  Students grouped by graduation year, filtered by name search, branch and year. "all" or empty disables a filter.
// @Tags         students
// @Produce      json
// @Param        search  query  string  false  "Name contains"
// @Param        branch  query  string  false  "Branch code"
// @Param        year    query  string  false  "Graduation year"
// @Success      200 {object} view.Roster[view.StudentCard]
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students [get]
func (h *Handler) ListStudents(c *gin.Context) {
	roster, ok := h.studentRoster(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, roster)
}

// ExportStudents godoc
// @Summary      Export the student roster
// @Description  Same filters as the roster; one sheet per graduation year.
// @Tags         students
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search  query  string  false  "Name contains"
// @Param        branch  query  string  false  "Branch code"
// @Param        year    query  string  false  "Graduation year"
// @Success      200 {file} file
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/export [get]
func (h *Handler) ExportStudents(c *gin.Context) {
	roster, ok := h.studentRoster(c)
	if !ok {
		return
	}
	h.sendWorkbook(c, "students.xlsx", excel.StudentSheets(roster))
}

func (h *Handler) studentRoster(c *gin.Context) (view.Roster[view.StudentCard], bool) {
	var filter view.StudentFilter
	_ = c.ShouldBindQuery(&filter)
	records, err := h.backend.AllStudents(c.Request.Context())
	if err != nil {
		h.backendError(c, err, "students")
		return view.Roster[view.StudentCard]{}, false
	}
	return view.StudentRoster(records, filter, h.privacy(c)), true
}

// GetStudent godoc
// @Summary      Student detail
// @Tags         students
// @Produce      json
// @Param        uid  path  string  true  "Student uid"
// @Success      200  {object} view.StudentDetail
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/students/{uid} [get]
func (h *Handler) GetStudent(c *gin.Context) {
	s, err := h.backend.Student(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.backendError(c, err, "student")
		return
	}
	c.JSON(http.StatusOK, view.NewStudentDetail(*s, h.privacy(c)))
}

func (h *Handler) sendWorkbook(c *gin.Context, filename string, sheets []excel.Sheet) {
	var buf bytes.Buffer
	if err := excel.Export(&buf, sheets); err != nil {
		h.log.Error("export roster", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export roster"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CredentialsRequest is the imported data of a bulk upload to print.
type CredentialsRequest struct {
	Roster   string                   `json:"roster" binding:"required"`
	Accounts []models.UploadedAccount `json:"accounts"`
}

// CredentialsPDF godoc
// @Summary      Credential sheet for imported accounts
// @Description  Renders name, email and default password of each account. roster is "faculty" or "students".
// @Tags         uploads
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  CredentialsRequest  true  "Imported accounts"
// @Success      200   {file} file
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/credentials/pdf [post]
func (h *Handler) CredentialsPDF(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	roster, err := report.ParseRoster(req.Roster)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown roster"})
		return
	}
	password := h.defaults.Student
	if roster == report.RosterFaculty {
		password = h.defaults.Faculty
	}

	var buf bytes.Buffer
	if err := report.Credentials(&buf, roster, req.Accounts, password); err != nil {
		h.log.Error("render credentials", zap.String("roster", req.Roster), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", roster.Filename()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
