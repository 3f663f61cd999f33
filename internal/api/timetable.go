package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/timetable"
)

// Validity window applied when an upload does not name one.
const (
	DefaultValidFrom  = "2027-01-01"
	DefaultValidUntil = "2028-01-01"
)

// ListTimetables godoc
// @Summary      Timetables by department and section
// @Description  One timetable per department, section, semester and validity window; each day's periods are ordered and resolved to display tags.
// @Tags         timetables
// @Produce      json
// @Param        search  query  string  false  "Subject or teacher contains"
// @Success      200 {array}  timetable.DepartmentView
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/timetables [get]
func (h *Handler) ListTimetables(c *gin.Context) {
	docs, err := h.backend.Timetables(c.Request.Context())
	if err != nil {
		h.backendError(c, err, "timetables")
		return
	}
	ix := timetable.BuildIndex(docs)
	c.JSON(http.StatusOK, ix.View(c.Query("search"), models.FullWeek, models.StandardPeriods))
}

// TimetableUploadResponse lists what an upload created and the merged view.
type TimetableUploadResponse struct {
	Created     int                        `json:"created"`
	Replaced    int                        `json:"replaced"`
	Departments []timetable.DepartmentView `json:"departments"`
}

// UploadTimetables godoc
// @Summary      Upload timetables
// @Description  Accepts a .csv or .xlsx file. Uploaded timetables replace any existing one with the same department, section, semester and validity window.
// @Tags         timetables
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "Timetable sheet"
// @Param        validFrom   formData  string  false  "YYYY-MM-DD, default 2027-01-01"
// @Param        validUntil  formData  string  false  "YYYY-MM-DD, default 2028-01-01"
// @Success      200 {object} TimetableUploadResponse
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/timetables/upload [post]
func (h *Handler) UploadTimetables(c *gin.Context) {
	ctx := c.Request.Context()
	validFrom := c.DefaultPostForm("validFrom", DefaultValidFrom)
	validUntil := c.DefaultPostForm("validUntil", DefaultValidUntil)
	if validFrom == "" {
		validFrom = DefaultValidFrom
	}
	if validUntil == "" {
		validUntil = DefaultValidUntil
	}
	from, errFrom := models.ParseDate(validFrom)
	until, errUntil := models.ParseDate(validUntil)
	if errFrom != nil || errUntil != nil || until.Before(from.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid validity window"})
		return
	}

	existing, err := h.backend.Timetables(ctx)
	if err != nil {
		h.log.Warn("load timetables before upload", zap.Error(err))
		existing = nil
	}

	name, csv, done, err := openUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}
	defer done()

	created, err := h.backend.UploadTimetables(ctx, name, csv, from.ISO(), until.ISO())
	if err != nil {
		h.backendError(c, err, "timetable upload")
		return
	}

	ix := timetable.BuildIndex(existing)
	resp := TimetableUploadResponse{Created: len(created)}
	for _, doc := range created {
		if ix.Put(doc) {
			resp.Replaced++
		}
	}
	resp.Departments = ix.View("", models.FullWeek, models.StandardPeriods)
	c.JSON(http.StatusOK, resp)
}
