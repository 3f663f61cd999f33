package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/auth"
	"github.com/upasthiti/admin-console/internal/excel"
	"github.com/upasthiti/admin-console/internal/gateway"
	"github.com/upasthiti/admin-console/internal/identity"
	"github.com/upasthiti/admin-console/internal/logging"
	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/session"
	"github.com/upasthiti/admin-console/internal/view"
)

// UploadField is the multipart field the console reads uploaded files from.
const UploadField = "file"

// Backend is the part of the gateway the console pages read from.
type Backend interface {
	Counts(ctx context.Context) (*models.Counts, error)
	Faculty(ctx context.Context, uid string) (*models.FacultyRecord, error)
	AllFaculty(ctx context.Context) ([]models.FacultyRecord, error)
	FacultySubjects(ctx context.Context, facultyID string) (map[string][]models.SubjectAssignment, error)
	FacultySchedule(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error)
	Student(ctx context.Context, uid string) (*models.StudentRecord, error)
	AllStudents(ctx context.Context) ([]models.StudentRecord, error)
	Timetables(ctx context.Context) ([]models.TimetableDocument, error)
	UploadFaculty(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error)
	UploadStudents(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error)
	UploadTimetables(ctx context.Context, filename string, csv io.Reader, validFrom, validUntil string) ([]models.TimetableDocument, error)
}

// PasswordUpdater sets a new sign-in password for an identity.
type PasswordUpdater interface {
	UpdatePassword(ctx context.Context, uid, password string) error
}

// DefaultPasswords are printed on the credential sheet of a bulk import.
type DefaultPasswords struct {
	Faculty string
	Student string
}

type Handler struct {
	backend   Backend
	profiles  *session.Cache
	settings  *session.Settings
	passwords PasswordUpdater
	defaults  DefaultPasswords
	now       func() time.Time
	log       *zap.Logger
}

func NewHandler(backend Backend, profiles *session.Cache, settings *session.Settings, passwords PasswordUpdater, defaults DefaultPasswords, logger *zap.Logger) *Handler {
	return &Handler{
		backend:   backend,
		profiles:  profiles,
		settings:  settings,
		passwords: passwords,
		defaults:  defaults,
		now:       time.Now,
		log:       logging.OrNop(logger).Named("api"),
	}
}

// backendError maps a gateway failure to a response. The backend's own
// message is passed through when it sent one.
func (h *Handler) backendError(c *gin.Context, err error, what string) {
	h.log.Error("backend call failed",
		zap.String("uid", c.GetString(auth.ContextUID)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)

	var se *gateway.StatusError
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.As(err, &se):
		status := http.StatusBadGateway
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			status = se.StatusCode
		}
		msg := se.Message()
		if msg == "" {
			msg = "Failed to load " + what
		}
		c.JSON(status, gin.H{"error": msg})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load " + what})
	}
}

func (h *Handler) privacy(c *gin.Context) models.PrivacySettings {
	return h.settings.Privacy(c.Request.Context(), c.GetString(auth.ContextUID))
}

// GetAccount godoc
// @Summary      Get the signed-in administrator
// @Description  Returns the cached administrator profile, redacted per the privacy settings. "loading" is true while no profile could be fetched yet.
// @Tags         account
// @Produce      json
// @Success      200 {object} view.Account
// @Security     BearerAuth
// @Router       /admin/account [get]
func (h *Handler) GetAccount(c *gin.Context) {
	uid := c.GetString(auth.ContextUID)
	profile := h.profiles.Resolve(c.Request.Context(), uid)
	c.JSON(http.StatusOK, view.NewAccount(profile, h.privacy(c)))
}

// UpdateProfilePicture godoc
// @Summary      Replace the profile picture
// @Tags         account
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      200   {object} view.Account
// @Failure      400   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Failure      502   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/account/picture [post]
func (h *Handler) UpdateProfilePicture(c *gin.Context) {
	uid := c.GetString(auth.ContextUID)
	fh, err := c.FormFile(UploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose an image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose an image"})
		return
	}
	defer f.Close()

	profile, err := h.profiles.UpdateProfilePicture(c.Request.Context(), uid, fh.Filename, f)
	if err != nil {
		var notice *session.NoticeError
		if !errors.As(err, &notice) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": session.PictureFailedNotice})
			return
		}
		status := http.StatusBadGateway
		if errors.Is(err, session.ErrUpdateInProgress) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": notice.Message})
		return
	}
	c.JSON(http.StatusOK, view.NewAccount(profile, h.privacy(c)))
}

// GetDashboard godoc
// @Summary      Dashboard overview
// @Description  Greeting, student and faculty totals, per-rank and per-branch counts. Counts the backend does not report are 0.
// @Tags         dashboard
// @Produce      json
// @Param        tz  query  string  false  "IANA time zone of the viewer, e.g. Asia/Kolkata; server time when empty"
// @Success      200 {object} view.Dashboard
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetString(auth.ContextUID)

	now := h.now()
	if tz := c.Query("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone"})
			return
		}
		now = now.In(loc)
	}

	counts, err := h.backend.Counts(ctx)
	if err != nil {
		h.backendError(c, err, "counts")
		return
	}
	admin := h.profiles.Resolve(ctx, uid)
	c.JSON(http.StatusOK, view.NewDashboard(now, admin, counts, h.privacy(c)))
}

// GetSettings godoc
// @Summary      Console settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} models.AppSettings
// @Security     BearerAuth
// @Router       /admin/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Get(c.Request.Context(), c.GetString(auth.ContextUID)))
}

// SaveSettings godoc
// @Summary      Save console settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  models.AppSettings  true  "Settings"
// @Success      200   {object} models.AppSettings
// @Failure      400   {object} map[string]string
// @Failure      500   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/settings [put]
func (h *Handler) SaveSettings(c *gin.Context) {
	uid := c.GetString(auth.ContextUID)
	var req models.AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.settings.Save(c.Request.Context(), uid, req); err != nil {
		if errors.Is(err, session.ErrInvalidSettings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings"})
			return
		}
		h.log.Error("save settings", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, req)
}

// SwitchToPassword godoc
// @Summary      Switch to password sign-in
// @Description  Sets a password on the identity and records email/password as the sign-in method.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  identity.PasswordSwitchForm  true  "New password"
// @Success      200   {object} models.AppSettings
// @Failure      400   {object} map[string]string
// @Failure      502   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/settings/password [post]
func (h *Handler) SwitchToPassword(c *gin.Context) {
	uid := c.GetString(auth.ContextUID)
	ctx := c.Request.Context()

	var form identity.PasswordSwitchForm
	_ = c.ShouldBindJSON(&form)
	if err := form.Validate(); err != nil {
		var fe *identity.FormError
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.passwords.UpdatePassword(ctx, uid, form.NewPassword); err != nil {
		h.log.Error("update password", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update password"})
		return
	}
	updated, err := h.settings.SetAuthMethod(ctx, uid, session.AuthMethodEmail, "")
	if err != nil {
		h.log.Error("record auth method", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// openUpload reads the uploaded roster file and converts it to CSV if needed.
func openUpload(c *gin.Context) (string, io.Reader, func(), error) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return "", nil, nil, fmt.Errorf("missing %q file: %w", UploadField, err)
	}
	return prepare(fh)
}

func prepare(fh *multipart.FileHeader) (string, io.Reader, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return "", nil, nil, err
	}
	name, r, err := excel.PrepareUpload(fh.Filename, f)
	if err != nil {
		f.Close()
		return "", nil, nil, err
	}
	return name, r, func() { f.Close() }, nil
}

func uploadError(c *gin.Context, err error) {
	if errors.Is(err, excel.ErrUnsupportedFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a .csv or .xlsx file"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a file to upload"})
}
