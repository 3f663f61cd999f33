package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/upasthiti/admin-console/docs"
	"github.com/upasthiti/admin-console/internal/auth"
	"github.com/upasthiti/admin-console/internal/cdn"
)

const requestIDHeader = "X-Request-ID"

// Server collects what the router mounts.
type Server struct {
	API    *Handler
	Auth   *auth.Handler
	Tokens *auth.Tokens
	// Signer serves upload credentials when the image-host secret is set.
	Signer  *cdn.Signer
	Folder  string
	Health  func() error
	Metrics prometheus.Gatherer
}

// @title           Upasthiti Admin Console API
// @version         1.0
// @description     Server side of the Upasthiti administrator console.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(s Server) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if s.Health != nil {
			if err := s.Health(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "db_ping_error"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", s.Auth.Login)
	r.GET("/auth/google/login", s.Auth.GoogleLogin)
	r.GET("/auth/google/callback", s.Auth.GoogleCallback)
	r.POST("/auth/refresh", s.Auth.Refresh)
	r.POST("/auth/password-reset", s.Auth.PasswordReset)

	if s.Signer != nil {
		r.POST("/api/signprofilepicture", SignUpload(s.Signer, s.Folder))
	}

	// Protected
	r.POST("/auth/logout", auth.Middleware(s.Tokens), s.Auth.Logout)

	admin := r.Group("/admin")
	admin.Use(auth.Middleware(s.Tokens))
	{
		admin.GET("/account", s.API.GetAccount)
		admin.POST("/account/picture", s.API.UpdateProfilePicture)
		admin.GET("/dashboard", s.API.GetDashboard)

		admin.GET("/faculty", s.API.ListFaculty)
		admin.GET("/faculty/export", s.API.ExportFaculty)
		admin.POST("/faculty/upload", s.API.UploadFaculty)
		admin.GET("/faculty/:uid", s.API.GetFaculty)
		admin.GET("/faculty/:uid/subjects", s.API.GetFacultySubjects)
		admin.GET("/faculty/:uid/schedule", s.API.GetFacultySchedule)

		admin.GET("/students", s.API.ListStudents)
		admin.GET("/students/export", s.API.ExportStudents)
		admin.POST("/students/upload", s.API.UploadStudents)
		admin.GET("/students/:uid", s.API.GetStudent)

		admin.GET("/timetables", s.API.ListTimetables)
		admin.POST("/timetables/upload", s.API.UploadTimetables)

		admin.GET("/settings", s.API.GetSettings)
		admin.PUT("/settings", s.API.SaveSettings)
		admin.POST("/settings/password", s.API.SwitchToPassword)

		admin.POST("/credentials/pdf", s.API.CredentialsPDF)
	}

	return r
}

// RequestID tags every request with an id, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

type signRequest struct {
	Folder string `json:"folder"`
}

// SignUpload godoc
// @Summary      Sign an image upload
// @Description  Issues a one-shot credential for the image host. Only the configured folder can be signed; an empty folder means that one.
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body  signRequest  false  "Target folder"
// @Success      200   {object} models.UploadCredential
// @Failure      400   {object} map[string]string
// @Router       /api/signprofilepicture [post]
func SignUpload(signer *cdn.Signer, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		}
		if req.Folder != "" && req.Folder != folder {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not allowed"})
			return
		}
		c.JSON(http.StatusOK, signer.Sign(folder))
	}
}
