package server

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/assessments"
	"aerogap-backend/internal/documents"
	"aerogap-backend/internal/quiz"
	"aerogap-backend/internal/reports"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/server/middleware"
	"aerogap-backend/internal/shared/server/respond"
	"aerogap-backend/internal/shared/storage/db"
)

const submitRateLimitGroup = "SUBMIT"

// RouterDeps carries the feature handlers mounted by NewRouter.
type RouterDeps struct {
	Config config.Config
	// DB is pinged by the health check when set.
	DB                *sql.DB
	AssessmentHandler *assessments.Handler
	DocumentHandler   *documents.Handler
	ReportHandler     *reports.Handler
	QuizHandler       *quiz.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	limiter := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":            {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			submitRateLimitGroup: {Rate: cfg.SubmitRateLimitRPS, Burst: cfg.SubmitRateLimitBurst},
		},
		GroupFor: rateLimitGroup,
	})

	api := r.Group("/api/v1")
	api.GET("/health", health(deps.DB))

	public := api.Group("", limiter)
	if deps.QuizHandler != nil {
		deps.QuizHandler.RegisterRoutes(public)
	}

	authed := api.Group("", middleware.Auth(middleware.AuthConfig{
		Secret:      []byte(cfg.JWTSecret),
		AllowGuests: cfg.AllowGuests,
	}), limiter)
	registerMeRoutes(authed, cfg.AdminEmails)
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(authed)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(authed)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(authed)
	}

	admin := authed.Group("/admin", middleware.RequireAdmin(cfg.AdminEmails))
	if deps.QuizHandler != nil {
		deps.QuizHandler.RegisterAdminRoutes(admin)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterAdminRoutes(admin)
	}

	return r
}

func health(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		if err := db.Check(c.Request.Context(), database, 2*time.Second); err != nil {
			respond.JSON(c, http.StatusServiceUnavailable, gin.H{"ok": false, "database": "unavailable"})
			return
		}
		respond.OK(c, gin.H{"ok": true, "database": "ok"})
	}
}

// rateLimitGroup puts writes that create submissions, uploads and reports in
// the stricter group.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch path := c.FullPath(); {
	case path == "/api/v1/quiz/submissions",
		path == "/api/v1/documents",
		path == "/api/v1/reports",
		strings.HasSuffix(path, "/full-review"):
		return submitRateLimitGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
