package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"academia/internal/apperr"
	"academia/internal/attendance"
	"academia/internal/auth"
	"academia/internal/courses"
	"academia/internal/dashboard"
	"academia/internal/httpmiddleware"
	"academia/internal/students"
	"academia/internal/users"
)

// HealthChecker is a dependency probed by the readiness endpoint.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Deps are the services the handlers call into.
type Deps struct {
	Signer     *auth.Signer
	UserRepo   *users.Repository
	Users      *users.Service
	Students   *students.Service
	Courses    *courses.Service
	Attendance *attendance.Service
	Dashboard  *dashboard.Service
	DB         HealthChecker
	Redis      HealthChecker // nil when Redis is not configured
}

type Handler struct {
	Deps
	now func() time.Time
}

func New(d Deps) *Handler {
	return &Handler{Deps: d, now: time.Now}
}

// fail writes err as {"message": ...} with the status of its kind.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed (rid=%s): %v", c.Request.Method, c.FullPath(), httpmiddleware.GetRequestID(c), err)
	}
	c.JSON(status, gin.H{"message": apperr.Message(err)})
}

// ---------- Health ----------

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "Academia AI backend is running",
		"timestamp": h.now().Format(time.RFC3339),
	})
}

// Ready reports whether the database and, when configured, Redis answer.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbHealthy := h.DB != nil && h.DB.Healthy(ctx)
	body := gin.H{"db": dbHealthy}
	ready := dbHealthy
	if h.Redis != nil {
		redisHealthy := h.Redis.Healthy(ctx)
		body["redis"] = redisHealthy
		ready = ready && redisHealthy
	}
	status := http.StatusOK
	body["status"] = "ok"
	if !ready {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	c.JSON(status, body)
}
