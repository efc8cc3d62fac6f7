package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"academia/internal/auth"
	"academia/internal/httpmiddleware"
)

// RouterOptions configure the HTTP surface around the handlers.
type RouterOptions struct {
	CORSOrigins []string
	Limiter     httpmiddleware.Limiter // nil disables rate limiting
	HSTS        bool
	FrontendDir string // served at / and /static when it exists
}

// Router builds the gin engine with middleware and every route.
func (h *Handler) Router(opts RouterOptions) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic serving %s %s (rid=%s): %v", c.Request.Method, c.Request.URL.Path, httpmiddleware.GetRequestID(c), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}))
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.AccessLog("/api/health", "/readyz", "/metrics"))
	r.Use(httpmiddleware.Metrics())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(httpmiddleware.SecurityHeaders(opts.HSTS))
	if opts.Limiter != nil {
		r.Use(httpmiddleware.RateLimit(opts.Limiter))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/readyz", h.Ready)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)
	}

	protected := api.Group("", auth.RequireUser(h.Signer, h.UserRepo))
	{
		protected.GET("/dashboard/stats", h.DashboardStats)

		protected.GET("/attendance", h.ListAttendance)
		protected.POST("/attendance", h.MarkAttendance)

		protected.GET("/students", h.ListStudents)
		protected.POST("/students", h.CreateStudent)

		protected.GET("/courses", h.ListCourses)
		protected.POST("/courses", h.CreateCourse)

		protected.GET("/calendar/events", h.CalendarEvents)

		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)

		protected.POST("/predictions", h.Predict)
	}

	if dir := opts.FrontendDir; dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			r.Static("/static", dir)
			r.StaticFile("/", filepath.Join(dir, "index.html"))
			log.Printf("serving frontend from %s", dir)
		} else {
			log.Printf("WARNING: frontend dir %s not found, static files disabled", dir)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", httpmiddleware.RequestIDHeader},
		ExposeHeaders: []string{httpmiddleware.RequestIDHeader},
		MaxAge:        24 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

var tagNamesOnce sync.Once

// useJSONFieldNames makes validation errors report JSON names instead of Go field names.
func useJSONFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
