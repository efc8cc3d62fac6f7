package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"academia/internal/attendance"
	"academia/internal/auth"
	"academia/internal/config"
	"academia/internal/courses"
	"academia/internal/dashboard"
	"academia/internal/handler"
	"academia/internal/httpmiddleware"
	"academia/internal/store"
	"academia/internal/students"
	"academia/internal/users"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("database ready at %s", cfg.DBPath)

	if cfg.SeedSampleData {
		seeded, err := db.SeedSampleData(ctx, cfg.BcryptCost)
		if err != nil {
			return err
		}
		if seeded {
			log.Println("sample data inserted")
		}
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	var limiter httpmiddleware.Limiter
	var redisCheck handler.HealthChecker
	if redisClient != nil {
		limiter = httpmiddleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin)
		redisCheck = redisClient
		log.Printf("rate limiting via redis at %s", cfg.RedisAddr)
	} else if cfg.RateLimitPerMin > 0 {
		limiter = httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}

	signer := auth.NewSigner(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	userRepo := users.NewRepository(db.Client)
	studentRepo := students.NewRepository(db.Client)

	h := handler.New(handler.Deps{
		Signer:     signer,
		UserRepo:   userRepo,
		Users:      users.NewService(userRepo, signer, cfg.BcryptCost),
		Students:   students.NewService(studentRepo),
		Courses:    courses.NewService(courses.NewRepository(db.Client)),
		Attendance: attendance.NewService(attendance.NewRepository(db.Client), studentRepo),
		Dashboard:  dashboard.NewService(dashboard.NewRepository(db.Client)),
		DB:         db,
		Redis:      redisCheck,
	})

	r := h.Router(handler.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		HSTS:        cfg.Production(),
		FrontendDir: cfg.FrontendDir,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
