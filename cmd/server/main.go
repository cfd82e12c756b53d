package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/assesshub-api/internal/cache"
	"github.com/yourusername/assesshub-api/internal/config"
	"github.com/yourusername/assesshub-api/internal/database"
	"github.com/yourusername/assesshub-api/internal/handler"
	"github.com/yourusername/assesshub-api/internal/middleware"
	"github.com/yourusername/assesshub-api/internal/repository"
	"github.com/yourusername/assesshub-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting AssessHub API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Cache (optional) ─────────────────────────────────
	redisCache, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisCache != nil {
		defer redisCache.Close()
		log.Info().Msg("Redis cache enabled")
	}

	// ── Repositories ─────────────────────────────────────
	invitationRepo := repository.NewInvitationRepo(pool)
	candidateRepo := repository.NewCandidateRepo(pool)

	// ── Services ─────────────────────────────────────────
	invitationSvc := service.NewInvitationService(invitationRepo)
	dashboardSvc := service.NewDashboardService(invitationRepo, redisCache)

	// ── Handlers ─────────────────────────────────────────
	invitationHandler := handler.NewInvitationHandler(invitationSvc)
	candidateHandler := handler.NewCandidateHandler(candidateRepo)
	importHandler := handler.NewImportHandler(invitationSvc, candidateRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	// ── Middleware ────────────────────────────────────────
	authMiddleware := middleware.NewAuthMiddleware(cfg.AdminToken)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "assesshub-api",
			"time":    time.Now().UTC(),
		})
	})

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		// Invitations
		api.GET("/invitations", invitationHandler.List)
		api.POST("/invitations", invitationHandler.Create)
		api.POST("/invitations/bulk", invitationHandler.CreateBulk)
		api.POST("/invitations/import", importHandler.ImportInvitations)
		api.POST("/invitations/:id/resend", invitationHandler.Resend)
		api.POST("/invitations/:id/remind", invitationHandler.Remind)
		api.POST("/invitations/:id/accept", invitationHandler.Accept)
		api.POST("/invitations/:id/complete", invitationHandler.Complete)
		api.POST("/invitations/:id/expire", invitationHandler.Expire)

		// Candidates
		api.GET("/candidates", candidateHandler.List)
		api.GET("/candidates/export", candidateHandler.Export)
		api.POST("/candidates/import", importHandler.ImportCandidates)

		// Dashboard
		api.GET("/dashboard", dashboardHandler.Summary)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("AssessHub API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
