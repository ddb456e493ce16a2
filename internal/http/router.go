// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wellnesshub/go-wellness-backend/internal/config"
	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/http/handlers"
	"github.com/wellnesshub/go-wellness-backend/internal/http/middleware"
	"github.com/wellnesshub/go-wellness-backend/internal/mealplan"
	"github.com/wellnesshub/go-wellness-backend/internal/repo"
	"github.com/wellnesshub/go-wellness-backend/internal/sentiment"
	"github.com/wellnesshub/go-wellness-backend/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// journalRepoShim adapts the repository free functions to the
// services.JournalRepo interface expected by the JournalService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type journalRepoShim struct{}

// CreateEntry proxies repo.CreateEntry.
func (journalRepoShim) CreateEntry(ctx context.Context, db *gorm.DB, e *domain.JournalEntry) (*domain.JournalEntry, error) {
	return repo.CreateEntry(ctx, db, e)
}

// ListEntries proxies repo.ListEntries.
func (journalRepoShim) ListEntries(ctx context.Context, db *gorm.DB, userID string) ([]domain.JournalEntry, error) {
	return repo.ListEntries(ctx, db, userID)
}

// ListEntriesPage proxies repo.ListEntriesPage (pagination support).
func (journalRepoShim) ListEntriesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.JournalEntry, error) {
	return repo.ListEntriesPage(ctx, db, userID, offset, limit)
}

// CountEntries proxies repo.CountEntries (pagination support).
func (journalRepoShim) CountEntries(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountEntries(ctx, db, userID)
}

// GetEntry proxies repo.GetEntry.
func (journalRepoShim) GetEntry(ctx context.Context, db *gorm.DB, id, userID string) (*domain.JournalEntry, error) {
	return repo.GetEntry(ctx, db, id, userID)
}

// UpdateEntry proxies repo.UpdateEntry.
func (journalRepoShim) UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, e *domain.JournalEntry) error {
	return repo.UpdateEntry(ctx, db, id, userID, e)
}

// DeleteEntry proxies repo.DeleteEntry.
func (journalRepoShim) DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteEntry(ctx, db, id, userID)
}

// trackerRepoShim adapts the repository free functions to services.TrackerRepo.
type trackerRepoShim struct{}

// UpsertDailyLog proxies repo.UpsertDailyLog.
func (trackerRepoShim) UpsertDailyLog(ctx context.Context, db *gorm.DB, l *domain.DailyLog) (*domain.DailyLog, error) {
	return repo.UpsertDailyLog(ctx, db, l)
}

// GetDailyLog proxies repo.GetDailyLog.
func (trackerRepoShim) GetDailyLog(ctx context.Context, db *gorm.DB, userID, date string) (*domain.DailyLog, error) {
	return repo.GetDailyLog(ctx, db, userID, date)
}

// ListDailyLogs proxies repo.ListDailyLogs.
func (trackerRepoShim) ListDailyLogs(ctx context.Context, db *gorm.DB, userID string) ([]domain.DailyLog, error) {
	return repo.ListDailyLogs(ctx, db, userID)
}

// ListDailyLogsSince proxies repo.ListDailyLogsSince.
func (trackerRepoShim) ListDailyLogsSince(ctx context.Context, db *gorm.DB, userID, date string) ([]domain.DailyLog, error) {
	return repo.ListDailyLogsSince(ctx, db, userID, date)
}

// CountDailyLogs proxies repo.CountDailyLogs.
func (trackerRepoShim) CountDailyLogs(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountDailyLogs(ctx, db, userID)
}

// plannerRepoShim adapts the repository free functions to services.PlannerRepo.
type plannerRepoShim struct{}

// CreateMealPlan proxies repo.CreateMealPlan.
func (plannerRepoShim) CreateMealPlan(ctx context.Context, db *gorm.DB, p *domain.MealPlan) (*domain.MealPlan, error) {
	return repo.CreateMealPlan(ctx, db, p)
}

// GetMealPlan proxies repo.GetMealPlan.
func (plannerRepoShim) GetMealPlan(ctx context.Context, db *gorm.DB, id, userID string) (*domain.MealPlan, error) {
	return repo.GetMealPlan(ctx, db, id, userID)
}

// ListMealPlans proxies repo.ListMealPlans.
func (plannerRepoShim) ListMealPlans(ctx context.Context, db *gorm.DB, userID string) ([]domain.MealPlan, error) {
	return repo.ListMealPlans(ctx, db, userID)
}

// UpdateMealPlanBody proxies repo.UpdateMealPlanBody.
func (plannerRepoShim) UpdateMealPlanBody(ctx context.Context, db *gorm.DB, id, userID, plan string) error {
	return repo.UpdateMealPlanBody(ctx, db, id, userID, plan)
}

// DeleteMealPlan proxies repo.DeleteMealPlan.
func (plannerRepoShim) DeleteMealPlan(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteMealPlan(ctx, db, id, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // scrubbed in case a deployment fronts the API with key auth
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db
	journalSvc := &services.JournalService{
		DB:              db,
		Repo:            journalRepoShim{},
		Analyzer:        sentiment.NewAnalyzer(),
		MaxContentRunes: cfg.MaxContentRunes,
	}
	trackerSvc := &services.TrackerService{
		DB:   db,
		Repo: trackerRepoShim{},
	}
	plannerSvc := &services.PlannerService{
		DB:       db,
		Repo:     plannerRepoShim{},
		Gen:      mealplan.NewGenerator(nil, nil),
		PlanDays: cfg.PlanDays,
	}
	h := handlers.New(journalSvc, trackerSvc, plannerSvc)

	// Text, CSV, and PDF downloads compress well.
	zip := gzip.Gzip(gzip.DefaultCompression)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Journal
		api.POST("/journal/entries", h.CreateEntry)
		api.GET("/journal/entries", h.ListEntries)
		api.PUT("/journal/entries/:id", h.UpdateEntry)
		api.DELETE("/journal/entries/:id", h.DeleteEntry)
		api.GET("/journal/search", h.SearchEntries)
		api.GET("/journal/analysis", h.JournalAnalysis)
		api.GET("/journal/export", zip, h.ExportJournal)

		// Dashboard
		api.PUT("/dashboard/logs", h.SaveDailyLog)
		api.GET("/dashboard/logs", h.ListDailyLogs)
		api.GET("/dashboard/logs/:date", h.GetDailyLog)
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/dashboard/export.csv", zip, h.ExportLogsCSV)

		// Fitness
		api.POST("/fitness/profile", h.CalculateProfile)
		api.POST("/fitness/plans", h.GeneratePlan)
		api.GET("/fitness/plans", h.ListPlans)
		api.GET("/fitness/plans/:id", h.GetPlan)
		api.POST("/fitness/plans/:id/swap", h.SwapMeal)
		api.DELETE("/fitness/plans/:id", h.DeletePlan)
		api.GET("/fitness/plans/:id/pdf", h.ExportPlanPDF)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
