package http

import (
	"os"
	"strconv"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/http/handlers"
	"github.com/cxmpoundV/TaskManagementAPI/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the ops surface onto the router. The handler carries
// the engine components; db is only needed for health checks.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, db *pgxpool.Pool, version string) {
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// health checks bypass rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Metrics(), middleware.RateLimit(apiRateLimit, apiRateWindow))

	auth := v1.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	ops := v1.Group("/ops")
	ops.Use(middleware.JWT())
	ops.GET("/statistics", h.Statistics)
	ops.GET("/report", h.Report)
	ops.GET("/export", h.ExportCSV)
	ops.GET("/visualize", h.Visualize)
	ops.GET("/schedule", h.Schedule)
	ops.POST("/notify", h.Notify)

	// digest push channel; token is validated inside the handler
	r.GET("/ws", h.WS)
}
