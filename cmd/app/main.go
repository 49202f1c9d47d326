package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/analytics"
	"github.com/cxmpoundV/TaskManagementAPI/internal/cache"
	"github.com/cxmpoundV/TaskManagementAPI/internal/clock"
	"github.com/cxmpoundV/TaskManagementAPI/internal/config"
	"github.com/cxmpoundV/TaskManagementAPI/internal/db"
	httpServer "github.com/cxmpoundV/TaskManagementAPI/internal/http"
	"github.com/cxmpoundV/TaskManagementAPI/internal/http/handlers"
	"github.com/cxmpoundV/TaskManagementAPI/internal/http/middleware"
	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"
	"github.com/cxmpoundV/TaskManagementAPI/internal/mailer"
	"github.com/cxmpoundV/TaskManagementAPI/internal/notifier"
	"github.com/cxmpoundV/TaskManagementAPI/internal/repository"
	"github.com/cxmpoundV/TaskManagementAPI/internal/scheduler"
	"github.com/cxmpoundV/TaskManagementAPI/internal/service"
	"github.com/cxmpoundV/TaskManagementAPI/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	ctx := context.Background()
	pool := db.Connect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	payloadCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	middleware.InitRateLimiter(payloadCache.Client())

	taskStore := repository.NewTaskRepository(pool)
	userStore := repository.NewUserRepository(pool)
	clk := clock.System{}

	engine := analytics.New(taskStore, clk)
	sched := scheduler.New(taskStore, clk)

	smtp := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		Sender:   cfg.SenderEmail,
	})

	hub := ws.NewHub()
	notify := notifier.New(taskStore, smtp, clk)
	notify.IsolatedMessages = cfg.IsolatedNotifications
	notify.SetPublisher(hub)

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(engine, sched, notify, userStore, payloadCache, hub)
	httpServer.RegisterRoutes(r, h, pool, version)

	var runner *notifier.Runner
	if cfg.NotifyInterval > 0 {
		runner = notifier.NewRunner(userStore, notify, cfg.NotifyInterval)
		runner.Start(ctx)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if runner != nil {
		runner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
