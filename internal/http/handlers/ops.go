package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cxmpoundV/TaskManagementAPI/internal/analytics"
	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"

	"github.com/gin-gonic/gin"
)

// Statistics returns aggregate task statistics for the authenticated owner.
func (h *Handler) Statistics(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("stats:%d", userID)
	var cached analytics.Statistics
	if h.Cache.Get(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, &cached)
		return
	}

	stats, err := h.Engine.GetTaskStatistics(ctx, userID)
	if err != nil {
		logger.Error("statistics failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate statistics"})
		return
	}

	h.Cache.Set(ctx, cacheKey, stats)
	c.JSON(http.StatusOK, stats)
}

// Report returns the composite task report for the authenticated owner.
func (h *Handler) Report(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("report:%d", userID)
	var cached analytics.Report
	if h.Cache.Get(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, &cached)
		return
	}

	report, err := h.Engine.GenerateTaskReport(ctx, userID)
	if err != nil {
		logger.Error("report failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	h.Cache.Set(ctx, cacheKey, report)
	c.JSON(http.StatusOK, report)
}

// ExportCSV streams the owner's full task set as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	export, err := h.Engine.ExportTasks(c.Request.Context(), userID)
	if err != nil {
		logger.Error("export failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export tasks"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=task_data.csv")
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer); err != nil {
		logger.Error("export write failed", "user_id", userID, "error", err)
	}
}

// Visualize renders the owner's priority distribution as a PNG pie chart.
func (h *Handler) Visualize(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	export, err := h.Engine.ExportTasks(c.Request.Context(), userID)
	if err != nil {
		logger.Error("visualize export failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export tasks"})
		return
	}

	png, err := analytics.RenderPriorityChart(export)
	if err != nil {
		logger.Error("visualize render failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Schedule suggests start dates for every pending task across all owners.
func (h *Handler) Schedule(c *gin.Context) {
	scheduled, err := h.Scheduler.ScheduleTasks(c.Request.Context())
	if err != nil {
		logger.Error("schedule failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to schedule tasks"})
		return
	}
	c.JSON(http.StatusOK, scheduled)
}

// Notify runs the notifier for the authenticated owner's email. Delivery is
// best-effort, at-most-once: on a transport failure the computed records are
// returned with a 502.
func (h *Handler) Notify(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	ctx := c.Request.Context()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	notifications, err := h.Notifier.SendNotifications(ctx, user.Email)
	if err != nil {
		logger.Error("notify failed", "email", user.Email, "error", err)
		if errors.Is(err, domain.ErrDeliveryFailure) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":         "failed to deliver notifications",
				"notifications": notifications,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
