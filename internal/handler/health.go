package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const readyPingTimeout = 2 * time.Second

type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
	version   string
}

func NewHealthHandler(db *gorm.DB, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: startTime,
		version:   version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

func (h *HealthHandler) uptime() int64 {
	return int64(time.Since(h.startTime).Seconds())
}

// Health reports liveness only; it never touches the store.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  h.uptime(),
	})
}

// Ready pings the store and answers 503 while it is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	store := gin.H{"driver": h.db.Dialector.Name()}

	sqlDB, err := h.db.DB()
	if err != nil {
		store["status"] = "error"
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"db":     store,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		store["status"] = "down"
		store["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"db":     store,
		})
		return
	}

	store["status"] = "up"
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"version": h.version,
		"uptime":  h.uptime(),
		"db":      store,
	})
}
