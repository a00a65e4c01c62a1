package handlers

import (
	"net/http"
	"time"

	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatusHandler struct {
	service service.StatusService
	db      *gorm.DB
	started time.Time
}

func NewStatusHandler(service service.StatusService, db *gorm.DB) *StatusHandler {
	return &StatusHandler{
		service: service,
		db:      db,
		started: time.Now(),
	}
}

// GetServers - объединенный статус игровых серверов и Discord.
// Всегда 200: деградация провайдеров уже зашита в payload.
func (h *StatusHandler) GetServers(c *gin.Context) {
	statuses := h.service.GetServers(c.Request.Context())
	c.JSON(http.StatusOK, statuses)
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	start := time.Now()

	dbStatus := "connected"
	if err := h.db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
		dbStatus = "disconnected"
	}
	latency := float64(time.Since(start).Microseconds()) / 1000

	c.JSON(http.StatusOK, gin.H{
		"status":         "online",
		"latency_ms":     latency,
		"database":       dbStatus,
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
