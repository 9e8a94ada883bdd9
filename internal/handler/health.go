package handler

import (
	"net/http"
	"runtime"
	"time"

	"backoffice/config"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type HealthHandler struct {
	healthStatus *service.HealthService
	config       *config.Configuration
	startAt      time.Time
}

func NewHealthHandler(status *service.HealthService, config *config.Configuration) *HealthHandler {
	return &HealthHandler{healthStatus: status, config: config, startAt: time.Now()}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Readiness 啟動完成且 MongoDB / Redis 可連線
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.healthStatus.IsReady(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Version 版本/環境快照（含 uptime）
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, RuntimeInfo{
		Env:       h.config.App.Env,
		Name:      h.config.App.Name,
		Version:   h.config.App.Version,
		GoVersion: runtime.Version(),
		StartAt:   h.startAt,
		Uptime:    time.Since(h.startAt),
	})
}
