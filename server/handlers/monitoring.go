package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/monitoring"
)

// MonitoringHandler проверки здоровья
type MonitoringHandler struct {
	*BaseHandler
	health *monitoring.HealthChecker
}

// NewMonitoringHandler создает обработчик мониторинга
func NewMonitoringHandler(base *BaseHandler, health *monitoring.HealthChecker) *MonitoringHandler {
	return &MonitoringHandler{BaseHandler: base, health: health}
}

// HandleHealth полная проверка здоровья. Нездоровая система отвечает 503,
// чтобы балансировщик вывел узел из ротации.
func (h *MonitoringHandler) HandleHealth(c *gin.Context) {
	result := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if result.Status == monitoring.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}

// HandleLiveness простая проверка живости процесса
func (h *MonitoringHandler) HandleLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
