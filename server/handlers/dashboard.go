package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/services"
)

// DashboardHandler сводка для панели
type DashboardHandler struct {
	*BaseHandler
	dashboard *services.DashboardService
}

// NewDashboardHandler создает обработчик панели
func NewDashboardHandler(base *BaseHandler, dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboard: dashboard}
}

// HandleSummary сводка по всем проектам и последним загрузкам
func (h *DashboardHandler) HandleSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary()
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
