package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetStats returns the landing page snapshot
// GET /api/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor := middleware.GetActor(c)
	resp, err := h.dashboardService.GetStats(actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}
