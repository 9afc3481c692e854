package handlers

import (
	"net/http"

	"spbu-service/internal/services"
	"spbu-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Get serves the dashboard for one window (today / weekly / 30days / all).
func (h *DashboardHandler) Get(c *gin.Context) {
	data, err := h.Dashboard.GetDashboard(c.DefaultQuery("view", "today"))
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal memuat dashboard: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(data, "Dashboard berhasil dimuat"))
}
