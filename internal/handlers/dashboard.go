package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/dto"
	apierrors "github.com/kyildiz/user-admin-api/internal/errors"
	"github.com/kyildiz/user-admin-api/internal/services"
)

// DashboardHandler serves admin overview data.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats returns the dashboard counters.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardStatsDTO{
		TotalUsers:  stats.TotalUsers,
		ActiveUsers: stats.ActiveUsers,
		AdminCount:  stats.AdminCount,
		TotalRoles:  stats.TotalRoles,
	})
}

// GetRecentUsers returns the newest accounts.
func (h *DashboardHandler) GetRecentUsers(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(constants.DefaultRecentUserCount)))

	users, err := h.dashboardService.RecentUsers(count)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch recent users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}
