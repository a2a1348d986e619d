package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary Own quiz attempts
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.DashboardService.UserAttempts(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"user": gin.H{
			"id":    user.UserID,
			"name":  user.Name,
			"email": user.Email,
		},
		"attempts": attempts,
	})
}

// @Summary Admin counters
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Failure 403 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *DashboardController) GetAdminDashboard(ctx *gin.Context) {
	stats, err := c.DashboardService.AdminStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
