package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController renders the server-side HTML pages. Access control for
// /admin and /dashboard is done by the route guard before these run.
type PageController struct {
	LeaderboardService *service.LeaderboardService
	DashboardService   *service.DashboardService
}

func NewPageController(leaderboardService *service.LeaderboardService, dashboardService *service.DashboardService) *PageController {
	return &PageController{
		LeaderboardService: leaderboardService,
		DashboardService:   dashboardService,
	}
}

func (c *PageController) Login(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"Reason": ctx.Query("reason"),
		"From":   ctx.Query("from"),
	})
}

func (c *PageController) Leaderboard(ctx *gin.Context) {
	rows, err := c.LeaderboardService.Top(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "leaderboard.html", gin.H{"Rows": rows})
}

func (c *PageController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	attempts, err := c.DashboardService.UserAttempts(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":     user,
		"Attempts": attempts,
	})
}

func (c *PageController) Admin(ctx *gin.Context) {
	stats, err := c.DashboardService.AdminStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"User":  util.GetUserFromContext(ctx),
		"Stats": stats,
	})
}
