package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// @Summary Top 10 attempts
// @Description Ordered by score, then shorter duration, then most recent.
// @Tags leaderboard
// @Produce json
// @Success 200 {object} util.Response{data=[]repository.LeaderboardRow}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	rows, err := c.LeaderboardService.Top(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
