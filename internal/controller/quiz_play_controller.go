package controller

import (
	"lexi_backend/internal/service"
	"net/http"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizPlayController struct {
	PlayService *service.QuizPlayService
}

func NewQuizPlayController(playService *service.QuizPlayService) *QuizPlayController {
	return &QuizPlayController{PlayService: playService}
}

// Start godoc
// @Summary Start a quiz
// @Description Questions come in stored order with shuffled choices. Correctness is never included.
// @Description The success body is the bare result; errors use the usual envelope.
// @Tags quiz
// @Produce json
// @Param quizId query int true "quiz id"
// @Success 200 {object} service.StartResult
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/start [get]
func (c *QuizPlayController) Start(ctx *gin.Context) {
	quizID, ok := util.ParseID(ctx.Query("quizId"))
	if !ok {
		util.BadRequest(ctx, "quizId must be a positive integer")
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.PlayService.Start(user.UserID, quizID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Submit godoc
// @Summary Submit answers for a quiz
// @Description One attempt per user and quiz. Unanswered questions count as wrong.
// @Description The success body is the bare result; errors use the usual envelope.
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body service.SubmitInput true "answers"
// @Success 200 {object} service.SubmitResult
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "already attempted"
// @Router /api/quiz/submit [post]
func (c *QuizPlayController) Submit(ctx *gin.Context) {
	var req service.SubmitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.PlayService.Submit(ctx.Request.Context(), user.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
