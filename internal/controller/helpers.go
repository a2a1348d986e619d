package controller

import (
	"errors"
	"lexi_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// parseIDParam writes a 400 and returns false when the path id is not a positive integer.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto the HTTP error taxonomy. Anything
// unknown is logged and answered with a bare 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotFound), errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidQuiz),
		errors.Is(err, util.ErrInvalidAnswer),
		errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrCategoryExists),
		errors.Is(err, util.ErrMaterialExists),
		errors.Is(err, util.ErrAlreadyAttempted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
