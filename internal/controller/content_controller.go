package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController serves published learning content to learners.
type ContentController struct {
	MaterialService *service.MaterialService
	QuizService     *service.QuizService
}

func NewContentController(materialService *service.MaterialService, quizService *service.QuizService) *ContentController {
	return &ContentController{
		MaterialService: materialService,
		QuizService:     quizService,
	}
}

// @Summary Published materials
// @Tags content
// @Produce json
// @Param category query string false "category slug"
// @Success 200 {object} util.Response
// @Router /api/materials [get]
func (c *ContentController) ListMaterials(ctx *gin.Context) {
	materials, err := c.MaterialService.ListPublished(ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary Published material by slug
// @Tags content
// @Produce json
// @Param slug path string true "material slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/materials/{slug} [get]
func (c *ContentController) GetMaterial(ctx *gin.Context) {
	material, err := c.MaterialService.GetPublishedBySlug(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary Published quizzes
// @Description Signed-in users also get an attempted flag per quiz.
// @Tags content
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *ContentController) ListQuizzes(ctx *gin.Context) {
	var userID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	quizzes, err := c.QuizService.ListPublished(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}
