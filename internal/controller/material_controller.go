package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

type CreateMaterialRequest struct {
	Title      string `json:"title" binding:"required"`
	Slug       string `json:"slug"`
	ContentMD  string `json:"contentMd" binding:"required"`
	CategoryID *uint  `json:"categoryId"`
	Published  *bool  `json:"published"`
}

// UpdateMaterialRequest is a partial update. An explicit null categoryId
// detaches the material from its category.
type UpdateMaterialRequest struct {
	Title      *string            `json:"title"`
	Slug       *string            `json:"slug"`
	ContentMD  *string            `json:"contentMd"`
	CategoryID service.OptionalID `json:"categoryId" swaggertype:"integer"`
	Published  *bool              `json:"published"`
}

// @Summary List all materials, drafts included
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	materials, err := c.MaterialService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

func (c *MaterialController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	material, err := c.MaterialService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary Create a material
// @Tags admin
// @Accept json
// @Produce json
// @Param body body CreateMaterialRequest true "material"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "slug taken"
// @Router /api/admin/materials [post]
func (c *MaterialController) Create(ctx *gin.Context) {
	var req CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user := util.GetUserFromContext(ctx)
	material, err := c.MaterialService.Create(user.UserID, service.MaterialInput{
		Title:      req.Title,
		Slug:       req.Slug,
		ContentMD:  req.ContentMD,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary Partially update a material
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "material id"
// @Param body body UpdateMaterialRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [patch]
func (c *MaterialController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	material, err := c.MaterialService.Update(id, service.MaterialPatch{
		Title:      req.Title,
		Slug:       req.Slug,
		ContentMD:  req.ContentMD,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

func (c *MaterialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.MaterialService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
