package controller

import (
	"lexi_backend/internal/service"
	"lexi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Param body body CategoryRequest true "category"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	category, err := c.CategoryService.Create(req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// @Summary Rename a category
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Param body body CategoryRequest true "category"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	category, err := c.CategoryService.Update(id, req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// @Summary Delete a category
// @Tags admin
// @Param id path int true "category id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.CategoryService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
