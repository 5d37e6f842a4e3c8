package manage

import (
	"strconv"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryExists, code: response.CodeBadRequest, key: "error.category_exists"},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest, key: "error.category_in_use"},
	{target: service.ErrNotFound, code: response.CodeBadRequest, key: "error.bad_request"},
}

func respondCategoryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
}

// CategoryUpsertRequest 分类创建/更新请求
type CategoryUpsertRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Name == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	category, err := h.CategoryService.Create(*req.Name, description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(uint(categoryID), req.Name, req.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（分类下有菜品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
