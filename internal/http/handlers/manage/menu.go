package manage

import (
	"strconv"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

var menuErrorRules = []mappedHandlerError{
	{target: service.ErrMenuNotFound, code: response.CodeNotFound, key: "error.menu_not_found"},
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, key: "error.menu_item_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, key: "error.category_not_found"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

func respondMenuError(c *gin.Context, err error) {
	respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.menu_save_failed")
}

// requireManageMenu 校验当前用户可管理菜单所属餐厅
func (h *Handler) requireManageMenu(c *gin.Context, menuID uint) (*models.Menu, bool) {
	menu, err := h.MenuService.GetMenu(menuID)
	if err != nil {
		respondMenuError(c, err)
		return nil, false
	}
	if _, ok := h.requireManageRestaurant(c, menu.RestaurantID); !ok {
		return nil, false
	}
	return menu, true
}

// requireManageItem 校验当前用户可管理菜品所属餐厅
func (h *Handler) requireManageItem(c *gin.Context, itemID uint) (*models.MenuItem, bool) {
	item, err := h.MenuService.GetItem(itemID)
	if err != nil {
		respondMenuError(c, err)
		return nil, false
	}
	if _, ok := h.requireManageMenu(c, item.MenuID); !ok {
		return nil, false
	}
	return item, true
}

// MenuUpsertRequest 菜单创建/更新请求
type MenuUpsertRequest struct {
	RestaurantID uint    `json:"restaurant_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
}

// CreateMenu 创建菜单
func (h *Handler) CreateMenu(c *gin.Context) {
	var req MenuUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.RestaurantID == 0 || req.Name == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageRestaurant(c, req.RestaurantID); !ok {
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	menu, err := h.MenuService.CreateMenu(req.RestaurantID, *req.Name, description)
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, menu)
}

// UpdateMenu 更新菜单
func (h *Handler) UpdateMenu(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageMenu(c, uint(menuID)); !ok {
		return
	}
	var req MenuUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	menu, err := h.MenuService.UpdateMenu(uint(menuID), req.Name, req.Description)
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, menu)
}

// DeleteMenu 删除菜单
func (h *Handler) DeleteMenu(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageMenu(c, uint(menuID)); !ok {
		return
	}

	if err := h.MenuService.DeleteMenu(uint(menuID)); err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// MenuItemUpsertRequest 菜品创建/更新请求
type MenuItemUpsertRequest struct {
	MenuID      uint          `json:"menu_id"`
	CategoryID  *uint         `json:"category_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Price       *models.Money `json:"price"`
	IsAvailable *bool         `json:"is_available"`
}

// CreateMenuItem 创建菜品
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.MenuID == 0 || req.Name == "" || req.Price == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageMenu(c, req.MenuID); !ok {
		return
	}

	item, err := h.MenuService.CreateItem(service.UpsertMenuItemInput{
		MenuID:      req.MenuID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem 更新菜品（含上下架）
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageItem(c, uint(itemID)); !ok {
		return
	}
	var req MenuItemUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.MenuService.UpdateItem(uint(itemID), service.UpsertMenuItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageItem(c, uint(itemID)); !ok {
		return
	}

	if err := h.MenuService.DeleteItem(uint(itemID)); err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// IngredientRequest 配料创建请求
type IngredientRequest struct {
	Name        string `json:"name" binding:"required"`
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
}

// AddMenuItemIngredient 添加菜品配料
func (h *Handler) AddMenuItemIngredient(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageItem(c, uint(itemID)); !ok {
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	ingredient, err := h.MenuService.AddIngredient(service.IngredientInput{
		MenuItemID:  uint(itemID),
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, ingredient)
}

// RemoveMenuItemIngredient 删除菜品配料
func (h *Handler) RemoveMenuItemIngredient(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageItem(c, uint(itemID)); !ok {
		return
	}
	ingredientID, err := strconv.ParseUint(c.Param("ingredient_id"), 10, 64)
	if err != nil || ingredientID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.MenuService.RemoveIngredient(uint(ingredientID)); err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
