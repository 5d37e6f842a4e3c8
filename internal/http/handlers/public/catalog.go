package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRestaurants 餐厅列表
func (h *Handler) ListRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	restaurants, total, err := h.RestaurantService.List(repository.RestaurantListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.restaurant_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, restaurants, pagination)
}

// GetRestaurant 餐厅详情
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	restaurant, err := h.RestaurantService.GetByID(uint(restaurantID))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.restaurant_fetch_failed", err)
		return
	}
	response.Success(c, restaurant)
}

// ListRestaurantMenus 餐厅菜单列表
func (h *Handler) ListRestaurantMenus(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	menus, err := h.MenuService.ListByRestaurant(uint(restaurantID))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	response.Success(c, menus)
}

// GetMenu 菜单详情（含菜品）
func (h *Handler) GetMenu(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 64)
	if err != nil || menuID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	menu, err := h.MenuService.GetMenu(uint(menuID))
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	response.Success(c, menu)
}

// ListMenuItems 菜品列表
func (h *Handler) ListMenuItems(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 64)
	if err != nil || menuID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.MenuService.ListItems(repository.MenuItemListFilter{
		Page:          page,
		PageSize:      pageSize,
		MenuID:        uint(menuID),
		CategoryID:    c.Query("category_id"),
		Search:        strings.TrimSpace(c.Query("search")),
		OnlyAvailable: true,
		WithCategory:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_item_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetMenuItem 菜品详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	item, err := h.MenuService.GetItem(uint(itemID))
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_item_fetch_failed", err)
		return
	}
	response.Success(c, item)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}
