package manage

import (
	"errors"
	"strconv"
	"strings"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RestaurantUpsertRequest 餐厅创建/更新请求
type RestaurantUpsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	IsActive    *bool  `json:"is_active"`
}

// ListRestaurants 管理端餐厅列表：店主只看自己的，超管看全部
func (h *Handler) ListRestaurants(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RestaurantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if !isSuperuser(user) {
		filter.OwnerID = user.ID
	}

	restaurants, total, err := h.RestaurantService.List(filter)
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

// CreateRestaurant 创建餐厅，创建者自动成为店主
func (h *Handler) CreateRestaurant(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req RestaurantUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	restaurant, err := h.RestaurantService.Create(uid, service.UpsertRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantExists):
			respondError(c, response.CodeBadRequest, "error.restaurant_exists", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		default:
			respondError(c, response.CodeInternal, "error.restaurant_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("restaurant_created", "restaurant_id", restaurant.ID, "owner_id", uid)
	response.Success(c, restaurant)
}

// UpdateRestaurant 更新餐厅信息
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageRestaurant(c, uint(restaurantID)); !ok {
		return
	}
	var req RestaurantUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	restaurant, err := h.RestaurantService.Update(uint(restaurantID), service.UpsertRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
		case errors.Is(err, service.ErrRestaurantExists):
			respondError(c, response.CodeBadRequest, "error.restaurant_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.restaurant_save_failed", err)
		}
		return
	}
	response.Success(c, restaurant)
}

// DeleteRestaurant 删除餐厅
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageRestaurant(c, uint(restaurantID)); !ok {
		return
	}

	if err := h.RestaurantService.Delete(uint(restaurantID)); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.restaurant_save_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddWaiterRequest 添加服务员请求
type AddWaiterRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AddWaiter 将用户设置为该餐厅的服务员
func (h *Handler) AddWaiter(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageRestaurant(c, uint(restaurantID)); !ok {
		return
	}
	var req AddWaiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	waiter, err := h.RestaurantService.AddWaiter(uint(restaurantID), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.restaurant_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("restaurant_waiter_added", "restaurant_id", restaurantID, "waiter_id", waiter.ID)
	response.Success(c, gin.H{
		"id":            waiter.ID,
		"email":         waiter.Email,
		"full_name":     waiter.FullName(),
		"role":          waiter.Role,
		"restaurant_id": waiter.RestaurantID,
	})
}
