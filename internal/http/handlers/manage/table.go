package manage

import (
	"strconv"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

var tableErrorRules = []mappedHandlerError{
	{target: service.ErrTableNotFound, code: response.CodeNotFound, key: "error.table_not_found"},
	{target: service.ErrTableExists, code: response.CodeBadRequest, key: "error.table_exists"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

func respondTableError(c *gin.Context, err error) {
	respondWithMappedError(c, err, tableErrorRules, response.CodeInternal, "error.table_save_failed")
}

// ListTables 餐厅餐桌列表
func (h *Handler) ListTables(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := h.requireManageRestaurant(c, uint(restaurantID)); !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	tables, total, err := h.TableService.List(repository.TableListFilter{
		Page:         page,
		PageSize:     pageSize,
		RestaurantID: uint(restaurantID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.table_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, tables, pagination)
}

// CreateTableRequest 创建餐桌请求
type CreateTableRequest struct {
	RestaurantID uint  `json:"restaurant_id" binding:"required"`
	TableNumber  int   `json:"table_number" binding:"required"`
	WaiterID     *uint `json:"waiter_id"`
}

// CreateTable 创建餐桌
func (h *Handler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if _, ok := h.requireManageRestaurant(c, req.RestaurantID); !ok {
		return
	}

	table, err := h.TableService.Create(service.CreateTableInput{
		RestaurantID: req.RestaurantID,
		TableNumber:  req.TableNumber,
		WaiterID:     req.WaiterID,
	})
	if err != nil {
		respondTableError(c, err)
		return
	}
	response.Success(c, table)
}

// GetTable 餐桌详情（首次访问触发二维码生成）
func (h *Handler) GetTable(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	table, err := h.TableService.GetByID(uint(tableID))
	if err != nil {
		respondTableError(c, err)
		return
	}
	if _, ok := h.requireManageRestaurant(c, table.RestaurantID); !ok {
		return
	}
	response.Success(c, table)
}

// AssignWaiterRequest 指派服务员请求
type AssignWaiterRequest struct {
	WaiterID uint `json:"waiter_id" binding:"required"`
}

// AssignTableWaiter 为餐桌指派服务员
func (h *Handler) AssignTableWaiter(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	table, err := h.TableService.GetByID(uint(tableID))
	if err != nil {
		respondTableError(c, err)
		return
	}
	if _, ok := h.requireManageRestaurant(c, table.RestaurantID); !ok {
		return
	}
	var req AssignWaiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	updated, err := h.TableService.AssignWaiter(uint(tableID), req.WaiterID)
	if err != nil {
		respondTableError(c, err)
		return
	}
	response.Success(c, updated)
}

// DeleteTable 删除餐桌
func (h *Handler) DeleteTable(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	table, err := h.TableService.GetByID(uint(tableID))
	if err != nil {
		respondTableError(c, err)
		return
	}
	if _, ok := h.requireManageRestaurant(c, table.RestaurantID); !ok {
		return
	}

	if err := h.TableService.Delete(uint(tableID)); err != nil {
		respondTableError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
