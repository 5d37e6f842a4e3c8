package manage

import (
	"strconv"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.invalid_order_status"},
	{target: service.ErrOrderStatusTransition, code: response.CodeBadRequest, key: "error.order_status_transition"},
	{target: service.ErrInvalidPaymentStatus, code: response.CodeBadRequest, key: "error.invalid_payment_status"},
}

func respondOrderStatusError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "error.order_update_failed")
}

// ListOrders 管理端订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderType:   c.Query("order_type"),
		OrderStatus: c.Query("order_status"),
		OnlyOrdered: true,
	}
	if tableID, err := strconv.ParseUint(c.Query("table_id"), 10, 64); err == nil {
		filter.TableID = uint(tableID)
	}
	if waiterID, err := strconv.ParseUint(c.Query("waiter_id"), 10, 64); err == nil {
		filter.WaiterID = uint(waiterID)
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" binding:"required"`
}

// UpdateOrderStatus 按流转表推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(service.UpdateStatusInput{
		OrderID: uint(orderID),
		Status:  req.OrderStatus,
	})
	if err != nil {
		respondOrderStatusError(c, err)
		return
	}

	requestLog(c).Infow("order_status_updated",
		"order_id", order.ID,
		"order_status", order.OrderStatus,
		"operator_id", uid,
	)
	response.Success(c, order)
}

// UpdatePaymentStatusRequest 支付状态更新请求
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdateOrderPaymentStatus 店员确认/取消支付
func (h *Handler) UpdateOrderPaymentStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdatePaymentStatus(uint(orderID), req.PaymentStatus)
	if err != nil {
		respondOrderStatusError(c, err)
		return
	}

	requestLog(c).Infow("order_payment_status_updated",
		"order_id", order.ID,
		"payment_status", order.PaymentStatus,
		"operator_id", uid,
	)
	response.Success(c, order)
}
