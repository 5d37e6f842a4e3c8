package public

import (
	"errors"
	"strconv"

	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutOrderRequest 结账下单请求
type CheckoutOrderRequest struct {
	OrderType string `json:"order_type" binding:"required"`
	TableID   uint   `json:"table_id"`

	BillingFirstName string `json:"billing_first_name"`
	BillingLastName  string `json:"billing_last_name"`
	BillingEmail     string `json:"billing_email"`
	BillingPhone     string `json:"billing_phone"`
	BillingAddress   string `json:"billing_address"`
	ShippingAddress  string `json:"shipping_address"`
}

// CheckoutOrder 购物车结账下单
func (h *Handler) CheckoutOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:           uid,
		OrderType:        req.OrderType,
		TableID:          req.TableID,
		BillingFirstName: req.BillingFirstName,
		BillingLastName:  req.BillingLastName,
		BillingEmail:     req.BillingEmail,
		BillingPhone:     req.BillingPhone,
		BillingAddress:   req.BillingAddress,
		ShippingAddress:  req.ShippingAddress,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单历史（倒序）
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      uid,
		OrderStatus: c.Query("order_status"),
		OnlyOrdered: true,
	})
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

// ListWaiterOrders 服务员接单队列（倒序）
func (h *Handler) ListWaiterOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if getUserRole(c) != constants.RoleWaiter {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByWaiter(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		WaiterID:    uid,
		OrderStatus: c.Query("order_status"),
		OnlyOrdered: true,
	})
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

// GetOrder 订单详情，仅下单人或负责的服务员可见
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if getUserRole(c) == constants.RoleWaiter {
		order, err := h.OrderService.GetByID(uint(orderID))
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				respondError(c, response.CodeNotFound, "error.order_not_found", nil)
				return
			}
			respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
			return
		}
		if order.UserID != uid && (order.WaiterID == nil || *order.WaiterID != uid) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		response.Success(c, order)
		return
	}

	order, err := h.OrderService.GetByIDForUser(uint(orderID), uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}
