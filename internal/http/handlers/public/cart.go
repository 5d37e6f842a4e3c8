package public

import (
	"errors"
	"strconv"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCart 获取或创建购物车（幂等）
func (h *Handler) CreateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetOrCreateCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cart)
}

// RetrieveCart 获取购物车详情
func (h *Handler) RetrieveCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.RetrieveCart(uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cart)
}

// CreateCartItemRequest 添加购物车项请求
type CreateCartItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Comments   string `json:"comments"`
}

// CreateCartItem 添加购物车项，同菜品合并数量
func (h *Handler) CreateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.AddItem(service.AddItemInput{
		UserID:     uid,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		Comments:   req.Comments,
	})
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItemRequest 更新购物车项请求
type UpdateCartItemRequest struct {
	Quantity int     `json:"quantity" binding:"required"`
	Comments *string `json:"comments"`
}

// UpdateCartItem 更新购物车项数量/备注
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpdateItemQuantity(uid, uint(itemID), req.Quantity, req.Comments)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	cart, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}
