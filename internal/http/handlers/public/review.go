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

// CreateReviewRequest 创建评价请求
// 作者字段取当前登录用户，请求体不接受用户标识。
type CreateReviewRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rate    int    `json:"rate" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview 创建订单评价
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Create(service.CreateReviewInput{
		UserID:  uid,
		OrderID: req.OrderID,
		Rate:    req.Rate,
		Comment: req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// ListReviews 评价列表：普通用户仅自己的评价，店员侧可看全部
func (h *Handler) ListReviews(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 64); err == nil {
		filter.RestaurantID = uint(restaurantID)
	}
	if !constants.IsStaffRole(getUserRole(c)) {
		filter.UserID = uid
	}

	reviews, total, err := h.ReviewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reviews, pagination)
}

// GetReview 评价详情
func (h *Handler) GetReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	review, err := h.ReviewService.GetByID(uint(reviewID), uid, getUserRole(c))
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// UpdateReviewRequest 更新评价请求
type UpdateReviewRequest struct {
	Rate    *int    `json:"rate"`
	Comment *string `json:"comment"`
}

// UpdateReview 更新自己的评价
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Update(uint(reviewID), uid, req.Rate, req.Comment)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.ReviewService.Delete(uint(reviewID), uid, getUserRole(c)); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetRestaurantRating 餐厅评分汇总
func (h *Handler) GetRestaurantRating(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	rating, err := h.ReviewService.Rating(uint(restaurantID))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	response.Success(c, rating)
}
