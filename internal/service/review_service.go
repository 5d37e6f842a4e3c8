package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"
)

// ReviewService 评价服务
type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
	orderRepo      repository.OrderRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, restaurantRepo repository.RestaurantRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
		orderRepo:      orderRepo,
	}
}

// CreateReviewInput 创建评价输入
// 评价针对订单，作者身份取自登录用户，请求体里的用户字段一律忽略。
type CreateReviewInput struct {
	UserID  uint
	OrderID uint
	Rate    int
	Comment string
}

// RestaurantRating 餐厅评分汇总
type RestaurantRating struct {
	Average float64 `json:"average"`
	Total   int64   `json:"total"`
}

// Create 创建订单评价
// 只能评价自己的订单，他人订单按不存在处理。
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.OrderID == 0 {
		return nil, ErrNotFound
	}
	if input.Rate < constants.ReviewRateMin || input.Rate > constants.ReviewRateMax {
		return nil, ErrInvalidRate
	}
	order, err := s.orderRepo.GetByIDAndUser(input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	// 餐厅归属从订单餐桌冗余，供评分汇总；线上订单没有餐厅归属
	var restaurantID *uint
	if order.Table != nil {
		rid := order.Table.RestaurantID
		restaurantID = &rid
	}

	now := time.Now()
	review := &models.Review{
		OrderID:      order.ID,
		UserID:       input.UserID,
		RestaurantID: restaurantID,
		Rate:         input.Rate,
		Comment:      strings.TrimSpace(input.Comment),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetByID 获取评价详情，普通用户仅可见自己的评价
func (s *ReviewService) GetByID(reviewID, userID uint, role string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID && !constants.IsStaffRole(role) {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// List 评价列表
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// Update 更新自己的评价
func (s *ReviewService) Update(reviewID, userID uint, rate *int, comment *string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}

	updated := false
	if rate != nil {
		if *rate < constants.ReviewRateMin || *rate > constants.ReviewRateMax {
			return nil, ErrInvalidRate
		}
		review.Rate = *rate
		updated = true
	}
	if comment != nil {
		review.Comment = strings.TrimSpace(*comment)
		updated = true
	}
	if !updated {
		return review, nil
	}

	review.UpdatedAt = time.Now()
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除自己的评价（superuser 可删除任意评价）
func (s *ReviewService) Delete(reviewID, userID uint, role string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != userID && role != constants.RoleSuperuser {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(reviewID)
}

// Rating 餐厅评分汇总
func (s *ReviewService) Rating(restaurantID uint) (*RestaurantRating, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	avg, total, err := s.reviewRepo.AverageRate(restaurantID)
	if err != nil {
		return nil, err
	}
	return &RestaurantRating{Average: avg, Total: total}, nil
}
