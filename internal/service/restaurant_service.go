package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"
)

// RestaurantService 餐厅服务
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
}

// NewRestaurantService 创建餐厅服务
func NewRestaurantService(restaurantRepo repository.RestaurantRepository, userRepo repository.UserRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
	}
}

// UpsertRestaurantInput 餐厅创建/更新输入
type UpsertRestaurantInput struct {
	Name        string
	Description string
	Address     string
	PhoneNumber string
	Email       string
	IsActive    *bool
}

// List 餐厅列表
func (s *RestaurantService) List(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	return s.restaurantRepo.List(filter)
}

// GetByID 获取餐厅
func (s *RestaurantService) GetByID(id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

// Create 创建餐厅并将创建者设为所有者
func (s *RestaurantService) Create(ownerID uint, input UpsertRestaurantInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRestaurantNotFound
	}
	count, err := s.restaurantRepo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRestaurantExists
	}

	now := time.Now()
	restaurant := &models.Restaurant{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       strings.TrimSpace(input.Email),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}

	if ownerID > 0 {
		if err := s.restaurantRepo.AddOwner(restaurant.ID, ownerID); err != nil {
			return nil, err
		}
	}
	return restaurant, nil
}

// Update 更新餐厅
func (s *RestaurantService) Update(id uint, input UpsertRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != restaurant.Name {
		count, err := s.restaurantRepo.CountByName(name, &restaurant.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrRestaurantExists
		}
		restaurant.Name = name
	}
	if input.Description != "" {
		restaurant.Description = strings.TrimSpace(input.Description)
	}
	if input.Address != "" {
		restaurant.Address = strings.TrimSpace(input.Address)
	}
	if input.PhoneNumber != "" {
		restaurant.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	}
	if input.Email != "" {
		restaurant.Email = strings.TrimSpace(input.Email)
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}

	restaurant.UpdatedAt = time.Now()
	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete 删除餐厅
func (s *RestaurantService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.restaurantRepo.Delete(id)
}

// CanManage 判断用户能否管理该餐厅
// superuser 可管理全部；restaurant_owner 仅限名下餐厅；waiter 仅限所属餐厅。
func (s *RestaurantService) CanManage(restaurantID uint, user *models.User) (bool, error) {
	if user == nil || restaurantID == 0 {
		return false, nil
	}
	switch user.Role {
	case constants.RoleSuperuser:
		return true, nil
	case constants.RoleRestaurantOwner:
		return s.restaurantRepo.IsOwnedBy(restaurantID, user.ID)
	case constants.RoleWaiter:
		return user.RestaurantID != nil && *user.RestaurantID == restaurantID, nil
	default:
		return false, nil
	}
}

// AddWaiter 将用户加入餐厅服务员
func (s *RestaurantService) AddWaiter(restaurantID, userID uint) (*models.User, error) {
	if _, err := s.GetByID(restaurantID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Role = constants.RoleWaiter
	user.RestaurantID = &restaurantID
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
