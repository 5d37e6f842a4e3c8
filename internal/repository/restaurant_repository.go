package repository

import (
	"errors"

	"github.com/diancan-next/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
	GetByID(id uint) (*models.Restaurant, error)
	GetByIDWithOwners(id uint) (*models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	IsOwnedBy(restaurantID, userID uint) (bool, error)
	AddOwner(restaurantID, userID uint) error
}

// GormRestaurantRepository GORM 实现
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository 创建餐厅仓库
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// List 餐厅列表
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	query := r.db.Model(&models.Restaurant{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond, argCount := buildLikeCondition(r.db, []string{"name", "address"})
		query = query.Where(cond, repeatLikeArgs(like, argCount)...)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OwnerID > 0 {
		query = query.Joins("JOIN restaurant_owners ro ON ro.restaurant_id = restaurants.id").
			Where("ro.user_id = ?", filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var restaurants []models.Restaurant
	if err := query.Order("id ASC").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// GetByID 根据 ID 获取餐厅
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// GetByIDWithOwners 获取餐厅及其所有者
func (r *GormRestaurantRepository) GetByIDWithOwners(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Preload("Owners").First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// Create 创建餐厅
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update 更新餐厅
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete 删除餐厅
func (r *GormRestaurantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}

// CountByName 统计同名餐厅数量
func (r *GormRestaurantRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Restaurant{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsOwnedBy 判断用户是否为餐厅所有者
func (r *GormRestaurantRepository) IsOwnedBy(restaurantID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Table("restaurant_owners").
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddOwner 添加餐厅所有者
func (r *GormRestaurantRepository) AddOwner(restaurantID, userID uint) error {
	restaurant := models.Restaurant{ID: restaurantID}
	return r.db.Model(&restaurant).Association("Owners").Append(&models.User{ID: userID})
}
