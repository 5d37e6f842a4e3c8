package repository

import (
	"errors"

	"github.com/diancan-next/internal/models"

	"gorm.io/gorm"
)

// TableRepository 餐桌数据访问接口
type TableRepository interface {
	List(filter TableListFilter) ([]models.Table, int64, error)
	GetByID(id uint) (*models.Table, error)
	GetByRestaurantAndNumber(restaurantID uint, tableNumber int) (*models.Table, error)
	Create(table *models.Table) error
	Update(table *models.Table) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormTableRepository
}

// GormTableRepository GORM 实现
type GormTableRepository struct {
	db *gorm.DB
}

// NewTableRepository 创建餐桌仓库
func NewTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTableRepository) WithTx(tx *gorm.DB) *GormTableRepository {
	if tx == nil {
		return r
	}
	return &GormTableRepository{db: tx}
}

// List 餐桌列表
func (r *GormTableRepository) List(filter TableListFilter) ([]models.Table, int64, error) {
	query := r.db.Model(&models.Table{})

	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.WaiterID > 0 {
		query = query.Where("waiter_id = ?", filter.WaiterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tables []models.Table
	if err := query.Order("restaurant_id ASC, table_number ASC").Find(&tables).Error; err != nil {
		return nil, 0, err
	}
	return tables, total, nil
}

// GetByID 根据 ID 获取餐桌
func (r *GormTableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.Preload("Restaurant").First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

// GetByRestaurantAndNumber 根据餐厅与桌号获取餐桌
func (r *GormTableRepository) GetByRestaurantAndNumber(restaurantID uint, tableNumber int) (*models.Table, error) {
	var table models.Table
	err := r.db.Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

// Create 创建餐桌
func (r *GormTableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

// Update 更新餐桌
func (r *GormTableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}

// Delete 删除餐桌
func (r *GormTableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}
