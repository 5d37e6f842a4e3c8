package repository

import (
	"errors"

	"github.com/diancan-next/internal/models"

	"gorm.io/gorm"
)

// MenuRepository 菜单与菜品数据访问接口
type MenuRepository interface {
	ListByRestaurant(restaurantID uint) ([]models.Menu, error)
	GetByID(id uint) (*models.Menu, error)
	GetByIDWithItems(id uint) (*models.Menu, error)
	Create(menu *models.Menu) error
	Update(menu *models.Menu) error
	Delete(id uint) error

	ListItems(filter MenuItemListFilter) ([]models.MenuItem, int64, error)
	GetItemByID(id uint) (*models.MenuItem, error)
	CreateItem(item *models.MenuItem) error
	UpdateItem(item *models.MenuItem) error
	DeleteItem(id uint) error
	CreateIngredient(ingredient *models.MenuItemIngredient) error
	DeleteIngredient(id uint) error
}

// GormMenuRepository GORM 实现
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 创建菜单仓库
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// ListByRestaurant 获取餐厅菜单列表
func (r *GormMenuRepository) ListByRestaurant(restaurantID uint) ([]models.Menu, error) {
	var menus []models.Menu
	if err := r.db.Where("restaurant_id = ?", restaurantID).Order("id ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// GetByID 根据 ID 获取菜单
func (r *GormMenuRepository) GetByID(id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

// GetByIDWithItems 获取菜单及其菜品（含分类与配料）
func (r *GormMenuRepository) GetByIDWithItems(id uint) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("menu_items.id ASC")
	}).Preload("Items.Category").Preload("Items.Ingredients").First(&menu, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

// Create 创建菜单
func (r *GormMenuRepository) Create(menu *models.Menu) error {
	return r.db.Create(menu).Error
}

// Update 更新菜单
func (r *GormMenuRepository) Update(menu *models.Menu) error {
	return r.db.Save(menu).Error
}

// Delete 删除菜单
func (r *GormMenuRepository) Delete(id uint) error {
	return r.db.Delete(&models.Menu{}, id).Error
}

// ListItems 菜品列表
func (r *GormMenuRepository) ListItems(filter MenuItemListFilter) ([]models.MenuItem, int64, error) {
	query := r.db.Model(&models.MenuItem{})

	if filter.MenuID > 0 {
		query = query.Where("menu_id = ?", filter.MenuID)
	}
	if filter.RestaurantID > 0 {
		query = query.Joins("JOIN menus ON menus.id = menu_items.menu_id").
			Where("menus.restaurant_id = ?", filter.RestaurantID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond, argCount := buildLikeCondition(r.db, []string{"menu_items.name", "menu_items.description"})
		query = query.Where(cond, repeatLikeArgs(like, argCount)...)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCategory {
		query = query.Preload("Category")
	}

	var items []models.MenuItem
	if err := query.Order("menu_items.id ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetItemByID 根据 ID 获取菜品（含分类与配料）
func (r *GormMenuRepository) GetItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").Preload("Ingredients").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建菜品
func (r *GormMenuRepository) CreateItem(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新菜品
func (r *GormMenuRepository) UpdateItem(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除菜品
func (r *GormMenuRepository) DeleteItem(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

// CreateIngredient 创建菜品配料
func (r *GormMenuRepository) CreateIngredient(ingredient *models.MenuItemIngredient) error {
	return r.db.Create(ingredient).Error
}

// DeleteIngredient 删除菜品配料
func (r *GormMenuRepository) DeleteIngredient(id uint) error {
	return r.db.Delete(&models.MenuItemIngredient{}, id).Error
}
