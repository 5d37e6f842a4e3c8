package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"
)

// MenuService 菜单与菜品服务
type MenuService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
	categoryRepo   repository.CategoryRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository, categoryRepo repository.CategoryRepository) *MenuService {
	return &MenuService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		categoryRepo:   categoryRepo,
	}
}

// UpsertMenuItemInput 菜品创建/更新输入
type UpsertMenuItemInput struct {
	MenuID      uint
	CategoryID  *uint
	Name        string
	Description string
	Image       string
	Price       *models.Money
	IsAvailable *bool
}

// IngredientInput 配料输入
type IngredientInput struct {
	MenuItemID  uint
	Name        string
	Quantity    string
	Description string
}

// ListByRestaurant 餐厅菜单列表
func (s *MenuService) ListByRestaurant(restaurantID uint) ([]models.Menu, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return s.menuRepo.ListByRestaurant(restaurantID)
}

// GetMenu 获取菜单及其菜品
func (s *MenuService) GetMenu(id uint) (*models.Menu, error) {
	menu, err := s.menuRepo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	return menu, nil
}

// CreateMenu 创建菜单
func (s *MenuService) CreateMenu(restaurantID uint, name, description string) (*models.Menu, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMenuNotFound
	}

	now := time.Now()
	menu := &models.Menu{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  strings.TrimSpace(description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.menuRepo.Create(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenu 更新菜单
func (s *MenuService) UpdateMenu(id uint, name, description *string) (*models.Menu, error) {
	menu, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}

	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			menu.Name = trimmed
		}
	}
	if description != nil {
		menu.Description = strings.TrimSpace(*description)
	}
	menu.UpdatedAt = time.Now()
	if err := s.menuRepo.Update(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu 删除菜单
func (s *MenuService) DeleteMenu(id uint) error {
	menu, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if menu == nil {
		return ErrMenuNotFound
	}
	return s.menuRepo.Delete(id)
}

// ListItems 菜品列表
func (s *MenuService) ListItems(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	return s.menuRepo.ListItems(filter)
}

// GetItem 获取菜品详情
func (s *MenuService) GetItem(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// CreateItem 创建菜品
func (s *MenuService) CreateItem(input UpsertMenuItemInput) (*models.MenuItem, error) {
	menu, err := s.menuRepo.GetByID(input.MenuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil {
		return nil, ErrMenuItemNotFound
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	now := time.Now()
	item := &models.MenuItem{
		MenuID:      input.MenuID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		Price:       *input.Price,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if err := s.menuRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 更新菜品
// 改价只影响之后加入购物车的项，已有快照价不回填。
func (s *MenuService) UpdateItem(id uint, input UpsertMenuItemInput) (*models.MenuItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if input.Description != "" {
		item.Description = strings.TrimSpace(input.Description)
	}
	if input.Image != "" {
		item.Image = strings.TrimSpace(input.Image)
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		item.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	item.UpdatedAt = time.Now()
	if err := s.menuRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem 删除菜品
func (s *MenuService) DeleteItem(id uint) error {
	if _, err := s.GetItem(id); err != nil {
		return err
	}
	return s.menuRepo.DeleteItem(id)
}

// AddIngredient 添加菜品配料
func (s *MenuService) AddIngredient(input IngredientInput) (*models.MenuItemIngredient, error) {
	if _, err := s.GetItem(input.MenuItemID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMenuItemNotFound
	}

	now := time.Now()
	ingredient := &models.MenuItemIngredient{
		MenuItemID:  input.MenuItemID,
		Name:        name,
		Quantity:    strings.TrimSpace(input.Quantity),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.menuRepo.CreateIngredient(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// RemoveIngredient 删除菜品配料
func (s *MenuService) RemoveIngredient(id uint) error {
	return s.menuRepo.DeleteIngredient(id)
}
