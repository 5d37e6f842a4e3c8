package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryExists
	}

	now := time.Now()
	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, name, description *string) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed != "" && trimmed != category.Name {
			count, err := s.categoryRepo.CountByName(trimmed, &category.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrCategoryExists
			}
			category.Name = trimmed
		}
	}
	if description != nil {
		category.Description = strings.TrimSpace(*description)
	}

	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（分类下仍有菜品时拒绝）
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountMenuItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}
