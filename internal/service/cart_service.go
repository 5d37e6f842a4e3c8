package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车服务
// 所有写操作在事务内持有购物车行锁，保证并发修改下合计金额与购物车项一致。
type CartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

// AddItemInput 添加购物车项输入
type AddItemInput struct {
	UserID     uint
	MenuItemID uint
	Quantity   int
	Comments   string
}

// GetOrCreateCart 获取或创建用户购物车（幂等）
// user_id 唯一索引保证并发创建只会成功一个，冲突后重新读取即可。
func (s *CartService) GetOrCreateCart(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now()
	cart = &models.Cart{
		UserID:     userID,
		TotalPrice: models.NewMoneyFromDecimal(decimal.Zero),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		// 并发创建触发唯一索引冲突时回退为读取已有购物车
		existing, getErr := s.cartRepo.GetByUser(userID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return cart, nil
}

// RetrieveCart 获取用户购物车（不存在时创建空车）
func (s *CartService) RetrieveCart(userID uint) (*models.Cart, error) {
	return s.GetOrCreateCart(userID)
}

// AddItem 添加菜品到购物车
// 同一菜品重复添加时合并数量；单价在首次加入时快照，之后菜价调整不影响已有购物车项。
func (s *CartService) AddItem(input AddItemInput) (*models.Cart, error) {
	if input.UserID == 0 || input.MenuItemID == 0 {
		return nil, ErrNotFound
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	menuItem, err := s.menuRepo.GetItemByID(input.MenuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, ErrMenuItemNotFound
	}
	if !menuItem.IsAvailable {
		return nil, ErrMenuItemUnavailable
	}

	cart, err := s.GetOrCreateCart(input.UserID)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if _, err := cartRepo.GetByUserForUpdate(input.UserID); err != nil {
			return err
		}

		existing, err := cartRepo.GetItem(cart.ID, input.MenuItemID)
		if err != nil {
			return err
		}
		now := time.Now()
		if existing != nil {
			existing.Quantity += input.Quantity
			if comments := strings.TrimSpace(input.Comments); comments != "" {
				existing.Comments = comments
			}
			existing.UpdatedAt = now
			if err := cartRepo.UpdateItem(existing); err != nil {
				return err
			}
		} else {
			item := &models.CartItem{
				CartID:     cart.ID,
				MenuItemID: input.MenuItemID,
				Quantity:   input.Quantity,
				Comments:   strings.TrimSpace(input.Comments),
				Price:      menuItem.Price,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := cartRepo.CreateItem(item); err != nil {
				return err
			}
		}

		return s.recomputeTotal(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByUser(input.UserID)
}

// UpdateItemQuantity 更新购物车项数量与备注
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int, comments *string) (*models.Cart, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrNotFound
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if _, err := cartRepo.GetByUserForUpdate(userID); err != nil {
			return err
		}

		item, err := cartRepo.GetItemByID(itemID)
		if err != nil {
			return err
		}
		// 只能操作自己购物车里的项
		if item == nil || item.CartID != cart.ID {
			return ErrCartItemNotFound
		}

		item.Quantity = quantity
		if comments != nil {
			item.Comments = strings.TrimSpace(*comments)
		}
		item.UpdatedAt = time.Now()
		if err := cartRepo.UpdateItem(item); err != nil {
			return err
		}

		return s.recomputeTotal(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByUser(userID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) (*models.Cart, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrNotFound
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if _, err := cartRepo.GetByUserForUpdate(userID); err != nil {
			return err
		}

		item, err := cartRepo.GetItemByID(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.CartID != cart.ID {
			return ErrCartItemNotFound
		}

		if err := cartRepo.DeleteItem(item.ID); err != nil {
			return err
		}

		return s.recomputeTotal(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByUser(userID)
}

// recomputeTotal 按当前购物车项重算合计金额（须在事务内调用）
func (s *CartService) recomputeTotal(cartRepo *repository.GormCartRepository, cartID uint) error {
	items, err := cartRepo.ListItems(cartID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return cartRepo.UpdateTotal(cartID, models.NewMoneyFromDecimal(total))
}
