package service

import (
	"strings"
	"time"

	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/logger"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	tableRepo repository.TableRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, tableRepo repository.TableRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		tableRepo: tableRepo,
	}
}

// CheckoutInput 结账输入
type CheckoutInput struct {
	UserID    uint
	OrderType string
	TableID   uint // 仅 DINE_IN

	// 仅 TAKEAWAY/DELIVERY
	BillingFirstName string
	BillingLastName  string
	BillingEmail     string
	BillingPhone     string
	BillingAddress   string
	ShippingAddress  string
}

// UpdateStatusInput 订单状态流转输入
type UpdateStatusInput struct {
	OrderID uint
	Status  string
}

// Checkout 结账下单
// 整个流程在单个事务内完成：锁定购物车、冻结复制购物车项、清空购物车。
// 事务内任一步失败则整体回滚，购物车保持原状。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}

	orderType := strings.ToUpper(strings.TrimSpace(input.OrderType))
	if orderType == "" {
		orderType = constants.OrderTypeDineIn
	}
	switch orderType {
	case constants.OrderTypeDineIn, constants.OrderTypeTakeaway, constants.OrderTypeDelivery:
	default:
		return nil, ErrInvalidOrderType
	}

	var table *models.Table
	if orderType == constants.OrderTypeDineIn {
		if input.TableID == 0 {
			return nil, ErrTableRequired
		}
		found, err := s.tableRepo.GetByID(input.TableID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, ErrTableNotFound
		}
		table = found
	} else {
		if strings.TrimSpace(input.BillingFirstName) == "" ||
			strings.TrimSpace(input.BillingPhone) == "" ||
			strings.TrimSpace(input.BillingAddress) == "" {
			return nil, ErrAddressRequired
		}
		if orderType == constants.OrderTypeDelivery && strings.TrimSpace(input.ShippingAddress) == "" {
			return nil, ErrAddressRequired
		}
	}

	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserForUpdate(input.UserID)
		if err != nil {
			return err
		}
		// 从未建车返回 404，区别于已有空车的校验错误
		if cart == nil {
			return ErrCartNotFound
		}

		cartItems, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		now := time.Now()
		order = &models.Order{
			UserID:        input.UserID,
			OrderType:     orderType,
			OrderStatus:   constants.OrderStatusTaking,
			PaymentStatus: constants.PaymentStatusPending,
			TotalPrice:    cart.TotalPrice,
			Ordered:       true,
			OrderedDate:   &now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if table != nil {
			order.TableID = &table.ID
			order.WaiterID = table.WaiterID
		} else {
			order.BillingFirstName = strings.TrimSpace(input.BillingFirstName)
			order.BillingLastName = strings.TrimSpace(input.BillingLastName)
			order.BillingEmail = strings.TrimSpace(input.BillingEmail)
			order.BillingPhone = strings.TrimSpace(input.BillingPhone)
			order.BillingAddress = strings.TrimSpace(input.BillingAddress)
			order.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
		}

		// 冻结复制购物车项
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				Comments:   item.Comments,
				Price:      item.Price,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		return cartRepo.UpdateTotal(cart.ID, models.NewMoneyFromDecimal(decimal.Zero))
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_checkout_completed",
		"order_id", order.ID,
		"user_id", input.UserID,
		"order_type", orderType,
		"total_price", order.TotalPrice.String(),
	)
	return s.orderRepo.GetByID(order.ID)
}

// GetByIDForUser 获取用户自己的订单详情
func (s *OrderService) GetByIDForUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 用户订单列表（最新在前）
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListByWaiter 服务员负责的订单列表
func (s *OrderService) ListByWaiter(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.WaiterID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByWaiter(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetByID 获取订单详情（管理端）
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 推进订单状态
// 状态只能按 TAKING → PREPARING → SERVING → COMPLETED 逐级前进。
func (s *OrderService) UpdateStatus(input UpdateStatusInput) (*models.Order, error) {
	order, err := s.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}

	target := strings.ToUpper(strings.TrimSpace(input.Status))
	switch target {
	case constants.OrderStatusTaking, constants.OrderStatusPreparing,
		constants.OrderStatusServing, constants.OrderStatusCompleted:
	default:
		return nil, ErrInvalidOrderStatus
	}

	if constants.OrderStatusTransitions[order.OrderStatus] != target {
		return nil, ErrOrderStatusTransition
	}

	updates := map[string]interface{}{
		"order_status": target,
		"updated_at":   time.Now(),
	}
	if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"from", order.OrderStatus,
		"to", target,
	)
	return s.GetByID(order.ID)
}

// UpdatePaymentStatus 更新支付状态
func (s *OrderService) UpdatePaymentStatus(orderID uint, paymentStatus string) (*models.Order, error) {
	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSpace(paymentStatus)
	switch target {
	case constants.PaymentStatusPending, constants.PaymentStatusConfirmed, constants.PaymentStatusCancelled:
	default:
		return nil, ErrInvalidPaymentStatus
	}

	updates := map[string]interface{}{
		"payment_status": target,
		"updated_at":     time.Now(),
	}
	if target == constants.PaymentStatusCancelled {
		updates["order_cancelled"] = true
	}
	if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	logger.Infow("order_payment_status_updated",
		"order_id", order.ID,
		"from", order.PaymentStatus,
		"to", target,
	)
	return s.GetByID(order.ID)
}
