package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Menu{},
		&models.MenuItem{},
		&models.MenuItemIngredient{},
		&models.Table{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderService := NewOrderService(orderRepo, cartRepo, tableRepo)
	cartService := NewCartService(cartRepo, menuRepo)
	return orderService, cartService, db
}

func createOrderTestTable(t *testing.T, db *gorm.DB, restaurantID uint, tableNumber int, waiterID *uint) *models.Table {
	t.Helper()
	now := time.Now()
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		WaiterID:     waiterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	return table
}

func fillOrderTestCart(t *testing.T, cartService *CartService, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	first := createCartTestMenuItem(t, db, 1, fmt.Sprintf("菜品A_%d", userID), 15, true)
	second := createCartTestMenuItem(t, db, 1, fmt.Sprintf("菜品B_%d", userID), 25, true)
	if _, err := cartService.AddItem(AddItemInput{UserID: userID, MenuItemID: first.ID, Quantity: 2, Comments: "少盐"}); err != nil {
		t.Fatalf("add first item failed: %v", err)
	}
	if _, err := cartService.AddItem(AddItemInput{UserID: userID, MenuItemID: second.ID, Quantity: 1}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}
	return decimal.NewFromInt(55)
}

func TestCheckoutDineInFreezesCartIntoOrder(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	waiterID := uint(9)
	table := createOrderTestTable(t, db, 1, 3, &waiterID)
	total := fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: "dine_in", TableID: table.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if order.OrderType != constants.OrderTypeDineIn {
		t.Fatalf("order type want DINE_IN got %s", order.OrderType)
	}
	if order.OrderStatus != constants.OrderStatusTaking {
		t.Fatalf("order status want TAKING got %s", order.OrderStatus)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("payment status want Pending got %s", order.PaymentStatus)
	}
	if order.TableID == nil || *order.TableID != table.ID {
		t.Fatalf("table id want %d got %v", table.ID, order.TableID)
	}
	if order.WaiterID == nil || *order.WaiterID != waiterID {
		t.Fatalf("waiter id want %d got %v", waiterID, order.WaiterID)
	}
	if !order.TotalPrice.Decimal.Equal(total) {
		t.Fatalf("order total want %s got %s", total, order.TotalPrice.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	if !order.Ordered || order.OrderedDate == nil {
		t.Fatalf("order should be marked as ordered with timestamp")
	}

	// 结账后购物车被清空但保留
	cart, err := cartService.RetrieveCart(1)
	if err != nil {
		t.Fatalf("retrieve cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cart.Items))
	}
	if !cart.TotalPrice.Decimal.IsZero() {
		t.Fatalf("cart total want 0 got %s", cart.TotalPrice.String())
	}
}

func TestCheckoutDeliveryKeepsBillingSnapshot(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.Checkout(CheckoutInput{
		UserID:           1,
		OrderType:        constants.OrderTypeDelivery,
		BillingFirstName: "三",
		BillingLastName:  "张",
		BillingPhone:     "13800000000",
		BillingAddress:   "人民路 1 号",
		ShippingAddress:  "人民路 1 号 301",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.TableID != nil {
		t.Fatalf("delivery order should not carry table id")
	}
	if order.BillingPhone != "13800000000" || order.ShippingAddress != "人民路 1 号 301" {
		t.Fatalf("billing snapshot mismatch: %+v", order)
	}
}

func TestCheckoutValidation(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)

	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: "PICKUP"}); !errors.Is(err, ErrInvalidOrderType) {
		t.Fatalf("invalid type want ErrInvalidOrderType got %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn}); !errors.Is(err, ErrTableRequired) {
		t.Fatalf("missing table want ErrTableRequired got %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: 404}); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("unknown table want ErrTableNotFound got %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeTakeaway}); !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("missing contact want ErrAddressRequired got %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{
		UserID:         1,
		OrderType:      constants.OrderTypeTakeaway,
		BillingPhone:   "13800000000",
		BillingAddress: "人民路 1 号",
	}); !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("missing billing name want ErrAddressRequired got %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{
		UserID:           1,
		OrderType:        constants.OrderTypeDelivery,
		BillingFirstName: "三",
		BillingPhone:     "13800000000",
		BillingAddress:   "人民路 1 号",
	}); !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("missing shipping address want ErrAddressRequired got %v", err)
	}

	// 从未建车返回 NotFound，已有空车返回校验错误
	table := createOrderTestTable(t, db, 1, 1, nil)
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("missing cart want ErrCartNotFound got %v", err)
	}
	if _, err := cartService.GetOrCreateCart(1); err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("cart without items want ErrCartEmpty got %v", err)
	}
}

func TestCheckoutThenReorderSameDish(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	table := createOrderTestTable(t, db, 1, 7, nil)
	item := createCartTestMenuItem(t, db, 1, "回锅肉", 28, true)

	if _, err := cartService.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID}); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 结账清空后同一道菜必须可以再次加购（空车复用）
	cart, err := cartService.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("re-add after checkout failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("re-added cart want single item qty 2 got %+v", cart.Items)
	}
	want := decimal.NewFromInt(56)
	if !cart.TotalPrice.Decimal.Equal(want) {
		t.Fatalf("total want %s got %s", want, cart.TotalPrice.String())
	}
}

func TestUpdateStatusStepwiseTransitions(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	table := createOrderTestTable(t, db, 1, 2, nil)
	fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 不允许跳级
	if _, err := orderService.UpdateStatus(UpdateStatusInput{OrderID: order.ID, Status: constants.OrderStatusServing}); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("skip transition want ErrOrderStatusTransition got %v", err)
	}
	if _, err := orderService.UpdateStatus(UpdateStatusInput{OrderID: order.ID, Status: "UNKNOWN"}); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("bogus status want ErrInvalidOrderStatus got %v", err)
	}

	for _, next := range []string{
		constants.OrderStatusPreparing,
		constants.OrderStatusServing,
		constants.OrderStatusCompleted,
	} {
		updated, err := orderService.UpdateStatus(UpdateStatusInput{OrderID: order.ID, Status: next})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
		if updated.OrderStatus != next {
			t.Fatalf("status want %s got %s", next, updated.OrderStatus)
		}
	}

	// 终态之后不再前进
	if _, err := orderService.UpdateStatus(UpdateStatusInput{OrderID: order.ID, Status: constants.OrderStatusCompleted}); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("transition past COMPLETED want ErrOrderStatusTransition got %v", err)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	table := createOrderTestTable(t, db, 1, 5, nil)
	fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderService.UpdatePaymentStatus(order.ID, "Paid"); !errors.Is(err, ErrInvalidPaymentStatus) {
		t.Fatalf("bogus payment status want ErrInvalidPaymentStatus got %v", err)
	}

	updated, err := orderService.UpdatePaymentStatus(order.ID, constants.PaymentStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusConfirmed {
		t.Fatalf("payment status want Confirmed got %s", updated.PaymentStatus)
	}
	if updated.OrderCancelled {
		t.Fatalf("confirmed order should not be cancelled")
	}

	cancelled, err := orderService.UpdatePaymentStatus(order.ID, constants.PaymentStatusCancelled)
	if err != nil {
		t.Fatalf("cancel payment failed: %v", err)
	}
	if !cancelled.OrderCancelled {
		t.Fatalf("cancelled payment should flag order as cancelled")
	}
}

func TestGetByIDForUserScopesOwnership(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	table := createOrderTestTable(t, db, 1, 6, nil)
	fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.Checkout(CheckoutInput{UserID: 1, OrderType: constants.OrderTypeDineIn, TableID: table.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderService.GetByIDForUser(order.ID, 1); err != nil {
		t.Fatalf("owner should read order: %v", err)
	}
	if _, err := orderService.GetByIDForUser(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user want ErrOrderNotFound got %v", err)
	}
}
