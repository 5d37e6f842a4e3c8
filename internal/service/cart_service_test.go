package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	return NewCartService(cartRepo, menuRepo), db
}

func createCartTestMenuItem(t *testing.T, db *gorm.DB, menuID uint, name string, price float64, available bool) *models.MenuItem {
	t.Helper()
	now := time.Now()
	item := &models.MenuItem{
		MenuID:      menuID,
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return item
}

func TestGetOrCreateCartIdempotent(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	first, err := svc.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("first get or create failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("cart id should be assigned")
	}
	if !first.TotalPrice.Decimal.IsZero() {
		t.Fatalf("new cart total want 0 got %s", first.TotalPrice.String())
	}
	if len(first.Items) != 0 {
		t.Fatalf("new cart should be empty, got %d items", len(first.Items))
	}

	second, err := svc.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("second get or create failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("cart id want %d got %d", first.ID, second.ID)
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := createCartTestMenuItem(t, db, 1, "麻婆豆腐", 12.50, true)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 3, Comments: "少辣"})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("duplicate add should merge into one item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("merged quantity want 5 got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Comments != "少辣" {
		t.Fatalf("comments want 少辣 got %s", cart.Items[0].Comments)
	}
	want := decimal.NewFromFloat(62.5)
	if !cart.TotalPrice.Decimal.Equal(want) {
		t.Fatalf("total want %s got %s", want, cart.TotalPrice.String())
	}
}

func TestAddItemPriceSnapshot(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := createCartTestMenuItem(t, db, 1, "宫保鸡丁", 20, true)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 目录改价不回溯已有购物车项
	if err := db.Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Update("price", models.NewMoneyFromDecimal(decimal.NewFromInt(30))).Error; err != nil {
		t.Fatalf("update catalog price failed: %v", err)
	}

	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !cart.Items[0].Price.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("item price should keep snapshot 20, got %s", cart.Items[0].Price.String())
	}
	if !cart.TotalPrice.Decimal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("total want 40 got %s", cart.TotalPrice.String())
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	offShelf := createCartTestMenuItem(t, db, 1, "下架菜", 10, false)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: offShelf.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: 999, Quantity: 1}); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("missing item want ErrMenuItemNotFound got %v", err)
	}
	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: offShelf.ID, Quantity: 1}); !errors.Is(err, ErrMenuItemUnavailable) {
		t.Fatalf("off-shelf item want ErrMenuItemUnavailable got %v", err)
	}
}

func TestUpdateItemQuantityRecomputesTotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := createCartTestMenuItem(t, db, 1, "酸辣汤", 8, true)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	comments := "不要香菜"
	cart, err = svc.UpdateItemQuantity(1, cart.Items[0].ID, 4, &comments)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Comments != comments {
		t.Fatalf("comments want %s got %s", comments, cart.Items[0].Comments)
	}
	if !cart.TotalPrice.Decimal.Equal(decimal.NewFromInt(32)) {
		t.Fatalf("total want 32 got %s", cart.TotalPrice.String())
	}

	if _, err := svc.UpdateItemQuantity(1, cart.Items[0].ID, 0, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.UpdateItemQuantity(1, 999, 1, nil); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing item want ErrCartItemNotFound got %v", err)
	}
}

func TestUpdateItemQuantityRejectsForeignCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := createCartTestMenuItem(t, db, 1, "回锅肉", 18, true)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 用户 2 不能操作用户 1 的购物车项
	if _, err := svc.UpdateItemQuantity(2, cart.Items[0].ID, 3, nil); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign cart item want ErrCartItemNotFound got %v", err)
	}
	if _, err := svc.RemoveItem(2, cart.Items[0].ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign cart remove want ErrCartItemNotFound got %v", err)
	}
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestMenuItem(t, db, 1, "清炒时蔬", 10, true)
	second := createCartTestMenuItem(t, db, 1, "红烧肉", 30, true)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: second.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	var removeID uint
	for _, item := range cart.Items {
		if item.MenuItemID == second.ID {
			removeID = item.ID
		}
	}
	cart, err = svc.RemoveItem(1, removeID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(cart.Items))
	}
	if !cart.TotalPrice.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("total want 10 got %s", cart.TotalPrice.String())
	}
}

func TestRemoveItemThenReAddSameDish(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	item := createCartTestMenuItem(t, db, 1, "水煮鱼", 48, true)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.RemoveItem(1, cart.Items[0].ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	// 删除后同一道菜必须能重新加购，(cart_id, menu_item_id) 唯一索引不应拦截
	cart, err = svc.AddItem(AddItemInput{UserID: 1, MenuItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("re-added cart want single item qty 3 got %+v", cart.Items)
	}
	if !cart.TotalPrice.Decimal.Equal(decimal.NewFromInt(144)) {
		t.Fatalf("total want 144 got %s", cart.TotalPrice.String())
	}
}
