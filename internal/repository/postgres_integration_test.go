//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/diancan-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.MenuItem{},
		&models.Menu{},
		&models.Category{},
		&models.Restaurant{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Category{},
		&models.Menu{},
		&models.MenuItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCaseInsensitiveSearchRepositories(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	restaurant := &models.Restaurant{
		Name:     "Golden Dragon",
		Address:  "1 Harbour Road",
		IsActive: true,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}

	restaurantRepo := NewRestaurantRepository(db)
	restaurants, total, err := restaurantRepo.List(RestaurantListFilter{Search: "golden", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list restaurants failed: %v", err)
	}
	if total != 1 || len(restaurants) != 1 {
		t.Fatalf("restaurant ILIKE search want 1 got total=%d len=%d", total, len(restaurants))
	}

	menu := &models.Menu{RestaurantID: restaurant.ID, Name: "Dinner"}
	if err := db.Create(menu).Error; err != nil {
		t.Fatalf("create menu failed: %v", err)
	}
	item := &models.MenuItem{
		MenuID:      menu.ID,
		Name:        "Kung Pao Chicken",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(15.5)),
		IsAvailable: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}

	menuRepo := NewMenuRepository(db)
	items, itemTotal, err := menuRepo.ListItems(MenuItemListFilter{Search: "kung pao", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list menu items failed: %v", err)
	}
	if itemTotal != 1 || len(items) != 1 {
		t.Fatalf("menu item ILIKE search want 1 got total=%d len=%d", itemTotal, len(items))
	}
}
