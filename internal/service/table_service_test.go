package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/diancan-next/internal/config"
	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTableServiceTest(t *testing.T) (*TableService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:table_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.QR.BaseURL = "https://order.example.com/scan"
	cfg.QR.Size = 128

	tableRepo := repository.NewTableRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewTableService(cfg, tableRepo, restaurantRepo, userRepo), db
}

func createTableTestRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	now := time.Now()
	restaurant := &models.Restaurant{
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	return restaurant
}

func createTableTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestCreateTableRejectsDuplicateNumber(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "川香园")

	if _, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 1}); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if _, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 1}); !errors.Is(err, ErrTableExists) {
		t.Fatalf("duplicate number want ErrTableExists got %v", err)
	}
	if _, err := svc.Create(CreateTableInput{RestaurantID: 404, TableNumber: 2}); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("unknown restaurant want ErrRestaurantNotFound got %v", err)
	}
}

func TestGetByIDGeneratesQROnce(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "粤味轩")
	waiter := createTableTestUser(t, db, "waiter@example.com", constants.RoleWaiter)

	created, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 7, WaiterID: &waiter.ID})
	if err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if created.QRData != "" {
		t.Fatalf("qr should not be generated before first access")
	}

	table, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get table failed: %v", err)
	}
	wantPayload := fmt.Sprintf("restaurant=%d&table=7&waiter=%d", restaurant.ID, waiter.ID)
	if !strings.Contains(table.QRData, wantPayload) {
		t.Fatalf("qr data want payload %q got %q", wantPayload, table.QRData)
	}
	if !strings.HasPrefix(table.QRData, "https://order.example.com/scan?") {
		t.Fatalf("qr data should carry base url prefix, got %q", table.QRData)
	}
	if _, err := base64.StdEncoding.DecodeString(table.QRImage); err != nil {
		t.Fatalf("qr image should be base64 png: %v", err)
	}

	// 已印刷的桌码必须长期可扫：再次访问不重新生成
	again, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again.QRData != table.QRData || again.QRImage != table.QRImage {
		t.Fatalf("qr should stay stable across reads")
	}
}

func TestDeleteTableFreesNumber(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "早茶楼")

	created, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 3})
	if err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete table failed: %v", err)
	}

	// 撤掉的桌号要能重新启用
	recreated, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 3})
	if err != nil {
		t.Fatalf("recreate table number failed: %v", err)
	}
	if recreated.ID == created.ID {
		t.Fatalf("recreated table should be a new row")
	}
}

func TestResolveScanLoggedInUser(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "家常菜馆")
	created, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 4})
	if err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	table, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get table failed: %v", err)
	}

	result, err := svc.ResolveScan(table.QRData, 1)
	if err != nil {
		t.Fatalf("resolve scan failed: %v", err)
	}
	if result.NextStep != constants.ScanNextProceedToMenu {
		t.Fatalf("next step want PROCEED_TO_MENU got %s", result.NextStep)
	}
	if result.RestaurantID != restaurant.ID || result.TableID != table.ID || result.TableNumber != 4 {
		t.Fatalf("scan result mismatch: %+v", result)
	}
	if result.Restaurant == nil || result.Restaurant.Name != "家常菜馆" {
		t.Fatalf("scan result should attach restaurant")
	}
}

func TestResolveScanAnonymousUser(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "面馆")
	if _, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 2}); err != nil {
		t.Fatalf("create table failed: %v", err)
	}

	payload := fmt.Sprintf("restaurant=%d&table=2", restaurant.ID)
	result, err := svc.ResolveScan(payload, 0)
	if err != nil {
		t.Fatalf("resolve scan failed: %v", err)
	}
	if result.NextStep != constants.ScanNextRequireRegistration {
		t.Fatalf("next step want REQUIRE_REGISTRATION got %s", result.NextStep)
	}
	if result.RedirectQR != payload {
		t.Fatalf("redirect qr want %q got %q", payload, result.RedirectQR)
	}
	if result.Restaurant != nil {
		t.Fatalf("anonymous scan should not expose restaurant detail")
	}
}

func TestResolveScanInvalidPayload(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "烧烤店")

	if _, err := svc.ResolveScan("", 1); !errors.Is(err, ErrInvalidQRData) {
		t.Fatalf("empty payload want ErrInvalidQRData got %v", err)
	}
	if _, err := svc.ResolveScan("restaurant=0&table=1", 1); !errors.Is(err, ErrInvalidQRData) {
		t.Fatalf("zero restaurant want ErrInvalidQRData got %v", err)
	}
	if _, err := svc.ResolveScan(fmt.Sprintf("restaurant=%d&table=99", restaurant.ID), 1); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("unknown table want ErrTableNotFound got %v", err)
	}
}

func TestAssignWaiterRequiresWaiterRole(t *testing.T) {
	svc, db := setupTableServiceTest(t)
	restaurant := createTableTestRestaurant(t, db, "火锅店")
	created, err := svc.Create(CreateTableInput{RestaurantID: restaurant.ID, TableNumber: 8})
	if err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	customer := createTableTestUser(t, db, "customer@example.com", constants.RoleCustomer)
	waiter := createTableTestUser(t, db, "waiter2@example.com", constants.RoleWaiter)

	if _, err := svc.AssignWaiter(created.ID, customer.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-waiter want ErrNotFound got %v", err)
	}

	table, err := svc.AssignWaiter(created.ID, waiter.ID)
	if err != nil {
		t.Fatalf("assign waiter failed: %v", err)
	}
	if table.WaiterID == nil || *table.WaiterID != waiter.ID {
		t.Fatalf("waiter id want %d got %v", waiter.ID, table.WaiterID)
	}
}
