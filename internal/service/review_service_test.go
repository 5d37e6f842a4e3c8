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
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	reviewRepo := repository.NewReviewRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	return NewReviewService(reviewRepo, restaurantRepo, orderRepo), db
}

func createReviewTestRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
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

func createReviewTestTable(t *testing.T, db *gorm.DB, restaurantID uint, number int) *models.Table {
	t.Helper()
	now := time.Now()
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  number,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	return table
}

// createReviewTestOrder 插入一笔已完成订单；tableID 为空表示线上订单。
func createReviewTestOrder(t *testing.T, db *gorm.DB, userID uint, tableID *uint) *models.Order {
	t.Helper()
	now := time.Now()
	orderType := constants.OrderTypeDineIn
	if tableID == nil {
		orderType = constants.OrderTypeTakeaway
	}
	order := &models.Order{
		UserID:      userID,
		OrderType:   orderType,
		OrderStatus: constants.OrderStatusCompleted,
		TableID:     tableID,
		OrderedDate: &now,
		Ordered:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateReviewValidation(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "小龙坎")
	table := createReviewTestTable(t, db, restaurant.ID, 3)
	order := createReviewTestOrder(t, db, 1, &table.ID)

	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 0}); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("rate 0 want ErrInvalidRate got %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 6}); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("rate 6 want ErrInvalidRate got %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: 404, Rate: 5}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown order want ErrOrderNotFound got %v", err)
	}
	// 他人订单按不存在处理
	if _, err := svc.Create(CreateReviewInput{UserID: 2, OrderID: order.ID, Rate: 5}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign order want ErrOrderNotFound got %v", err)
	}

	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 5, Comment: "  很好吃  "})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.OrderID != order.ID {
		t.Fatalf("review order want %d got %d", order.ID, review.OrderID)
	}
	if review.Comment != "很好吃" {
		t.Fatalf("comment should be trimmed, got %q", review.Comment)
	}
}

func TestCreateReviewDerivesRestaurantFromTable(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "翠华餐厅")
	table := createReviewTestTable(t, db, restaurant.ID, 8)

	dineIn := createReviewTestOrder(t, db, 1, &table.ID)
	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: dineIn.ID, Rate: 4})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.RestaurantID == nil || *review.RestaurantID != restaurant.ID {
		t.Fatalf("dine-in review want restaurant %d got %v", restaurant.ID, review.RestaurantID)
	}

	// 线上订单没有餐厅归属
	takeaway := createReviewTestOrder(t, db, 1, nil)
	online, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: takeaway.ID, Rate: 5})
	if err != nil {
		t.Fatalf("create takeaway review failed: %v", err)
	}
	if online.RestaurantID != nil {
		t.Fatalf("takeaway review want nil restaurant got %v", *online.RestaurantID)
	}
}

func TestReviewVisibilityScopedToAuthor(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "沙县小吃")
	table := createReviewTestTable(t, db, restaurant.ID, 1)
	order := createReviewTestOrder(t, db, 1, &table.ID)
	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 4})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if _, err := svc.GetByID(review.ID, 1, constants.RoleCustomer); err != nil {
		t.Fatalf("author should see own review: %v", err)
	}
	// 其他顾客不可见，员工可见
	if _, err := svc.GetByID(review.ID, 2, constants.RoleCustomer); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("other customer want ErrReviewNotFound got %v", err)
	}
	if _, err := svc.GetByID(review.ID, 2, constants.RoleWaiter); err != nil {
		t.Fatalf("staff should see any review: %v", err)
	}
}

func TestUpdateReviewOnlyByAuthor(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "老乡鸡")
	table := createReviewTestTable(t, db, restaurant.ID, 2)
	order := createReviewTestOrder(t, db, 1, &table.ID)
	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 3, Comment: "一般"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	newRate := 5
	if _, err := svc.Update(review.ID, 2, &newRate, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user want ErrForbidden got %v", err)
	}
	badRate := 9
	if _, err := svc.Update(review.ID, 1, &badRate, nil); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("rate 9 want ErrInvalidRate got %v", err)
	}

	newComment := "回头客"
	updated, err := svc.Update(review.ID, 1, &newRate, &newComment)
	if err != nil {
		t.Fatalf("update review failed: %v", err)
	}
	if updated.Rate != 5 || updated.Comment != "回头客" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestDeleteReviewAuthorization(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "蜀大侠")
	table := createReviewTestTable(t, db, restaurant.ID, 5)
	order := createReviewTestOrder(t, db, 1, &table.ID)
	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, Rate: 2})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if err := svc.Delete(review.ID, 2, constants.RoleCustomer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other customer want ErrForbidden got %v", err)
	}
	// superuser 可删除任意评价
	if err := svc.Delete(review.ID, 2, constants.RoleSuperuser); err != nil {
		t.Fatalf("superuser delete failed: %v", err)
	}
	if err := svc.Delete(review.ID, 1, constants.RoleCustomer); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("deleted review want ErrReviewNotFound got %v", err)
	}
}

func TestRestaurantRatingAverages(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	restaurant := createReviewTestRestaurant(t, db, "南京大牌档")
	table := createReviewTestTable(t, db, restaurant.ID, 6)

	if _, err := svc.Rating(404); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("unknown restaurant want ErrRestaurantNotFound got %v", err)
	}

	empty, err := svc.Rating(restaurant.ID)
	if err != nil {
		t.Fatalf("rating failed: %v", err)
	}
	if empty.Total != 0 || empty.Average != 0 {
		t.Fatalf("no reviews want zero rating got %+v", empty)
	}

	first := createReviewTestOrder(t, db, 1, &table.ID)
	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: first.ID, Rate: 4}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	second := createReviewTestOrder(t, db, 2, &table.ID)
	if _, err := svc.Create(CreateReviewInput{UserID: 2, OrderID: second.ID, Rate: 5}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	// 线上订单的评价不计入餐厅评分
	online := createReviewTestOrder(t, db, 1, nil)
	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: online.ID, Rate: 1}); err != nil {
		t.Fatalf("create takeaway review failed: %v", err)
	}

	rating, err := svc.Rating(restaurant.ID)
	if err != nil {
		t.Fatalf("rating failed: %v", err)
	}
	if rating.Total != 2 || rating.Average != 4.5 {
		t.Fatalf("rating want avg 4.5 total 2 got %+v", rating)
	}
}
