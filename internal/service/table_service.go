package service

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/diancan-next/internal/config"
	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/logger"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
)

// TableService 餐桌服务
type TableService struct {
	cfg            *config.Config
	tableRepo      repository.TableRepository
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
}

// NewTableService 创建餐桌服务
func NewTableService(cfg *config.Config, tableRepo repository.TableRepository, restaurantRepo repository.RestaurantRepository, userRepo repository.UserRepository) *TableService {
	return &TableService{
		cfg:            cfg,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
	}
}

// CreateTableInput 创建餐桌输入
type CreateTableInput struct {
	RestaurantID uint
	TableNumber  int
	WaiterID     *uint
}

// ScanResult 扫码解析结果
type ScanResult struct {
	NextStep     string             `json:"next_step"`
	RestaurantID uint               `json:"restaurant_id"`
	TableID      uint               `json:"table_id"`
	TableNumber  int                `json:"table_number"`
	WaiterID     *uint              `json:"waiter_id,omitempty"`
	Restaurant   *models.Restaurant `json:"restaurant,omitempty"`
	// 未登录用户完成注册后继续点餐用的回跳参数
	RedirectQR string `json:"redirect_qr,omitempty"`
}

// Create 创建餐桌
func (s *TableService) Create(input CreateTableInput) (*models.Table, error) {
	if input.RestaurantID == 0 || input.TableNumber <= 0 {
		return nil, ErrNotFound
	}
	restaurant, err := s.restaurantRepo.GetByID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	existing, err := s.tableRepo.GetByRestaurantAndNumber(input.RestaurantID, input.TableNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTableExists
	}

	now := time.Now()
	table := &models.Table{
		RestaurantID: input.RestaurantID,
		TableNumber:  input.TableNumber,
		WaiterID:     input.WaiterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.tableRepo.Create(table); err != nil {
		return nil, err
	}
	return table, nil
}

// GetByID 获取餐桌（首次访问时生成二维码）
func (s *TableService) GetByID(id uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}
	if err := s.ensureQR(table); err != nil {
		return nil, err
	}
	return table, nil
}

// List 餐桌列表
func (s *TableService) List(filter repository.TableListFilter) ([]models.Table, int64, error) {
	return s.tableRepo.List(filter)
}

// AssignWaiter 指派服务员
func (s *TableService) AssignWaiter(tableID, waiterID uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}
	waiter, err := s.userRepo.GetByID(waiterID)
	if err != nil {
		return nil, err
	}
	if waiter == nil || waiter.Role != constants.RoleWaiter {
		return nil, ErrNotFound
	}

	table.WaiterID = &waiter.ID
	table.UpdatedAt = time.Now()
	if err := s.tableRepo.Update(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Delete 删除餐桌
func (s *TableService) Delete(id uint) error {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		return err
	}
	if table == nil {
		return ErrTableNotFound
	}
	return s.tableRepo.Delete(id)
}

// ensureQR 首次访问时生成二维码并落库，之后保持稳定不再变化。
func (s *TableService) ensureQR(table *models.Table) error {
	if table.QRData != "" {
		return nil
	}

	payload := buildQRPayload(table)
	qrData := payload
	if base := strings.TrimSpace(s.cfg.QR.BaseURL); base != "" {
		qrData = base + "?" + payload
	}

	size := s.cfg.QR.Size
	if size <= 0 {
		size = constants.QRImageSize
	}
	png, err := qrcode.Encode(qrData, qrcode.Medium, size)
	if err != nil {
		return err
	}

	table.QRData = qrData
	table.QRImage = base64.StdEncoding.EncodeToString(png)
	table.UpdatedAt = time.Now()
	if err := s.tableRepo.Update(table); err != nil {
		return err
	}

	logger.Infow("table_qr_generated",
		"table_id", table.ID,
		"restaurant_id", table.RestaurantID,
		"table_number", table.TableNumber,
	)
	return nil
}

// buildQRPayload 生成二维码携带的查询串
func buildQRPayload(table *models.Table) string {
	payload := fmt.Sprintf("restaurant=%d&table=%d", table.RestaurantID, table.TableNumber)
	if table.WaiterID != nil && *table.WaiterID > 0 {
		payload += fmt.Sprintf("&waiter=%d", *table.WaiterID)
	}
	return payload
}

// ResolveScan 解析扫码内容
// 已登录用户直接进入点餐流程；未登录用户返回注册引导并携带回跳参数。
func (s *TableService) ResolveScan(qrData string, userID uint) (*ScanResult, error) {
	trimmed := strings.TrimSpace(qrData)
	if trimmed == "" {
		return nil, ErrInvalidQRData
	}
	// 允许携带前端地址前缀，仅解析 ? 之后的查询串
	if idx := strings.Index(trimmed, "?"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	values, err := url.ParseQuery(trimmed)
	if err != nil {
		return nil, ErrInvalidQRData
	}
	restaurantID, err := strconv.ParseUint(values.Get("restaurant"), 10, 32)
	if err != nil || restaurantID == 0 {
		return nil, ErrInvalidQRData
	}
	tableNumber, err := strconv.Atoi(values.Get("table"))
	if err != nil || tableNumber <= 0 {
		return nil, ErrInvalidQRData
	}

	table, err := s.tableRepo.GetByRestaurantAndNumber(uint(restaurantID), tableNumber)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}

	result := &ScanResult{
		RestaurantID: table.RestaurantID,
		TableID:      table.ID,
		TableNumber:  table.TableNumber,
		WaiterID:     table.WaiterID,
	}

	if userID == 0 {
		result.NextStep = constants.ScanNextRequireRegistration
		result.RedirectQR = trimmed
		return result, nil
	}

	restaurant, err := s.restaurantRepo.GetByID(table.RestaurantID)
	if err != nil {
		return nil, err
	}
	result.NextStep = constants.ScanNextProceedToMenu
	result.Restaurant = restaurant
	return result, nil
}
