package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diancan-next/internal/config"
	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}

	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterIssuesCustomerToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Email:     " Diner@Example.COM ",
		Password:  "secret-pass-1",
		FirstName: "  小明  ",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "diner@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("role want customer got %s", user.Role)
	}
	if user.FirstName != "小明" {
		t.Fatalf("first name should be trimmed, got %q", user.FirstName)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("register should issue a valid token")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != constants.RoleCustomer {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "secret-pass-1"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "secret-pass-1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// 邮箱大小写不同视为同一账号
	if _, _, _, err := svc.Register(RegisterInput{Email: "A@Example.com", Password: "secret-pass-1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestLoginCredentialAndStatusChecks(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	if _, _, _, err := svc.Register(RegisterInput{Email: "diner@example.com", Password: "secret-pass-1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("nobody@example.com", "secret-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("diner@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}

	user, _, _, err := svc.Login("diner@example.com", "secret-pass-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("login should record last login time")
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("diner@example.com", "secret-pass-1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordRevokesOldTokens(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "diner@example.com", Password: "secret-pass-1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-pass", "secret-pass-2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret-pass-1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret-pass-1", "secret-pass-2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	// 改密后旧 token 全部失效
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("change password should set token invalid-before time")
	}

	if _, _, _, err := svc.Login("diner@example.com", "secret-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("diner@example.com", "secret-pass-2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfileRequiresAtLeastOneField(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "diner@example.com", Password: "secret-pass-1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{}); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("empty input want ErrProfileEmpty got %v", err)
	}

	phone := " 13800138000 "
	bio := "爱吃辣"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Phone: &phone, Bio: &bio})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Phone != "13800138000" || updated.Bio != "爱吃辣" {
		t.Fatalf("profile not applied: %+v", updated)
	}
}
