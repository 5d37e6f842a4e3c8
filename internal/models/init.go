package models

import (
	"github.com/diancan-next/internal/constants"
	"github.com/diancan-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperuser 初始化默认超级管理员账号
func InitDefaultSuperuser(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.RoleSuperuser).Count(&count)

	// 已存在超级管理员则跳过
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleSuperuser,
		Status:       constants.UserStatusActive,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_superuser_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_superuser_password_change_required", "email", email)
	} else {
		logger.Warnw("default_superuser_created", "email", email, "password_hidden", true)
	}

	return nil
}
