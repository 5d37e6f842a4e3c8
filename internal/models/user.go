package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
// 角色在登录时解析写入 JWT，之后随请求上下文传递。
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                  // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`     // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                     // 密码哈希（不返回给前端）
	Role               string         `gorm:"index;not null;default:'customer'" json:"role"` // 角色（customer/waiter/restaurant_owner/superuser）
	FirstName          string         `gorm:"type:varchar(255)" json:"first_name"`   // 名
	LastName           string         `gorm:"type:varchar(255)" json:"last_name"`    // 姓
	Phone              string         `gorm:"type:varchar(20)" json:"phone"`         // 电话
	Bio                string         `gorm:"type:text" json:"bio"`                  // 简介
	RestaurantID       *uint          `gorm:"index" json:"restaurant_id,omitempty"`  // 所属餐厅（服务员）
	Status             string         `gorm:"default:'active'" json:"status"`        // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`           // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                        // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                         // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`               // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 拼接展示姓名
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
