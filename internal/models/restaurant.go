package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant 餐厅表
type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`     // 餐厅名称
	Description string         `gorm:"type:text" json:"description"`         // 描述
	Address     string         `gorm:"type:varchar(255)" json:"address"`     // 地址
	PhoneNumber string         `gorm:"type:varchar(20)" json:"phone_number"` // 联系电话
	Email       string         `gorm:"type:varchar(255)" json:"email"`       // 联系邮箱
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`  // 是否营业
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Owners []User  `gorm:"many2many:restaurant_owners" json:"owners,omitempty"` // 店主（餐厅老板角色）
	Menus  []Menu  `gorm:"foreignKey:RestaurantID" json:"menus,omitempty"`      // 菜单
	Tables []Table `gorm:"foreignKey:RestaurantID" json:"tables,omitempty"`     // 餐桌
}

// TableName 指定表名
func (Restaurant) TableName() string {
	return "restaurants"
}
