package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 菜品分类表（例如披萨、饮品、甜点）
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`             // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"` // 分类名称
	Description string         `gorm:"type:text" json:"description"`     // 描述
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
