package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 订单评价表
// 评价挂在订单上，作者身份取自登录用户，评分范围 1..5 由服务层校验。
// RestaurantID 从订单餐桌冗余而来，供餐厅评分汇总使用；线上订单无餐厅归属时为空。
type Review struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	OrderID      uint           `gorm:"index;not null" json:"order_id"`       // 被评价订单ID
	UserID       uint           `gorm:"index;not null" json:"user_id"`        // 评价用户ID
	RestaurantID *uint          `gorm:"index" json:"restaurant_id,omitempty"` // 餐厅ID（冗余）
	Rate         int            `gorm:"not null" json:"rate"`                 // 评分（1..5）
	Comment      string         `gorm:"type:text" json:"comment"`             // 评价内容
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Order      *Order      `gorm:"foreignKey:OrderID" json:"order,omitempty"`           // 订单
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`             // 评价用户
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"` // 餐厅
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
