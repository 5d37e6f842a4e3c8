package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表
// 每个用户至多一辆购物车（user_id 唯一），首次访问时惰性创建，结账时清空但不删除。
// 不变量：TotalPrice 恒等于所有购物车项 price × quantity 之和。
type Cart struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`                      // 用户ID
	TotalPrice Money          `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"` // 合计金额（派生值）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项表
// Price 是加入购物车时的目录价快照，目录改价不回溯已有项。
// (cart_id, menu_item_id) 唯一：重复加购合并数量而不是新增行。
// 购物车项是临时数据，删除/结账清空都是物理删除，否则唯一索引会挡住同菜品的再次加购。
type CartItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                             // 主键
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_item_cart_menu" json:"cart_id"`      // 购物车ID
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_cart_item_cart_menu" json:"menu_item_id"` // 菜品ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                         // 数量（≥1）
	Comments   string    `gorm:"type:text" json:"comments"`                                        // 备注
	Price      Money     `gorm:"type:decimal(10,2);not null" json:"price"`                         // 单价快照
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                                          // 更新时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"` // 菜品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
