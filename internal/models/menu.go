package models

import (
	"time"

	"gorm.io/gorm"
)

// Menu 菜单表
type Menu struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // 主键
	RestaurantID uint           `gorm:"index;not null" json:"restaurant_id"` // 所属餐厅ID
	Name         string         `gorm:"not null" json:"name"`              // 菜单名称
	Description  string         `gorm:"type:text" json:"description"`      // 描述
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间

	Items []MenuItem `gorm:"foreignKey:MenuID" json:"items,omitempty"` // 菜品
}

// TableName 指定表名
func (Menu) TableName() string {
	return "menus"
}

// MenuItem 菜品表
// 价格是目录价，加入购物车后对已有购物车项不再生效（快照定价）。
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 主键
	MenuID      uint           `gorm:"index;not null" json:"menu_id"`                    // 所属菜单ID
	CategoryID  *uint          `gorm:"index" json:"category_id,omitempty"`               // 分类ID
	Name        string         `gorm:"not null" json:"name"`                             // 菜品名称
	Description string         `gorm:"type:text" json:"description"`                     // 描述
	Image       string         `gorm:"type:varchar(500)" json:"image"`                   // 图片路径
	Price       Money          `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 目录单价
	IsAvailable bool           `gorm:"index" json:"is_available"`                        // 是否可售（写入方显式赋值，default 标签会让零值 false 被建表默认覆盖）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间

	Category    *Category            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`     // 分类
	Ingredients []MenuItemIngredient `gorm:"foreignKey:MenuItemID" json:"ingredients,omitempty"`  // 配料
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuItemIngredient 菜品配料表
type MenuItemIngredient struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // 主键
	MenuItemID  uint           `gorm:"index;not null" json:"menu_item_id"` // 所属菜品ID
	Name        string         `gorm:"not null" json:"name"`              // 配料名称
	Quantity    string         `gorm:"type:varchar(100)" json:"quantity"` // 用量（展示文本）
	Description string         `gorm:"type:text" json:"description"`      // 描述
	CreatedAt   time.Time      `json:"created_at"`                        // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (MenuItemIngredient) TableName() string {
	return "menu_item_ingredients"
}
