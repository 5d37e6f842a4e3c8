package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 结账时一次性创建；TotalPrice 是下单时刻购物车合计的快照，之后不再根据订单项重算。
// 核心字段创建后不可变，仅 OrderStatus / PaymentStatus / OrderCancelled 允许由店员流转。
type Order struct {
	ID          uint   `gorm:"primarykey" json:"id"`                                  // 主键
	UserID      uint   `gorm:"index;not null" json:"user_id"`                         // 下单用户ID
	OrderType   string `gorm:"type:varchar(20);not null;default:'DINE_IN'" json:"order_type"` // 订单类型（DINE_IN/TAKEAWAY/DELIVERY）
	OrderStatus string `gorm:"type:varchar(20);index;not null;default:'TAKING'" json:"order_status"` // 订单状态

	// 堂食字段（仅 DINE_IN）
	TableID  *uint `gorm:"index" json:"table_id,omitempty"`  // 餐桌ID
	WaiterID *uint `gorm:"index" json:"waiter_id,omitempty"` // 服务员ID

	// 线上订单字段（仅 TAKEAWAY/DELIVERY），下单时快照
	BillingFirstName string `gorm:"type:varchar(255)" json:"billing_first_name,omitempty"` // 账单名
	BillingLastName  string `gorm:"type:varchar(255)" json:"billing_last_name,omitempty"`  // 账单姓
	BillingEmail     string `gorm:"type:varchar(255)" json:"billing_email,omitempty"`      // 账单邮箱
	BillingPhone     string `gorm:"type:varchar(255)" json:"billing_phone,omitempty"`      // 账单电话
	BillingAddress   string `gorm:"type:varchar(500)" json:"billing_address,omitempty"`    // 账单地址
	ShippingAddress  string `gorm:"type:varchar(500)" json:"shipping_address,omitempty"`   // 配送地址

	// 公共字段
	OrderedDate    *time.Time     `gorm:"index" json:"ordered_date"`                                // 下单时间
	TotalPrice     Money          `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"` // 合计金额（快照）
	PaymentStatus  string         `gorm:"type:varchar(20);not null;default:'Pending'" json:"payment_status"` // 支付状态
	OrderCancelled bool           `gorm:"default:false" json:"order_cancelled"`                     // 是否已取消
	Ordered        bool           `gorm:"default:false" json:"ordered"`                             // 是否已下单
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`                            // 订单项
	Table  *Table      `gorm:"foreignKey:TableID;constraint:OnDelete:SET NULL" json:"table,omitempty"` // 餐桌（撤桌后置空，账单快照保留）
	Waiter *User       `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"` // 服务员
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表
// 结账时从购物车项冻结复制（菜品、数量、备注、单价快照），创建后不再变更。
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                     // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`           // 所属订单ID
	MenuItemID uint           `gorm:"index;not null" json:"menu_item_id"`       // 菜品ID
	Quantity   int            `gorm:"not null" json:"quantity"`                 // 数量
	Comments   string         `gorm:"type:text" json:"comments"`                // 备注
	Price      Money          `gorm:"type:decimal(10,2);not null" json:"price"` // 单价快照
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"` // 菜品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
