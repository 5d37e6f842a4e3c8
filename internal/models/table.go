package models

import (
	"time"
)

// Table 餐桌表
// QRData 在首次持久化时生成一次，之后不再变更：已印刷的桌码必须长期可扫。
// 删除是物理删除：桌号在餐厅内唯一，撤掉的桌号必须可以重新启用。
type Table struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                  // 主键
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_table_restaurant_number" json:"restaurant_id"` // 所属餐厅ID
	TableNumber  int       `gorm:"not null;uniqueIndex:idx_table_restaurant_number" json:"table_number"`  // 桌号（餐厅内唯一）
	WaiterID     *uint     `gorm:"index" json:"waiter_id,omitempty"`                                      // 负责服务员ID
	QRData       string    `gorm:"type:varchar(255)" json:"qr_data"`                                      // 二维码内容
	QRImage      string    `gorm:"type:text" json:"qr_image"`                                             // 二维码 PNG（base64）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                            // 更新时间

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"` // 餐厅
	Waiter     *User       `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`         // 服务员
}

// TableName 指定表名
func (Table) TableName() string {
	return "tables"
}
