package repository

import "time"

// MenuItemListFilter 查询菜品列表的过滤条件
type MenuItemListFilter struct {
	Page          int
	PageSize      int
	MenuID        uint
	RestaurantID  uint
	CategoryID    string
	Search        string
	OnlyAvailable bool
	WithCategory  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	WaiterID    uint
	TableID     uint
	OrderType   string
	OrderStatus string
	OnlyOrdered bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page         int
	PageSize     int
	Keyword      string
	Role         string
	Status       string
	RestaurantID uint
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page         int
	PageSize     int
	RestaurantID uint
	UserID       uint
	MinRate      int
}

// TableListFilter 查询餐桌列表的过滤条件
type TableListFilter struct {
	Page         int
	PageSize     int
	RestaurantID uint
	WaiterID     uint
}

// RestaurantListFilter 查询餐厅列表的过滤条件
type RestaurantListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
	OwnerID    uint
}
