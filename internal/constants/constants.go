package constants

// 订单类型常量
const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeaway = "TAKEAWAY"
	OrderTypeDelivery = "DELIVERY"
)

// 订单状态常量
const (
	OrderStatusTaking    = "TAKING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusServing   = "SERVING"
	OrderStatusCompleted = "COMPLETED"
)

// OrderStatusTransitions 订单状态流转表（仅允许向前推进一步）
var OrderStatusTransitions = map[string]string{
	OrderStatusTaking:    OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusServing,
	OrderStatusServing:   OrderStatusCompleted,
}

// 支付状态常量
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusConfirmed = "Confirmed"
	PaymentStatusCancelled = "Cancelled"
)

// 用户角色常量
const (
	RoleCustomer        = "customer"
	RoleWaiter          = "waiter"
	RoleRestaurantOwner = "restaurant_owner"
	RoleSuperuser       = "superuser"
)

// IsStaffRole 判断角色是否属于店员侧（服务员/店主/超管）
func IsStaffRole(role string) bool {
	switch role {
	case RoleWaiter, RoleRestaurantOwner, RoleSuperuser:
		return true
	default:
		return false
	}
}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 扫码解析结果常量
const (
	ScanNextProceedToMenu       = "PROCEED_TO_MENU"
	ScanNextRequireRegistration = "REQUIRE_REGISTRATION"
)

// 评分范围常量
const (
	ReviewRateMin = 1
	ReviewRateMax = 5
)

// 二维码常量
const (
	QRImageSize = 256
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "dc"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}
