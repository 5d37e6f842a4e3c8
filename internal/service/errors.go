package service

import "errors"

// 业务错误定义，由 HTTP 层统一映射为响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("原密码不正确")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrProfileEmpty       = errors.New("没有可更新的资料")
	ErrForbidden          = errors.New("没有操作权限")

	ErrInvalidQuantity     = errors.New("数量必须大于 0")
	ErrMenuItemNotFound    = errors.New("菜品不存在")
	ErrMenuItemUnavailable = errors.New("菜品已下架")
	ErrCartItemNotFound    = errors.New("购物车项不存在")
	ErrCartNotFound        = errors.New("购物车不存在")
	ErrCartEmpty           = errors.New("购物车为空")

	ErrOrderNotFound         = errors.New("订单不存在")
	ErrOrderUpdateFailed     = errors.New("订单更新失败")
	ErrInvalidOrderType      = errors.New("订单类型不正确")
	ErrInvalidOrderStatus    = errors.New("订单状态不合法")
	ErrOrderStatusTransition = errors.New("订单状态不允许该流转")
	ErrInvalidPaymentStatus  = errors.New("支付状态不合法")
	ErrTableRequired         = errors.New("堂食订单必须指定餐桌")
	ErrAddressRequired       = errors.New("外带或外送订单必须填写联系信息")

	ErrRestaurantNotFound = errors.New("餐厅不存在")
	ErrRestaurantExists   = errors.New("餐厅名称已存在")
	ErrMenuNotFound       = errors.New("菜单不存在")
	ErrCategoryNotFound   = errors.New("分类不存在")
	ErrCategoryExists     = errors.New("分类名称已存在")
	ErrCategoryInUse      = errors.New("分类下仍有菜品")

	ErrTableNotFound = errors.New("餐桌不存在")
	ErrTableExists   = errors.New("餐桌编号已存在")
	ErrInvalidQRData = errors.New("二维码内容不正确")

	ErrReviewNotFound = errors.New("评价不存在")
	ErrInvalidRate    = errors.New("评分必须在 1 到 5 之间")
)
