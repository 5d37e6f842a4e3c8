package i18n

import (
	"fmt"
	"strings"

	"github.com/diancan-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// messages 站点文案表，按语言分组
var messages = map[string]map[string]string{
	constants.LocaleZhCN: {
		"error.invalid_params":    "参数不正确",
		"error.unauthorized":      "请先登录",
		"error.forbidden":         "没有操作权限",
		"error.not_found":         "记录不存在",
		"error.internal":          "服务器内部错误",
		"error.too_many_requests": "请求过于频繁，请稍后再试",
		"error.bad_request":       "请求参数不正确",

		"error.rate_limited":           "请求过于频繁，请稍后再试",
		"error.login_too_many":         "登录尝试过于频繁，请稍后再试",
		"error.rate_limit_unavailable": "限流服务暂不可用，请稍后再试",

		"error.jwt_secret_missing":    "服务端未配置签名密钥",
		"error.auth_header_missing":   "缺少 Authorization 请求头",
		"error.auth_header_invalid":   "Authorization 请求头格式不正确",
		"error.token_invalid":         "登录凭证无效",
		"error.token_revoked":         "登录凭证已失效，请重新登录",
		"error.user_id_invalid":       "用户标识不合法",
		"error.user_id_type_invalid":  "用户标识类型不合法",
		"error.login_failed":          "登录失败",
		"error.register_failed":       "注册失败",
		"error.user_fetch_failed":     "获取用户信息失败",
		"error.profile_update_failed": "更新资料失败",
		"error.password_change_failed": "修改密码失败",

		"error.invalid_email":       "邮箱格式不正确",
		"error.email_exists":        "邮箱已被注册",
		"error.invalid_credentials": "邮箱或密码错误",
		"error.invalid_password":    "原密码不正确",
		"error.weak_password":       "密码强度不足",
		"error.user_disabled":       "账号已被禁用",
		"error.profile_empty":       "没有可更新的资料",

		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",

		"error.invalid_quantity":      "数量必须大于 0",
		"error.menu_item_not_found":   "菜品不存在",
		"error.menu_item_unavailable": "菜品已下架",
		"error.cart_item_not_found":   "购物车项不存在",
		"error.cart_not_found":        "购物车不存在",
		"error.cart_empty":            "购物车为空",

		"error.order_not_found":         "订单不存在",
		"error.order_update_failed":     "订单更新失败",
		"error.invalid_order_type":      "订单类型不正确",
		"error.invalid_order_status":    "订单状态不合法",
		"error.order_status_transition": "订单状态不允许该流转",
		"error.invalid_payment_status":  "支付状态不合法",
		"error.table_required":          "堂食订单必须指定餐桌",
		"error.address_required":        "外带或外送订单必须填写联系信息",

		"error.restaurant_not_found": "餐厅不存在",
		"error.restaurant_exists":    "餐厅名称已存在",
		"error.menu_not_found":       "菜单不存在",
		"error.category_not_found":   "分类不存在",
		"error.category_exists":      "分类名称已存在",
		"error.category_in_use":      "分类下仍有菜品",

		"error.table_not_found": "餐桌不存在",
		"error.table_exists":    "餐桌编号已存在",
		"error.invalid_qr":      "二维码内容不正确",

		"error.review_not_found": "评价不存在",
		"error.invalid_rate":     "评分必须在 1 到 5 之间",

		"error.cart_fetch_failed":      "获取购物车失败",
		"error.cart_update_failed":     "更新购物车失败",
		"error.order_fetch_failed":     "获取订单失败",
		"error.order_create_failed":    "下单失败",
		"error.review_fetch_failed":    "获取评价失败",
		"error.review_save_failed":     "保存评价失败",
		"error.restaurant_fetch_failed": "获取餐厅信息失败",
		"error.restaurant_save_failed":  "保存餐厅失败",
		"error.menu_fetch_failed":       "获取菜单失败",
		"error.menu_save_failed":        "保存菜单失败",
		"error.menu_item_fetch_failed":  "获取菜品失败",
		"error.menu_item_save_failed":   "保存菜品失败",
		"error.category_fetch_failed":   "获取分类失败",
		"error.category_save_failed":    "保存分类失败",
		"error.table_fetch_failed":      "获取餐桌失败",
		"error.table_save_failed":       "保存餐桌失败",
		"error.scan_failed":             "扫码解析失败",
		"error.upload_failed":           "文件上传失败",
		"error.file_missing":            "未提供上传文件",
	},
	constants.LocaleEnUS: {
		"error.invalid_params":    "Invalid parameters",
		"error.unauthorized":      "Please sign in first",
		"error.forbidden":         "Permission denied",
		"error.not_found":         "Record not found",
		"error.internal":          "Internal server error",
		"error.too_many_requests": "Too many requests, please try again later",
		"error.bad_request":       "Invalid request payload",

		"error.rate_limited":           "Too many requests, please try again later",
		"error.login_too_many":         "Too many login attempts, please try again later",
		"error.rate_limit_unavailable": "Rate limiter temporarily unavailable, please try again later",

		"error.jwt_secret_missing":    "Server signing key not configured",
		"error.auth_header_missing":   "Missing Authorization header",
		"error.auth_header_invalid":   "Malformed Authorization header",
		"error.token_invalid":         "Invalid token",
		"error.token_revoked":         "Token has been revoked, please sign in again",
		"error.user_id_invalid":       "Invalid user identifier",
		"error.user_id_type_invalid":  "Invalid user identifier type",
		"error.login_failed":          "Login failed",
		"error.register_failed":       "Registration failed",
		"error.user_fetch_failed":     "Failed to fetch user",
		"error.profile_update_failed": "Failed to update profile",
		"error.password_change_failed": "Failed to change password",

		"error.invalid_email":       "Invalid email format",
		"error.email_exists":        "Email already registered",
		"error.invalid_credentials": "Incorrect email or password",
		"error.invalid_password":    "Incorrect current password",
		"error.weak_password":       "Password is too weak",
		"error.user_disabled":       "Account is disabled",
		"error.profile_empty":       "Nothing to update",

		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",

		"error.invalid_quantity":      "Quantity must be greater than 0",
		"error.menu_item_not_found":   "Menu item not found",
		"error.menu_item_unavailable": "Menu item is unavailable",
		"error.cart_item_not_found":   "Cart item not found",
		"error.cart_not_found":        "Cart not found",
		"error.cart_empty":            "Cart is empty",

		"error.order_not_found":         "Order not found",
		"error.order_update_failed":     "Failed to update order",
		"error.invalid_order_type":      "Invalid order type",
		"error.invalid_order_status":    "Invalid order status",
		"error.order_status_transition": "Order status transition not allowed",
		"error.invalid_payment_status":  "Invalid payment status",
		"error.table_required":          "A table is required for dine-in orders",
		"error.address_required":        "Contact info is required for takeaway or delivery orders",

		"error.restaurant_not_found": "Restaurant not found",
		"error.restaurant_exists":    "Restaurant name already exists",
		"error.menu_not_found":       "Menu not found",
		"error.category_not_found":   "Category not found",
		"error.category_exists":      "Category name already exists",
		"error.category_in_use":      "Category still has menu items",

		"error.table_not_found": "Table not found",
		"error.table_exists":    "Table number already exists",
		"error.invalid_qr":      "Invalid QR code content",

		"error.review_not_found": "Review not found",
		"error.invalid_rate":     "Rate must be between 1 and 5",

		"error.cart_fetch_failed":      "Failed to fetch cart",
		"error.cart_update_failed":     "Failed to update cart",
		"error.order_fetch_failed":     "Failed to fetch orders",
		"error.order_create_failed":    "Failed to place order",
		"error.review_fetch_failed":    "Failed to fetch reviews",
		"error.review_save_failed":     "Failed to save review",
		"error.restaurant_fetch_failed": "Failed to fetch restaurants",
		"error.restaurant_save_failed":  "Failed to save restaurant",
		"error.menu_fetch_failed":       "Failed to fetch menus",
		"error.menu_save_failed":        "Failed to save menu",
		"error.menu_item_fetch_failed":  "Failed to fetch menu items",
		"error.menu_item_save_failed":   "Failed to save menu item",
		"error.category_fetch_failed":   "Failed to fetch categories",
		"error.category_save_failed":    "Failed to save category",
		"error.table_fetch_failed":      "Failed to fetch tables",
		"error.table_save_failed":       "Failed to save table",
		"error.scan_failed":             "Failed to resolve QR code",
		"error.upload_failed":           "Failed to upload file",
		"error.file_missing":            "No file provided",
	},
}

// ResolveLocale 解析请求语言，优先 query 参数 lang，其次 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleZhCN
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return constants.LocaleZhCN
}

// T 翻译文案，未命中时按回退顺序查找，最终返回 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	for _, fallback := range constants.SupportedLocales {
		if fallback == locale {
			continue
		}
		if msg, ok := messages[fallback][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 翻译带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	for _, locale := range constants.SupportedLocales {
		if strings.EqualFold(locale, trimmed) {
			return locale
		}
		if strings.HasPrefix(lower, strings.ToLower(strings.SplitN(locale, "-", 2)[0])) {
			return locale
		}
	}
	return ""
}
