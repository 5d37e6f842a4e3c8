package public

import "github.com/diancan-next/internal/provider"

// Handler 顾客侧接口处理器入口
// 说明：该处理器覆盖注册登录、菜单浏览、扫码、购物车、下单与评价。
type Handler struct {
	*provider.Container
}

// New 创建顾客侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
