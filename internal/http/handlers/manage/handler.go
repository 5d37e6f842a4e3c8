package manage

import "github.com/diancan-next/internal/provider"

// Handler 店铺管理接口处理器入口
// 说明：该处理器仅用于店主/服务员侧管理 API，角色准入由 RBAC 中间件控制。
type Handler struct {
	*provider.Container
}

// New 创建管理处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
