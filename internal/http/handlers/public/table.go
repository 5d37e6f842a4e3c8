package public

import (
	"strings"

	"github.com/diancan-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ScanQR 扫描餐桌二维码
// 匿名可访问：带合法 Token 时直接进入点餐流程，否则返回注册引导。
func (h *Handler) ScanQR(c *gin.Context) {
	qrData := strings.TrimSpace(c.Query("qr"))
	if qrData == "" {
		qrData = c.Request.URL.RawQuery
	}

	result, err := h.TableService.ResolveScan(qrData, h.optionalUserID(c))
	if err != nil {
		respondScanError(c, err)
		return
	}
	response.Success(c, result)
}

// optionalUserID 从 Authorization 头尽力解析用户，失败按匿名处理。
func (h *Handler) optionalUserID(c *gin.Context) uint {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return 0
	}
	claims, err := h.AuthService.ParseJWT(parts[1])
	if err != nil || claims == nil {
		return 0
	}
	return claims.UserID
}
