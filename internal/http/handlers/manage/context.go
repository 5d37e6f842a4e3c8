package manage

import (
	"github.com/diancan-next/internal/constants"
	handlershared "github.com/diancan-next/internal/http/handlers/shared"
	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/models"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// currentUser 加载当前登录用户，失败时已写出响应
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return nil, false
	}
	user, err := h.AuthService.GetUserByID(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return nil, false
	}
	if user == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, false
	}
	return user, true
}

// requireManageRestaurant 校验当前用户可管理指定餐厅，失败时已写出响应
func (h *Handler) requireManageRestaurant(c *gin.Context, restaurantID uint) (*models.User, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return nil, false
	}
	allowed, err := h.RestaurantService.CanManage(restaurantID, user)
	if err != nil {
		respondError(c, response.CodeInternal, "error.restaurant_fetch_failed", err)
		return nil, false
	}
	if !allowed {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return nil, false
	}
	return user, true
}

func isSuperuser(user *models.User) bool {
	return user != nil && user.Role == constants.RoleSuperuser
}
