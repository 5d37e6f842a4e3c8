package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diancan-next/internal/authz"
	"github.com/diancan-next/internal/cache"
	"github.com/diancan-next/internal/config"
	managehandlers "github.com/diancan-next/internal/http/handlers/manage"
	publichandlers "github.com/diancan-next/internal/http/handlers/public"
	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/logger"
	"github.com/diancan-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/管理端分组）
	publicHandler := publichandlers.New(c)
	manageHandler := managehandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dc"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 公开浏览接口（无需鉴权）
		apiV1.GET("/restaurants", publicHandler.ListRestaurants)
		apiV1.GET("/restaurants/:id", publicHandler.GetRestaurant)
		apiV1.GET("/restaurants/:id/menus", publicHandler.ListRestaurantMenus)
		apiV1.GET("/restaurants/:id/rating", publicHandler.GetRestaurantRating)
		apiV1.GET("/menus/:menu_id", publicHandler.GetMenu)
		apiV1.GET("/menus/:menu_id/menu-items", publicHandler.ListMenuItems)
		apiV1.GET("/menus/:menu_id/menu-items/:id", publicHandler.GetMenuItem)
		apiV1.GET("/categories", publicHandler.GetCategories)

		// 扫码入口：已登录用户直达菜单，匿名用户引导注册
		apiV1.GET("/tables/scan-qr", publicHandler.ScanQR)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetMe)
			user.PUT("/me/profile", publicHandler.UpdateMe)
			user.PUT("/me/password", publicHandler.ChangePassword)

			user.POST("/cart/create-cart", publicHandler.CreateCart)
			user.GET("/cart/retrieve-cart", publicHandler.RetrieveCart)
			user.POST("/cart/create-cart-item", publicHandler.CreateCartItem)
			user.PUT("/cart/update-cart-item/:id", publicHandler.UpdateCartItem)
			user.PATCH("/cart/update-cart-item/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/delete-cart-item/:id", publicHandler.DeleteCartItem)

			user.POST("/orders/checkout-order", publicHandler.CheckoutOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/waiter", publicHandler.ListWaiterOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)

			user.POST("/reviews", publicHandler.CreateReview)
			user.GET("/reviews", publicHandler.ListReviews)
			user.GET("/reviews/:id", publicHandler.GetReview)
			user.PUT("/reviews/:id", publicHandler.UpdateReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)
		}

		// 管理端接口（需鉴权 + RBAC）
		manage := apiV1.Group("/manage")
		manage.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), ManageRBACMiddleware(c.AuthzService))
		{
			// 餐厅管理
			manage.GET("/restaurants", manageHandler.ListRestaurants)
			manage.POST("/restaurants", manageHandler.CreateRestaurant)
			manage.PUT("/restaurants/:id", manageHandler.UpdateRestaurant)
			manage.DELETE("/restaurants/:id", manageHandler.DeleteRestaurant)
			manage.POST("/restaurants/:id/waiters", manageHandler.AddWaiter)

			// 菜单与菜品管理
			manage.POST("/menus", manageHandler.CreateMenu)
			manage.PUT("/menus/:id", manageHandler.UpdateMenu)
			manage.DELETE("/menus/:id", manageHandler.DeleteMenu)
			manage.POST("/menu-items", manageHandler.CreateMenuItem)
			manage.PUT("/menu-items/:id", manageHandler.UpdateMenuItem)
			manage.DELETE("/menu-items/:id", manageHandler.DeleteMenuItem)
			manage.POST("/menu-items/:id/ingredients", manageHandler.AddMenuItemIngredient)
			manage.DELETE("/menu-items/:id/ingredients/:ingredient_id", manageHandler.RemoveMenuItemIngredient)

			// 餐桌管理
			manage.GET("/tables", manageHandler.ListTables)
			manage.POST("/tables", manageHandler.CreateTable)
			manage.GET("/tables/:id", manageHandler.GetTable)
			manage.PATCH("/tables/:id/waiter", manageHandler.AssignTableWaiter)
			manage.DELETE("/tables/:id", manageHandler.DeleteTable)

			// 分类管理
			manage.POST("/categories", manageHandler.CreateCategory)
			manage.PUT("/categories/:id", manageHandler.UpdateCategory)
			manage.DELETE("/categories/:id", manageHandler.DeleteCategory)

			// 订单管理
			manage.GET("/orders", manageHandler.ListOrders)
			manage.PATCH("/orders/:id/status", manageHandler.UpdateOrderStatus)
			manage.PATCH("/orders/:id/payment-status", manageHandler.UpdateOrderPaymentStatus)

			// 文件上传
			manage.POST("/upload", manageHandler.UploadFile)

			// 权限对象清单（供角色配置参考）
			manage.GET("/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildManagePermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type managePermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildManagePermissionCatalog(engine *gin.Engine) []managePermissionCatalogItem {
	if engine == nil {
		return []managePermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]managePermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/manage/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, managePermissionCatalogItem{
			Module:     deriveManagePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveManagePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "manage" {
		return segments[0]
	}
	return segments[1]
}
