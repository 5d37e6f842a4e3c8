package provider

import (
	"github.com/diancan-next/internal/authz"
	"github.com/diancan-next/internal/cache"
	"github.com/diancan-next/internal/config"
	"github.com/diancan-next/internal/logger"
	"github.com/diancan-next/internal/models"
	"github.com/diancan-next/internal/repository"
	"github.com/diancan-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo       repository.UserRepository
	RestaurantRepo repository.RestaurantRepository
	CategoryRepo   repository.CategoryRepository
	MenuRepo       repository.MenuRepository
	TableRepo      repository.TableRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	ReviewRepo     repository.ReviewRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	RestaurantService *service.RestaurantService
	CategoryService   *service.CategoryService
	MenuService       *service.MenuService
	TableService      *service.TableService
	CartService       *service.CartService
	OrderService      *service.OrderService
	ReviewService     *service.ReviewService
	UploadService     *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.TableRepo = repository.NewTableRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.MenuService = service.NewMenuService(c.MenuRepo, c.RestaurantRepo, c.CategoryRepo)
	c.TableService = service.NewTableService(c.Config, c.TableRepo, c.RestaurantRepo, c.UserRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.TableRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.RestaurantRepo, c.OrderRepo)
	c.UploadService = service.NewUploadService(c.Config)
}
