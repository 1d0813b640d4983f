package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/controllers"
	_ "github.com/hadirida46/house-hub-api/docs"
	"github.com/hadirida46/house-hub-api/middleware"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化认证中间件
	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由，按IP限流防止暴力尝试
	authLimiter := middleware.IPRateLimiter(1, 5)
	api.POST("/register", authLimiter, controllers.HandleUserFunc(container, "register"))
	api.POST("/login", authLimiter, controllers.HandleUserFunc(container, "login"))

	// 邮件链接路由，从邀请邮件与验证邮件点击进入
	api.GET("/accept-invite", authLimiter, controllers.HandleRoleFunc(container, "acceptInvite"))
	api.GET("/verify-email/:id/:hash", authLimiter, controllers.HandleUserFunc(container, "verifyEmail"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 账户路由
	auth.POST("/logout", controllers.HandleUserFunc(container, "logout"))
	auth.DELETE("/destroy", controllers.HandleUserFunc(container, "destroy"))
	auth.POST("/email/verification-notification", controllers.HandleUserFunc(container, "sendVerificationEmail"))

	// 个人信息路由
	auth.Group("/profile").GET("", controllers.HandleUserFunc(container, "profile"))
	auth.Group("/profile").PATCH("/update", controllers.HandleUserFunc(container, "updateProfile"))
	auth.Group("/profile").PATCH("/update/password", controllers.HandleUserFunc(container, "updatePassword"))

	// 用户所属Hub列表
	auth.GET("/househubs", controllers.HandleUserFunc(container, "getUserHouseHubs"))

	// HouseHub路由
	auth.Group("/house-hub").POST("/store", controllers.HandleHouseHubFunc(container, "store"))
	auth.Group("/house-hub").GET("/show/:id", controllers.HandleHouseHubFunc(container, "show"))
	auth.Group("/house-hub").GET("/show/buildings/:id", controllers.HandleHouseHubFunc(container, "showBuildings"))
	auth.Group("/house-hub").PATCH("/update/:id", controllers.HandleHouseHubFunc(container, "update"))
	auth.Group("/house-hub").DELETE("/destroy/:id", controllers.HandleHouseHubFunc(container, "destroy"))

	// 楼栋路由
	auth.Group("/buildings").POST("/store", controllers.HandleBuildingFunc(container, "store"))
	auth.Group("/buildings").GET("/show/:id", controllers.HandleBuildingFunc(container, "show"))
	auth.Group("/buildings").GET("/show/apartments/:id", controllers.HandleBuildingFunc(container, "showApartments"))
	auth.Group("/buildings").PATCH("/update/:id", controllers.HandleBuildingFunc(container, "update"))
	auth.Group("/buildings").DELETE("/destroy/:id", controllers.HandleBuildingFunc(container, "destroy"))

	// 公寓路由
	auth.Group("/apartments").POST("/store", controllers.HandleApartmentFunc(container, "store"))
	auth.Group("/apartments").GET("/show/:id", controllers.HandleApartmentFunc(container, "show"))
	auth.Group("/apartments").GET("/show/residents/:id", controllers.HandleApartmentFunc(container, "showResidents"))
	auth.Group("/apartments").PATCH("/update/:id", controllers.HandleApartmentFunc(container, "update"))
	auth.Group("/apartments").DELETE("/destroy/:id", controllers.HandleApartmentFunc(container, "destroy"))

	// 居住人路由
	auth.Group("/residents").POST("/store", controllers.HandleResidentFunc(container, "store"))
	auth.Group("/residents").GET("/show/:id", controllers.HandleResidentFunc(container, "show"))
	auth.Group("/residents").DELETE("/destroy/:id", controllers.HandleResidentFunc(container, "destroy"))

	// Hub角色路由
	auth.Group("/roles").POST("/store", controllers.HandleRoleFunc(container, "store"))
	auth.Group("/roles").GET("/show/:hub_id", controllers.HandleRoleFunc(container, "show"))
	auth.Group("/roles").DELETE("/destroy/:id", controllers.HandleRoleFunc(container, "destroy"))

	// 公告路由
	auth.Group("/announcements").POST("/store", controllers.HandleAnnouncementFunc(container, "store"))
	auth.Group("/announcements").GET("/show/:hub_id", controllers.HandleAnnouncementFunc(container, "show"))
}
