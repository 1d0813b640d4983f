package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/services"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 通知服务
	mailService services.InterfaceMailService
	mqttService services.InterfaceMQTTNotificationService

	// 业务服务
	authService         services.InterfaceAuthorizationService
	userService         services.InterfaceUserService
	houseHubService     services.InterfaceHouseHubService
	buildingService     services.InterfaceBuildingService
	apartmentService    services.InterfaceApartmentService
	residentService     services.InterfaceResidentService
	roleService         services.InterfaceRoleService
	announcementService services.InterfaceAnnouncementService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			config.Warning("Redis连接测试失败: %v，将退回数据库令牌校验", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.redisService = services.NewRedisService(c.config)
	c.jwtService = services.NewJWTService(c.db, c.config, c.redisService)

	// 初始化邮件服务并启动后台派发
	c.mailService = services.NewMailService(c.config)
	c.mailService.Start()

	// 初始化MQTT通知服务（未配置broker时保持禁用）
	c.mqttService = services.NewMQTTNotificationService(c.config)
	if c.mqttService.Enabled() {
		if err := c.mqttService.Connect(); err != nil {
			config.Warning("MQTT服务连接失败: %v", err)
		}
	}

	// 初始化业务服务
	c.authService = services.NewAuthorizationService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config, c.jwtService, c.mailService)
	c.houseHubService = services.NewHouseHubService(c.db, c.config, c.authService)
	c.buildingService = services.NewBuildingService(c.db, c.config, c.authService)
	c.apartmentService = services.NewApartmentService(c.db, c.config, c.authService, c.userService, c.mailService)
	c.residentService = services.NewResidentService(c.db, c.config, c.authService, c.userService, c.mailService)
	c.roleService = services.NewRoleService(c.db, c.config, c.authService, c.userService, c.mailService)
	c.announcementService = services.NewAnnouncementService(c.db, c.config, c.authService, c.mqttService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "mail":
		return c.mailService
	case "mqtt":
		return c.mqttService
	case "authorization":
		return c.authService
	case "user":
		return c.userService
	case "house_hub":
		return c.houseHubService
	case "building":
		return c.buildingService
	case "apartment":
		return c.apartmentService
	case "resident":
		return c.residentService
	case "role":
		return c.roleService
	case "announcement":
		return c.announcementService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Shutdown 停止容器持有的后台服务
func (c *ServiceContainer) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mailService != nil {
		c.mailService.Stop()
	}
	if c.mqttService != nil {
		c.mqttService.Disconnect()
	}
}
