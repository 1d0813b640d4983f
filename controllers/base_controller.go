package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/middleware"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"403"`
	Message string      `json:"message" example:"Unauthorized User"`
	Errors  interface{} `json:"errors"`
}

// handleServiceError 将服务层错误映射为统一的错误响应
func handleServiceError(ctx *gin.Context, err error) {
	if se := services.AsServiceError(err); se != nil {
		response.FailWithMessage(ctx, se.Code, se.Message, nil)
		return
	}
	response.ServerError(ctx)
}

// parseIDParam 解析路径中的数字ID参数，非法时返回false并响应400
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.ParamError(ctx, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// callerID 读取认证后的调用者ID
func callerID(ctx *gin.Context) uint {
	return middleware.CallerID(ctx)
}
