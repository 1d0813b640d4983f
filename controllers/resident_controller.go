package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceResidentController 定义居住人控制器接口
type InterfaceResidentController interface {
	Store()
	Show()
	Destroy()
}

// ResidentController 处理公寓居住人相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的居住人控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleResidentFunc 返回一个处理居住人请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		case "destroy":
			controller.Destroy()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreResidentRequest 表示邀请居住人请求
type StoreResidentRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required" example:"1"`
	Email       string `json:"email" binding:"required,email" example:"resident@example.com"`
}

// Store 邀请居住人加入公寓
// @Summary      Invite Resident
// @Description  Invite a resident to an apartment by email; a new account receives a generated password by mail
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body StoreResidentRequest true "Resident parameters"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /residents/store [post]
func (c *ResidentController) Store() {
	var req StoreResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.InviteResident(callerID(c.Ctx), req.ApartmentID, req.Email)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, "Resident added successfully", resident)
}

// Show 获取居住人详情
// @Summary      Get Resident
// @Tags         Resident
// @Produce      json
// @Param        id path int true "Resident ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/show/{id} [get]
func (c *ResidentController) Show() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// Destroy 删除居住人
// @Summary      Remove Resident
// @Tags         Resident
// @Produce      json
// @Param        id path int true "Resident ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/destroy/{id} [delete]
func (c *ResidentController) Destroy() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.DeleteResident(id, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Resident Deleted Successfully", nil)
}
