package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceApartmentController 定义公寓控制器接口
type InterfaceApartmentController interface {
	Store()
	Show()
	ShowResidents()
	Update()
	Destroy()
}

// ApartmentController 处理公寓相关的请求
type ApartmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewApartmentController 创建一个新的公寓控制器
func NewApartmentController(ctx *gin.Context, container *container.ServiceContainer) *ApartmentController {
	return &ApartmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleApartmentFunc 返回一个处理公寓请求的Gin处理函数
func HandleApartmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewApartmentController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		case "showResidents":
			controller.ShowResidents()
		case "update":
			controller.Update()
		case "destroy":
			controller.Destroy()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreApartmentRequest 表示创建公寓请求，email为业主邮箱
type StoreApartmentRequest struct {
	BuildingID uint   `json:"building_id" binding:"required" example:"1"`
	Name       string `json:"name" binding:"required,max=255" example:"A-301"`
	Floor      int    `json:"floor" binding:"required,min=1" example:"3"`
	Email      string `json:"email" binding:"required,email" example:"owner@example.com"`
}

// UpdateApartmentRequest 表示更新公寓请求
type UpdateApartmentRequest struct {
	BuildingID *uint   `json:"building_id"`
	Name       *string `json:"name" binding:"omitempty,max=255"`
	Floor      *int    `json:"floor" binding:"omitempty,min=1"`
	Email      *string `json:"email" binding:"omitempty,email"`
}

// Store 创建公寓并邀请业主
// @Summary      Create Apartment
// @Description  Create an apartment and invite its owner by email; a new owner account receives a generated password by mail
// @Tags         Apartment
// @Accept       json
// @Produce      json
// @Param        request body StoreApartmentRequest true "Apartment parameters"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /apartments/store [post]
func (c *ApartmentController) Store() {
	var req StoreApartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartment, err := apartmentService.CreateApartment(callerID(c.Ctx), req.BuildingID, req.Name, req.Floor, req.Email)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, "Apartment created successfully", apartment)
}

// Show 获取公寓详情
// @Summary      Get Apartment
// @Tags         Apartment
// @Produce      json
// @Param        id path int true "Apartment ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/show/{id} [get]
func (c *ApartmentController) Show() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartment, err := apartmentService.GetApartmentByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, apartment)
}

// ShowResidents 获取公寓居住人列表
// @Summary      List Apartment Residents
// @Tags         Apartment
// @Produce      json
// @Param        id path int true "Apartment ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/show/residents/{id} [get]
func (c *ApartmentController) ShowResidents() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	residents, err := apartmentService.GetApartmentResidents(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, residents)
}

// Update 更新公寓，变更email时重新执行业主查找或创建
// @Summary      Update Apartment
// @Tags         Apartment
// @Accept       json
// @Produce      json
// @Param        id path int true "Apartment ID"
// @Param        request body UpdateApartmentRequest true "Fields to update"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /apartments/update/{id} [patch]
func (c *ApartmentController) Update() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateApartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	input := services.UpdateApartmentInput{
		BuildingID: req.BuildingID,
		Name:       req.Name,
		Floor:      req.Floor,
		Email:      req.Email,
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartment, err := apartmentService.UpdateApartment(id, callerID(c.Ctx), &input)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Apartment Updated Successfully", apartment)
}

// Destroy 删除公寓
// @Summary      Delete Apartment
// @Tags         Apartment
// @Produce      json
// @Param        id path int true "Apartment ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/destroy/{id} [delete]
func (c *ApartmentController) Destroy() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	if err := apartmentService.DeleteApartment(id, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Apartment Deleted Successfully", nil)
}
