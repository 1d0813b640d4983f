package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceBuildingController 定义楼栋控制器接口
type InterfaceBuildingController interface {
	Store()
	Show()
	ShowApartments()
	Update()
	Destroy()
}

// BuildingController 处理楼栋相关的请求
type BuildingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBuildingController 创建一个新的楼栋控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleBuildingFunc 返回一个处理楼栋请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		case "showApartments":
			controller.ShowApartments()
		case "update":
			controller.Update()
		case "destroy":
			controller.Destroy()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreBuildingRequest 表示创建楼栋请求
type StoreBuildingRequest struct {
	HouseHubID      uint   `json:"househub_id" binding:"required" example:"1"`
	Name            string `json:"name" binding:"required,max=255" example:"Block A"`
	Address         string `json:"address" binding:"required,max=255" example:"12 Cedar Street"`
	FloorsCount     int    `json:"floors_count" binding:"required,min=1" example:"8"`
	ApartmentsCount int    `json:"apartments_count" binding:"omitempty,min=0" example:"32"`
}

// UpdateBuildingRequest 表示更新楼栋请求
type UpdateBuildingRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=255"`
	Address         *string `json:"address" binding:"omitempty,max=255"`
	FloorsCount     *int    `json:"floors_count" binding:"omitempty,min=1"`
	ApartmentsCount *int    `json:"apartments_count" binding:"omitempty,min=0"`
}

// Store 创建楼栋
// @Summary      Create Building
// @Description  Create a building inside a house hub the caller governs
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        request body StoreBuildingRequest true "Building parameters"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/store [post]
func (c *BuildingController) Store() {
	var req StoreBuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	building := models.Building{
		HouseHubID:      req.HouseHubID,
		Name:            req.Name,
		Address:         req.Address,
		FloorsCount:     req.FloorsCount,
		ApartmentsCount: req.ApartmentsCount,
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.CreateBuilding(&building, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, "Building Created Successfully", building)
}

// Show 获取楼栋详情
// @Summary      Get Building
// @Tags         Building
// @Produce      json
// @Param        id path int true "Building ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/show/{id} [get]
func (c *BuildingController) Show() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.GetBuildingByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, building)
}

// ShowApartments 获取楼栋下的公寓列表
// @Summary      List Building Apartments
// @Tags         Building
// @Produce      json
// @Param        id path int true "Building ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/show/apartments/{id} [get]
func (c *BuildingController) ShowApartments() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	apartments, err := buildingService.GetBuildingApartments(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, apartments)
}

// Update 更新楼栋
// @Summary      Update Building
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        id path int true "Building ID"
// @Param        request body UpdateBuildingRequest true "Fields to update"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/update/{id} [patch]
func (c *BuildingController) Update() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateBuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.FloorsCount != nil {
		updates["floors_count"] = *req.FloorsCount
	}
	if req.ApartmentsCount != nil {
		updates["apartments_count"] = *req.ApartmentsCount
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.UpdateBuilding(id, callerID(c.Ctx), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Building Updated Successfully", building)
}

// Destroy 删除楼栋
// @Summary      Delete Building
// @Tags         Building
// @Produce      json
// @Param        id path int true "Building ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/destroy/{id} [delete]
func (c *BuildingController) Destroy() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.DeleteBuilding(id, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Building Deleted Successfully", nil)
}
