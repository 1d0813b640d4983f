package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceHouseHubController 定义HouseHub控制器接口
type InterfaceHouseHubController interface {
	Store()
	Show()
	ShowBuildings()
	Update()
	Destroy()
}

// HouseHubController 处理HouseHub相关的请求
type HouseHubController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseHubController 创建一个新的HouseHub控制器
func NewHouseHubController(ctx *gin.Context, container *container.ServiceContainer) *HouseHubController {
	return &HouseHubController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHouseHubFunc 返回一个处理HouseHub请求的Gin处理函数
func HandleHouseHubFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseHubController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		case "showBuildings":
			controller.ShowBuildings()
		case "update":
			controller.Update()
		case "destroy":
			controller.Destroy()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreHouseHubRequest 表示创建HouseHub请求
type StoreHouseHubRequest struct {
	Name        string  `json:"name" binding:"required,max=255" example:"Maple Court"`
	Description string  `json:"description" example:"Residential community near the river"`
	Location    string  `json:"location" binding:"required,max=255" example:"Beirut"`
	Latitude    float64 `json:"latitude" example:"33.8938"`
	Longitude   float64 `json:"longitude" example:"35.5018"`
}

// UpdateHouseHubRequest 表示更新HouseHub请求
type UpdateHouseHubRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Location    *string  `json:"location" binding:"omitempty,max=255"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Store 创建HouseHub
// @Summary      Create House Hub
// @Description  Create a house hub; the caller receives the owner role on it
// @Tags         HouseHub
// @Accept       json
// @Produce      json
// @Param        request body StoreHouseHubRequest true "House hub parameters"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /house-hub/store [post]
func (c *HouseHubController) Store() {
	var req StoreHouseHubRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	hub := models.HouseHub{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	hubService := c.Container.GetService("house_hub").(services.InterfaceHouseHubService)
	if err := hubService.CreateHouseHub(&hub, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, "HouseHub Created Successfully", hub)
}

// Show 获取HouseHub详情
// @Summary      Get House Hub
// @Tags         HouseHub
// @Produce      json
// @Param        id path int true "House hub ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /house-hub/show/{id} [get]
func (c *HouseHubController) Show() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	hubService := c.Container.GetService("house_hub").(services.InterfaceHouseHubService)
	hub, err := hubService.GetHouseHubByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, hub)
}

// ShowBuildings 获取HouseHub下的楼栋列表
// @Summary      List House Hub Buildings
// @Tags         HouseHub
// @Produce      json
// @Param        id path int true "House hub ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /house-hub/show/buildings/{id} [get]
func (c *HouseHubController) ShowBuildings() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	hubService := c.Container.GetService("house_hub").(services.InterfaceHouseHubService)
	buildings, err := hubService.GetHouseHubBuildings(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, buildings)
}

// Update 更新HouseHub
// @Summary      Update House Hub
// @Tags         HouseHub
// @Accept       json
// @Produce      json
// @Param        id path int true "House hub ID"
// @Param        request body UpdateHouseHubRequest true "Fields to update"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /house-hub/update/{id} [patch]
func (c *HouseHubController) Update() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateHouseHubRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	hubService := c.Container.GetService("house_hub").(services.InterfaceHouseHubService)
	hub, err := hubService.UpdateHouseHub(id, callerID(c.Ctx), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "HouseHub Updated Successfully", hub)
}

// Destroy 删除HouseHub
// @Summary      Delete House Hub
// @Tags         HouseHub
// @Produce      json
// @Param        id path int true "House hub ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /house-hub/destroy/{id} [delete]
func (c *HouseHubController) Destroy() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	hubService := c.Container.GetService("house_hub").(services.InterfaceHouseHubService)
	if err := hubService.DeleteHouseHub(id, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "HouseHub Deleted Successfully", nil)
}
