package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceAnnouncementController 定义公告控制器接口
type InterfaceAnnouncementController interface {
	Store()
	Show()
}

// AnnouncementController 处理Hub公告相关的请求
type AnnouncementController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAnnouncementController 创建一个新的公告控制器
func NewAnnouncementController(ctx *gin.Context, container *container.ServiceContainer) *AnnouncementController {
	return &AnnouncementController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAnnouncementFunc 返回一个处理公告请求的Gin处理函数
func HandleAnnouncementFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAnnouncementController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreAnnouncementRequest 表示创建公告请求
type StoreAnnouncementRequest struct {
	HouseHubID uint   `json:"househub_id" binding:"required" example:"1"`
	Title      string `json:"title" binding:"required,max=255" example:"Water outage on Saturday"`
	Body       string `json:"body" binding:"required" example:"Maintenance on the main pipe from 09:00 to 13:00."`
}

// Store 发布Hub公告
// @Summary      Create Announcement
// @Description  Publish an announcement on a hub; only owners and committee members may post
// @Tags         Announcement
// @Accept       json
// @Produce      json
// @Param        request body StoreAnnouncementRequest true "Announcement parameters"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /announcements/store [post]
func (c *AnnouncementController) Store() {
	var req StoreAnnouncementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	announcement, err := announcementService.CreateAnnouncement(callerID(c.Ctx), req.HouseHubID, req.Title, req.Body)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, "Announcement created successfully.", announcement)
}

// Show 获取Hub公告列表，最新在前
// @Summary      List Hub Announcements
// @Tags         Announcement
// @Produce      json
// @Param        hub_id path int true "House hub ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /announcements/show/{hub_id} [get]
func (c *AnnouncementController) Show() {
	hubID, ok := parseIDParam(c.Ctx, "hub_id")
	if !ok {
		return
	}

	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	announcements, err := announcementService.GetHubAnnouncements(hubID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, announcements)
}
