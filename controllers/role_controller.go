package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceRoleController 定义Hub角色控制器接口
type InterfaceRoleController interface {
	Store()
	Show()
	Destroy()
	AcceptInvite()
}

// RoleController 处理Hub角色邀请与管理相关的请求
type RoleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoleController 创建一个新的角色控制器
func NewRoleController(ctx *gin.Context, container *container.ServiceContainer) *RoleController {
	return &RoleController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleRoleFunc 返回一个处理角色请求的Gin处理函数
func HandleRoleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoleController(ctx, container)

		switch method {
		case "store":
			controller.Store()
		case "show":
			controller.Show()
		case "destroy":
			controller.Destroy()
		case "acceptInvite":
			controller.AcceptInvite()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// StoreRoleRequest 表示角色邀请请求
type StoreRoleRequest struct {
	HouseHubID uint   `json:"househub_id" binding:"required" example:"1"`
	Email      string `json:"email" binding:"required,email" example:"member@example.com"`
	Role       string `json:"role" binding:"required" example:"committee_member"`
}

// Store 按邮箱邀请用户担任Hub角色
// @Summary      Invite Hub Role
// @Description  Invite a user by email to hold a role on a house hub; the role row is created when the invite link is accepted
// @Tags         Role
// @Accept       json
// @Produce      json
// @Param        request body StoreRoleRequest true "Role invitation parameters"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /roles/store [post]
func (c *RoleController) Store() {
	var req StoreRoleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	roleService := c.Container.GetService("role").(services.InterfaceRoleService)
	if err := roleService.InviteRole(callerID(c.Ctx), req.Email, req.Role, req.HouseHubID); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Invitation sent successfully", nil)
}

// Show 获取Hub下的角色列表
// @Summary      List Hub Roles
// @Tags         Role
// @Produce      json
// @Param        hub_id path int true "House hub ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /roles/show/{hub_id} [get]
func (c *RoleController) Show() {
	hubID, ok := parseIDParam(c.Ctx, "hub_id")
	if !ok {
		return
	}

	roleService := c.Container.GetService("role").(services.InterfaceRoleService)
	roles, err := roleService.GetHubRoles(hubID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, roles)
}

// Destroy 删除角色，保留最后一个管理角色
// @Summary      Remove Hub Role
// @Description  Remove a role; the last owner or committee member on a hub cannot be removed
// @Tags         Role
// @Produce      json
// @Param        id path int true "Role ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /roles/destroy/{id} [delete]
func (c *RoleController) Destroy() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	roleService := c.Container.GetService("role").(services.InterfaceRoleService)
	if err := roleService.DeleteRole(id, callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Role Deleted Successfully", nil)
}

// AcceptInvite 消费邀请邮件中的链接，创建角色记录
// @Summary      Accept Role Invitation
// @Description  Consume the invitation link from the role-invite email and create the role
// @Tags         Role
// @Produce      json
// @Param        email       query string true "Invited email"
// @Param        role        query string true "Role name"
// @Param        househub_id query int    true "House hub ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /accept-invite [get]
func (c *RoleController) AcceptInvite() {
	email := c.Ctx.Query("email")
	roleName := c.Ctx.Query("role")
	hubIDStr := c.Ctx.Query("househub_id")

	if email == "" || roleName == "" || hubIDStr == "" {
		response.ParamError(c.Ctx, "email, role and househub_id are required")
		return
	}
	hubID, err := strconv.ParseUint(hubIDStr, 10, 64)
	if err != nil || hubID == 0 {
		response.ParamError(c.Ctx, "invalid househub_id")
		return
	}

	roleService := c.Container.GetService("role").(services.InterfaceRoleService)
	role, err := roleService.AcceptInvite(email, roleName, uint(hubID))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Invitation accepted successfully", role)
}
