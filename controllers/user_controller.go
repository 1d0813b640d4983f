package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
	"github.com/hadirida46/house-hub-api/services"
	"github.com/hadirida46/house-hub-api/services/container"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	Register()
	Login()
	Logout()
	Destroy()
	Profile()
	UpdateProfile()
	UpdatePassword()
	SendVerificationEmail()
	VerifyEmail()
	GetUserHouseHubs()
}

// UserController 处理用户账号相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "destroy":
			controller.Destroy()
		case "profile":
			controller.Profile()
		case "updateProfile":
			controller.UpdateProfile()
		case "updatePassword":
			controller.UpdatePassword()
		case "sendVerificationEmail":
			controller.SendVerificationEmail()
		case "verifyEmail":
			controller.VerifyEmail()
		case "getUserHouseHubs":
			controller.GetUserHouseHubs()
		default:
			response.ParamError(ctx, "invalid method")
		}
	}
}

// RegisterRequest 表示注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255" example:"Hadi Rida"`
	Email    string `json:"email" binding:"required,email" example:"hadi@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"secret-password"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"hadi@example.com"`
	Password string `json:"password" binding:"required" example:"secret-password"`
}

// UpdateProfileRequest 表示资料更新请求
type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255" example:"Hadi Rida"`
	Phone          *string `json:"phone" binding:"omitempty,max=20" example:"+96170123456"`
	Email          *string `json:"email" binding:"omitempty,email" example:"hadi@example.com"`
	ProfilePicture *string `json:"profile_picture" example:"avatars/1.png"`
}

// UpdatePasswordRequest 表示密码修改请求
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Register 注册新用户
// @Summary      User Registration
// @Description  Register a new account and send an email verification link
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /register [post]
func (c *UserController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "User registered. Please verify your email.", user)
}

// Login 用户登录
// @Summary      User Login
// @Description  Verify credentials and return a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login parameters"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /login [post]
func (c *UserController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, token, err := userService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user":         user,
		"access_token": token,
		"token_type":   "Bearer",
	})
}

// Logout 退出登录，注销调用者的全部令牌
// @Summary      Logout
// @Description  Revoke every token that belongs to the caller
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /logout [post]
func (c *UserController) Logout() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.Logout(callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Logged Out Successfully", nil)
}

// Destroy 删除调用者账号
// @Summary      Delete Account
// @Description  Delete the caller account and cascade its memberships
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /destroy [delete]
func (c *UserController) Destroy() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DestroyAccount(callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Deleted Successfully", nil)
}

// Profile 获取调用者资料
// @Summary      Get Profile
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [get]
func (c *UserController) Profile() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetProfile(callerID(c.Ctx))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, user)
}

// UpdateProfile 更新调用者资料
// @Summary      Update Profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields to update"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /profile/update [patch]
func (c *UserController) UpdateProfile() {
	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateProfile(callerID(c.Ctx), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Profile updated successfully.", user)
}

// UpdatePassword 修改调用者密码
// @Summary      Update Password
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body UpdatePasswordRequest true "Password change parameters"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Router       /profile/update/password [patch]
func (c *UserController) UpdatePassword() {
	var req UpdatePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.UpdatePassword(callerID(c.Ctx), req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Password updated successfully.", nil)
}

// SendVerificationEmail 重发邮箱验证邮件
// @Summary      Send Verification Email
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /email/verification-notification [post]
func (c *UserController) SendVerificationEmail() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.SendVerificationEmail(callerID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Email verification link sent on your inbox.", nil)
}

// VerifyEmail 通过验证链接确认邮箱
// @Summary      Verify Email
// @Tags         Auth
// @Produce      json
// @Param        id path int true "User ID"
// @Param        hash path string true "Verification hash"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /verify-email/{id}/{hash} [get]
func (c *UserController) VerifyEmail() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}
	hash := c.Ctx.Param("hash")
	if hash == "" {
		response.ParamError(c.Ctx, "invalid hash parameter")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.VerifyEmail(id, hash); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Email verified successfully.", nil)
}

// GetUserHouseHubs 获取调用者所属的Hub列表
// @Summary      List My House Hubs
// @Description  House hubs the caller belongs to via a role or a residency, deduplicated
// @Tags         HouseHub
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /househubs [get]
func (c *UserController) GetUserHouseHubs() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	hubs, err := userService.GetUserHouseHubs(callerID(c.Ctx))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, hubs)
}
