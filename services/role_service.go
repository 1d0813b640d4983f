package services

import (
	"errors"
	"fmt"
	"net/url"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceRoleService 定义Hub角色服务接口
type InterfaceRoleService interface {
	InviteRole(callerID uint, email, roleName string, houseHubID uint) error
	AcceptInvite(email, roleName string, houseHubID uint) (*models.Role, error)
	GetHubRoles(houseHubID uint) ([]models.Role, error)
	DeleteRole(roleID, callerID uint) error
}

// RoleService 提供Hub角色邀请与管理服务
type RoleService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
	userService InterfaceUserService
	mailService InterfaceMailService
}

// NewRoleService 创建一个新的角色服务
func NewRoleService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService, userService InterfaceUserService, mailService InterfaceMailService) InterfaceRoleService {
	return &RoleService{
		DB:          db,
		Config:      cfg,
		authService: authService,
		userService: userService,
		mailService: mailService,
	}
}

// 1. InviteRole 按邮箱邀请用户在Hub中担任角色
// 已有账号且在该Hub已有任意角色时返回Conflict（不静默跳过）；
// 角色行在受邀人点击接受链接时才创建
func (s *RoleService) InviteRole(callerID uint, email, roleName string, houseHubID uint) error {
	if !models.ValidRoleName(roleName) {
		return NewServiceErrorWithMessage(code.ErrValidation, "invalid role name")
	}

	var hub models.HouseHub
	if err := s.DB.First(&hub, houseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewServiceError(code.ErrHouseHubNotFound)
		}
		return err
	}

	authorized, err := s.authService.CanManageHub(callerID, houseHubID)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceError(code.ErrUnauthorizedAction)
	}

	// 已有账号时先检查角色冲突，避免产生无意义的邀请
	var existing models.User
	err = s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		var count int64
		if err := s.DB.Model(&models.Role{}).
			Where("user_id = ? AND house_hub_id = ?", existing.ID, houseHubID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewServiceErrorWithMessage(code.ErrRoleConflict,
				fmt.Sprintf("This user already has a role in %s.", hub.Name))
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user, password, err := s.userService.FindOrCreateByEmail(email)
	if err != nil {
		return err
	}

	inviteLink := fmt.Sprintf("%s/api/accept-invite?email=%s&role=%s&househub_id=%d",
		s.Config.AppURL, url.QueryEscape(email), url.QueryEscape(roleName), houseHubID)
	s.mailService.SendRoleInvite(email, roleName, hub.Name, inviteLink, user.Name, password)
	return nil
}

// 2. AcceptInvite 受邀人接受邀请，建立角色行
func (s *RoleService) AcceptInvite(email, roleName string, houseHubID uint) (*models.Role, error) {
	if !models.ValidRoleName(roleName) {
		return nil, NewServiceErrorWithMessage(code.ErrValidation, "invalid role name")
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrUserNotFound)
		}
		return nil, err
	}

	var hub models.HouseHub
	if err := s.DB.First(&hub, houseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrHouseHubNotFound)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Role{}).
		Where("user_id = ? AND house_hub_id = ?", user.ID, houseHubID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewServiceErrorWithMessage(code.ErrRoleConflict,
			fmt.Sprintf("This user already has a role in %s.", hub.Name))
	}

	role := models.Role{
		HouseHubID: houseHubID,
		UserID:     user.ID,
		Name:       roleName,
	}
	if err := s.DB.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// 3. GetHubRoles 获取Hub的角色列表（含用户投影）
func (s *RoleService) GetHubRoles(houseHubID uint) ([]models.Role, error) {
	var hub models.HouseHub
	if err := s.DB.First(&hub, houseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrHouseHubNotFound)
		}
		return nil, err
	}

	var roles []models.Role
	if err := s.DB.Preload("User").Where("house_hub_id = ?", houseHubID).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// 4. DeleteRole 删除角色，保证Hub始终保留至少一个治理角色
// 计数与删除在同一事务内执行，并对角色行集合加行锁，
// 防止两个并发删除都通过计数检查后把Hub删成无人治理
func (s *RoleService) DeleteRole(roleID, callerID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewServiceError(code.ErrRoleNotFound)
			}
			return err
		}

		authorized, err := s.authService.CanManageHub(callerID, role.HouseHubID)
		if err != nil {
			return err
		}
		if !authorized {
			return NewServiceError(code.ErrUnauthorizedAction)
		}

		// 删除前重新计数，被删角色此刻仍在集合中，要求count > 1才允许删除
		var governors []models.Role
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("house_hub_id = ?", role.HouseHubID).
			Where("name IN ?", models.GovernorRoles).
			Find(&governors).Error; err != nil {
			return err
		}

		isGovernor := false
		for _, g := range governors {
			if g.ID == role.ID {
				isGovernor = true
				break
			}
		}
		if isGovernor && len(governors) <= 1 {
			return NewServiceError(code.ErrLastGovernor)
		}

		return tx.Delete(&models.Role{}, roleID).Error
	})
}
