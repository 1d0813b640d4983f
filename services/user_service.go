package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/utils"
)

// invitePasswordLength 受邀用户初始密码长度
const invitePasswordLength = 10

// InterfaceUserService 定义用户服务接口
type InterfaceUserService interface {
	Register(name, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	Logout(userID uint) error
	DestroyAccount(userID uint) error
	GetProfile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, updates map[string]interface{}) (*models.User, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	SendVerificationEmail(userID uint) error
	VerifyEmail(userID uint, hash string) error
	FindOrCreateByEmail(email string) (*models.User, string, error)
	GetUserHouseHubs(userID uint) ([]models.HouseHub, error)
}

// UserService 提供用户账号相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config

	jwtService  InterfaceJWTService
	mailService InterfaceMailService
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService, mailService InterfaceMailService) InterfaceUserService {
	return &UserService{
		DB:          db,
		Config:      cfg,
		jwtService:  jwtService,
		mailService: mailService,
	}
}

// 1. Register 注册新用户并发送验证邮件
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewServiceError(code.ErrUserAlreadyExist)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: password, // BeforeCreate钩子负责哈希
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, NewServiceError(code.ErrUserAlreadyExist)
		}
		return nil, err
	}

	s.mailService.SendVerificationMail(&user)
	return &user, nil
}

// 2. Login 校验凭证并颁发令牌，未验证邮箱的账号拒绝登录
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NewServiceError(code.ErrInvalidCredentials)
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", NewServiceError(code.ErrInvalidCredentials)
	}
	if !user.HasVerifiedEmail() {
		return nil, "", NewServiceError(code.ErrEmailNotVerified)
	}

	token, err := s.jwtService.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// 3. Logout 注销用户的全部令牌
func (s *UserService) Logout(userID uint) error {
	return s.jwtService.RevokeAllTokens(userID)
}

// 4. DestroyAccount 删除用户账号，级联删除其角色、居住关系和令牌
func (s *UserService) DestroyAccount(userID uint) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	return s.DB.Select("Roles", "BuildingResidents", "Apartments", "Tokens").Delete(user).Error
}

// 5. GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// 6. UpdateProfile 更新用户资料，邮箱变更需检查唯一性
func (s *UserService) UpdateProfile(userID uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if email, ok := updates["email"].(string); ok && email != user.Email {
		var count int64
		if err := s.DB.Model(&models.User{}).
			Where("email = ? AND id != ?", email, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, NewServiceError(code.ErrUserAlreadyExist)
		}
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// 7. UpdatePassword 修改密码，需先校验当前密码
func (s *UserService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return NewServiceErrorWithMessage(code.ErrUnauthorizedAction, "Invalid Credentials")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.DB.Model(user).Update("password", hashed).Error
}

// 8. SendVerificationEmail 重发验证邮件，已验证的账号返回错误
func (s *UserService) SendVerificationEmail(userID uint) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if user.HasVerifiedEmail() {
		return NewServiceErrorWithMessage(code.ErrValidation, "Email already verified.")
	}
	s.mailService.SendVerificationMail(user)
	return nil
}

// 9. VerifyEmail 校验验证链接中的哈希并标记邮箱已验证
func (s *UserService) VerifyEmail(userID uint, hash string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if utils.EmailVerificationHash(user.Email) != hash {
		return NewServiceErrorWithMessage(code.ErrValidation, "Invalid verification link.")
	}
	if user.HasVerifiedEmail() {
		return nil
	}
	now := time.Now()
	return s.DB.Model(user).Update("email_verified_at", &now).Error
}

// 10. FindOrCreateByEmail 邀请流程共用的查找或创建用户
// 返回用户和新建账号的明文密码；已有账号时密码为空串且不做任何修改。
// 新建账号使用邮箱local-part作为显示名，随机密码，未验证状态，
// 并发创建冲突（邮箱唯一索引）翻译为Conflict，不重复发送验证邮件。
func (s *UserService) FindOrCreateByEmail(email string) (*models.User, string, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	password, err := utils.RandomPassword(invitePasswordLength)
	if err != nil {
		return nil, "", err
	}

	user = models.User{
		Name:     strings.Split(email, "@")[0],
		Email:    email,
		Password: password,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// 并发邀请同一邮箱：唯一索引拦截第二次创建，
		// 翻译为Conflict且不补发验证邮件
		if isDuplicateKeyErr(err) {
			return nil, "", NewServiceError(code.ErrUserAlreadyExist)
		}
		return nil, "", err
	}

	s.mailService.SendVerificationMail(&user)
	return &user, password, nil
}

// 11. GetUserHouseHubs 返回用户所属的Hub列表
// 角色关系与居住关系（居住人→公寓→楼栋→Hub）的并集，按Hub ID去重
func (s *UserService) GetUserHouseHubs(userID uint) ([]models.HouseHub, error) {
	var roleHubs []models.HouseHub
	if err := s.DB.
		Joins("JOIN roles ON roles.house_hub_id = house_hubs.id").
		Where("roles.user_id = ?", userID).
		Find(&roleHubs).Error; err != nil {
		return nil, err
	}

	var residentHubs []models.HouseHub
	if err := s.DB.
		Joins("JOIN buildings ON buildings.house_hub_id = house_hubs.id").
		Joins("JOIN apartments ON apartments.building_id = buildings.id").
		Joins("JOIN building_residents ON building_residents.apartment_id = apartments.id").
		Where("building_residents.user_id = ?", userID).
		Find(&residentHubs).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(roleHubs)+len(residentHubs))
	hubs := make([]models.HouseHub, 0, len(roleHubs)+len(residentHubs))
	for _, hub := range append(roleHubs, residentHubs...) {
		if !seen[hub.ID] {
			seen[hub.ID] = true
			hubs = append(hubs, hub)
		}
	}
	return hubs, nil
}
