package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceResidentService 定义居住人服务接口
type InterfaceResidentService interface {
	InviteResident(callerID, apartmentID uint, email string) (*models.BuildingResident, error)
	GetResidentByID(id uint) (*models.BuildingResident, error)
	DeleteResident(id, callerID uint) error
}

// ResidentService 提供公寓居住人相关的服务，包含居住人邀请流程
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
	userService InterfaceUserService
	mailService InterfaceMailService
}

// NewResidentService 创建一个新的居住人服务
func NewResidentService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService, userService InterfaceUserService, mailService InterfaceMailService) InterfaceResidentService {
	return &ResidentService{
		DB:          db,
		Config:      cfg,
		authService: authService,
		userService: userService,
		mailService: mailService,
	}
}

// resolveLocation 解析公寓所在的楼栋与Hub名称，链路断裂时返回空串
func (s *ResidentService) resolveLocation(apartment *models.Apartment) (hubName, buildingName string) {
	var building models.Building
	if err := s.DB.First(&building, apartment.BuildingID).Error; err != nil {
		return "", ""
	}
	var hub models.HouseHub
	if err := s.DB.First(&hub, building.HouseHubID).Error; err != nil {
		return "", building.Name
	}
	return hub.Name, building.Name
}

// 1. InviteResident 邀请用户成为公寓居住人
// 已存在的(user, apartment)居住关系返回Conflict；
// 先查后插的竞态由(user_id, apartment_id)唯一索引兜底；
// 新建账号在居住关系落库后收到携带初始密码的邀请邮件
func (s *ResidentService) InviteResident(callerID, apartmentID uint, email string) (*models.BuildingResident, error) {
	var apartment models.Apartment
	if err := s.DB.First(&apartment, apartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrApartmentNotFound)
		}
		return nil, err
	}

	authorized, err := s.authService.CanManageApartment(callerID, apartmentID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, NewServiceError(code.ErrUnauthorizedAction)
	}

	user, password, err := s.userService.FindOrCreateByEmail(email)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.BuildingResident{}).
		Where("user_id = ? AND apartment_id = ?", user.ID, apartmentID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewServiceErrorWithMessage(code.ErrResidentConflict,
			fmt.Sprintf("This user is already a resident of %s.", apartment.Name))
	}

	resident := models.BuildingResident{
		ApartmentID: apartmentID,
		UserID:      user.ID,
	}
	if err := s.DB.Create(&resident).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, NewServiceErrorWithMessage(code.ErrResidentConflict,
				fmt.Sprintf("This user is already a resident of %s.", apartment.Name))
		}
		return nil, err
	}

	// 仅对新建账号发送居住人邀请，邮件携带初始密码
	if password != "" {
		hubName, buildingName := s.resolveLocation(&apartment)
		s.mailService.SendResidentInvite(user, password, hubName, buildingName, apartment.Name)
	}
	return &resident, nil
}

// 2. GetResidentByID 根据ID获取居住人记录（含用户投影）
func (s *ResidentService) GetResidentByID(id uint) (*models.BuildingResident, error) {
	var resident models.BuildingResident
	if err := s.DB.Preload("User").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrResidentNotFound)
		}
		return nil, err
	}
	return &resident, nil
}

// 3. DeleteResident 删除居住关系，需要对所属公寓的管理权
func (s *ResidentService) DeleteResident(id, callerID uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}

	authorized, err := s.authService.CanManageApartment(callerID, resident.ApartmentID)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceError(code.ErrUnauthorizedAction)
	}

	return s.DB.Delete(&models.BuildingResident{}, id).Error
}
