package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceAuthorizationService 定义授权检查服务接口
// 所有检查均为只读，父级链断裂（楼栋无Hub等）一律视为拒绝而不是错误
type InterfaceAuthorizationService interface {
	CanManageHub(userID, houseHubID uint) (bool, error)
	CanManageBuilding(userID, buildingID uint) (bool, error)
	CanManageApartment(userID, apartmentID uint) (bool, error)
}

// AuthorizationService 提供基于Hub角色和公寓所有权的授权判断
type AuthorizationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAuthorizationService 创建一个新的授权服务
func NewAuthorizationService(db *gorm.DB, cfg *config.Config) InterfaceAuthorizationService {
	return &AuthorizationService{
		DB:     db,
		Config: cfg,
	}
}

// 1. CanManageHub 判断用户是否持有Hub的治理角色
// owner 与 committee_member 权限完全等同，角色检查是集合成员判断而非层级比较
func (s *AuthorizationService) CanManageHub(userID, houseHubID uint) (bool, error) {
	if userID == 0 || houseHubID == 0 {
		return false, nil
	}

	var count int64
	err := s.DB.Model(&models.Role{}).
		Where("house_hub_id = ? AND user_id = ?", houseHubID, userID).
		Where("name IN ?", models.GovernorRoles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 2. CanManageBuilding 判断用户是否可以管理楼栋（通过其所属Hub的角色）
func (s *AuthorizationService) CanManageBuilding(userID, buildingID uint) (bool, error) {
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 目标不存在按拒绝处理
			return false, nil
		}
		return false, err
	}
	if building.HouseHubID == 0 {
		return false, nil
	}
	return s.CanManageHub(userID, building.HouseHubID)
}

// 3. CanManageApartment 判断用户是否可以管理公寓
// 业主本人，或对包含该公寓的Hub持有治理角色，二者任一即可
func (s *AuthorizationService) CanManageApartment(userID, apartmentID uint) (bool, error) {
	var apartment models.Apartment
	if err := s.DB.First(&apartment, apartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if apartment.UserID == userID {
		return true, nil
	}
	return s.CanManageBuilding(userID, apartment.BuildingID)
}
