package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceBuildingService 定义楼栋服务接口
type InterfaceBuildingService interface {
	CreateBuilding(building *models.Building, callerID uint) error
	GetBuildingByID(id uint) (*models.Building, error)
	GetBuildingApartments(id uint) ([]models.Apartment, error)
	UpdateBuilding(id, callerID uint, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id, callerID uint) error
}

// BuildingService 提供楼栋相关的服务
type BuildingService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
}

// NewBuildingService 创建一个新的楼栋服务
func NewBuildingService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService) InterfaceBuildingService {
	return &BuildingService{
		DB:          db,
		Config:      cfg,
		authService: authService,
	}
}

// 1. CreateBuilding 在Hub下创建楼栋，需要治理角色
func (s *BuildingService) CreateBuilding(building *models.Building, callerID uint) error {
	if building.FloorsCount < 1 {
		return NewServiceErrorWithMessage(code.ErrValidation, "floors_count must be at least 1")
	}

	var hub models.HouseHub
	if err := s.DB.First(&hub, building.HouseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewServiceError(code.ErrHouseHubNotFound)
		}
		return err
	}

	authorized, err := s.authService.CanManageHub(callerID, building.HouseHubID)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceError(code.ErrUnauthorizedAction)
	}

	return s.DB.Create(building).Error
}

// 2. GetBuildingByID 根据ID获取楼栋
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrBuildingNotFound)
		}
		return nil, err
	}
	return &building, nil
}

// 3. GetBuildingApartments 获取楼栋下的公寓列表
func (s *BuildingService) GetBuildingApartments(id uint) ([]models.Apartment, error) {
	if _, err := s.GetBuildingByID(id); err != nil {
		return nil, err
	}

	var apartments []models.Apartment
	if err := s.DB.Where("building_id = ?", id).Find(&apartments).Error; err != nil {
		return nil, err
	}
	return apartments, nil
}

// 4. UpdateBuilding 更新楼栋信息，需要治理角色
func (s *BuildingService) UpdateBuilding(id, callerID uint, updates map[string]interface{}) (*models.Building, error) {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return nil, err
	}

	authorized, err := s.authService.CanManageHub(callerID, building.HouseHubID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, NewServiceError(code.ErrUnauthorizedAction)
	}

	if floors, ok := updates["floors_count"].(int); ok && floors < 1 {
		return nil, NewServiceErrorWithMessage(code.ErrValidation, "floors_count must be at least 1")
	}

	if err := s.DB.Model(building).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetBuildingByID(id)
}

// 5. DeleteBuilding 删除楼栋，级联删除公寓
func (s *BuildingService) DeleteBuilding(id, callerID uint) error {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return err
	}

	authorized, err := s.authService.CanManageHub(callerID, building.HouseHubID)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceError(code.ErrUnauthorizedAction)
	}

	return s.DB.Select("Apartments").Delete(building).Error
}
