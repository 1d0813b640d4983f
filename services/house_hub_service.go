package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceHouseHubService 定义HouseHub服务接口
type InterfaceHouseHubService interface {
	CreateHouseHub(hub *models.HouseHub, creatorID uint) error
	GetHouseHubByID(id uint) (*models.HouseHub, error)
	GetHouseHubBuildings(id uint) ([]models.Building, error)
	UpdateHouseHub(id, callerID uint, updates map[string]interface{}) (*models.HouseHub, error)
	DeleteHouseHub(id, callerID uint) error
}

// HouseHubService 提供HouseHub相关的服务
type HouseHubService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
}

// NewHouseHubService 创建一个新的HouseHub服务
func NewHouseHubService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService) InterfaceHouseHubService {
	return &HouseHubService{
		DB:          db,
		Config:      cfg,
		authService: authService,
	}
}

// 1. CreateHouseHub 创建Hub并授予创建者owner角色
// Hub的治理完全由Role行表达，创建者角色是后续所有授权检查的起点
func (s *HouseHubService) CreateHouseHub(hub *models.HouseHub, creatorID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hub).Error; err != nil {
			return err
		}
		role := models.Role{
			HouseHubID: hub.ID,
			UserID:     creatorID,
			Name:       models.RoleOwner,
		}
		return tx.Create(&role).Error
	})
}

// 2. GetHouseHubByID 根据ID获取Hub
func (s *HouseHubService) GetHouseHubByID(id uint) (*models.HouseHub, error) {
	var hub models.HouseHub
	if err := s.DB.First(&hub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrHouseHubNotFound)
		}
		return nil, err
	}
	return &hub, nil
}

// 3. GetHouseHubBuildings 获取Hub下的楼栋列表
func (s *HouseHubService) GetHouseHubBuildings(id uint) ([]models.Building, error) {
	if _, err := s.GetHouseHubByID(id); err != nil {
		return nil, err
	}

	var buildings []models.Building
	if err := s.DB.Where("house_hub_id = ?", id).Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// 4. UpdateHouseHub 更新Hub信息，需要治理角色
func (s *HouseHubService) UpdateHouseHub(id, callerID uint, updates map[string]interface{}) (*models.HouseHub, error) {
	hub, err := s.GetHouseHubByID(id)
	if err != nil {
		return nil, err
	}

	authorized, err := s.authService.CanManageHub(callerID, id)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, NewServiceError(code.ErrUnauthorizedAction)
	}

	if err := s.DB.Model(hub).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetHouseHubByID(id)
}

// 5. DeleteHouseHub 删除Hub，级联删除楼栋、公寓、居住关系、角色和公告
func (s *HouseHubService) DeleteHouseHub(id, callerID uint) error {
	hub, err := s.GetHouseHubByID(id)
	if err != nil {
		return err
	}

	authorized, err := s.authService.CanManageHub(callerID, id)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceErrorWithMessage(code.ErrUnauthorizedAction, "You Are Not Authorized To Delete This HouseHub")
	}

	return s.DB.Select("Buildings", "Roles", "Announcements").Delete(hub).Error
}
