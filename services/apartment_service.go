package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceApartmentService 定义公寓服务接口
type InterfaceApartmentService interface {
	CreateApartment(callerID, buildingID uint, name string, floor int, email string) (*models.Apartment, error)
	GetApartmentByID(id uint) (*models.Apartment, error)
	GetApartmentResidents(id uint) ([]models.BuildingResident, error)
	UpdateApartment(id, callerID uint, req *UpdateApartmentInput) (*models.Apartment, error)
	DeleteApartment(id, callerID uint) error
}

// UpdateApartmentInput 公寓更新入参，nil字段表示不修改
type UpdateApartmentInput struct {
	BuildingID *uint
	Name       *string
	Floor      *int
	Email      *string
}

// ApartmentService 提供公寓相关的服务，包含业主邀请流程
type ApartmentService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
	userService InterfaceUserService
	mailService InterfaceMailService
}

// NewApartmentService 创建一个新的公寓服务
func NewApartmentService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService, userService InterfaceUserService, mailService InterfaceMailService) InterfaceApartmentService {
	return &ApartmentService{
		DB:          db,
		Config:      cfg,
		authService: authService,
		userService: userService,
		mailService: mailService,
	}
}

// resolveHubName 解析楼栋所属Hub名称，链路断裂时返回空串
func (s *ApartmentService) resolveHubName(building *models.Building) string {
	var hub models.HouseHub
	if err := s.DB.First(&hub, building.HouseHubID).Error; err != nil {
		return ""
	}
	return hub.Name
}

// 1. CreateApartment 创建公寓并邀请业主
// 楼层校验先于任何用户副作用：超界直接返回400，不会产生悬挂的新账号
func (s *ApartmentService) CreateApartment(callerID, buildingID uint, name string, floor int, email string) (*models.Apartment, error) {
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrBuildingNotFound)
		}
		return nil, err
	}

	if floor < 1 || floor > building.FloorsCount {
		return nil, NewServiceError(code.ErrFloorLimitExceeded)
	}

	authorized, err := s.authService.CanManageHub(callerID, building.HouseHubID)
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

	// 仅对新建账号发送业主邀请，已有账号只建立所有权
	if password != "" {
		s.mailService.SendApartmentOwnerInvite(user, password, s.resolveHubName(&building), building.Name, floor, name)
	}

	apartment := models.Apartment{
		BuildingID: buildingID,
		UserID:     user.ID,
		Name:       name,
		Floor:      floor,
	}
	if err := s.DB.Create(&apartment).Error; err != nil {
		return nil, err
	}
	return &apartment, nil
}

// 2. GetApartmentByID 根据ID获取公寓
func (s *ApartmentService) GetApartmentByID(id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.DB.First(&apartment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrApartmentNotFound)
		}
		return nil, err
	}
	return &apartment, nil
}

// 3. GetApartmentResidents 获取公寓的居住人列表（含用户投影）
func (s *ApartmentService) GetApartmentResidents(id uint) ([]models.BuildingResident, error) {
	if _, err := s.GetApartmentByID(id); err != nil {
		return nil, err
	}

	var residents []models.BuildingResident
	if err := s.DB.Preload("User").Where("apartment_id = ?", id).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 4. UpdateApartment 更新公寓，换楼栋/楼层时重新校验楼层上界，
// 换业主邮箱时走与创建相同的查找或创建流程
func (s *ApartmentService) UpdateApartment(id, callerID uint, req *UpdateApartmentInput) (*models.Apartment, error) {
	apartment, err := s.GetApartmentByID(id)
	if err != nil {
		return nil, err
	}

	authorized, err := s.authService.CanManageApartment(callerID, id)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, NewServiceError(code.ErrUnauthorizedAction)
	}

	// 目标楼栋：换楼栋时校验目标，否则用当前楼栋
	buildingID := apartment.BuildingID
	if req.BuildingID != nil {
		buildingID = *req.BuildingID
	}
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrBuildingNotFound)
		}
		return nil, err
	}

	floor := apartment.Floor
	if req.Floor != nil {
		floor = *req.Floor
	}
	if floor < 1 || floor > building.FloorsCount {
		return nil, NewServiceError(code.ErrFloorLimitExceeded)
	}

	updates := map[string]interface{}{}
	if req.BuildingID != nil {
		updates["building_id"] = *req.BuildingID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}

	if req.Email != nil {
		user, password, err := s.userService.FindOrCreateByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if password != "" {
			name := apartment.Name
			if req.Name != nil {
				name = *req.Name
			}
			s.mailService.SendApartmentOwnerInvite(user, password, s.resolveHubName(&building), building.Name, floor, name)
		}
		updates["user_id"] = user.ID
	}

	if len(updates) == 0 {
		return apartment, nil
	}
	if err := s.DB.Model(apartment).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetApartmentByID(id)
}

// 5. DeleteApartment 删除公寓，级联删除居住关系
func (s *ApartmentService) DeleteApartment(id, callerID uint) error {
	apartment, err := s.GetApartmentByID(id)
	if err != nil {
		return err
	}

	authorized, err := s.authService.CanManageApartment(callerID, id)
	if err != nil {
		return err
	}
	if !authorized {
		return NewServiceError(code.ErrUnauthorizedAction)
	}

	return s.DB.Select("Residents").Delete(apartment).Error
}
