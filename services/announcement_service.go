package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceAnnouncementService 定义公告服务接口
type InterfaceAnnouncementService interface {
	CreateAnnouncement(callerID, houseHubID uint, title, body string) (*models.Announcement, error)
	GetHubAnnouncements(houseHubID uint) ([]models.AnnouncementView, error)
}

// AnnouncementService 提供Hub公告相关的服务
type AnnouncementService struct {
	DB     *gorm.DB
	Config *config.Config

	authService InterfaceAuthorizationService
	notifier    InterfaceMQTTNotificationService
}

// NewAnnouncementService 创建一个新的公告服务
func NewAnnouncementService(db *gorm.DB, cfg *config.Config, authService InterfaceAuthorizationService, notifier InterfaceMQTTNotificationService) InterfaceAnnouncementService {
	return &AnnouncementService{
		DB:          db,
		Config:      cfg,
		authService: authService,
		notifier:    notifier,
	}
}

// 1. CreateAnnouncement 创建公告，需要Hub治理角色
func (s *AnnouncementService) CreateAnnouncement(callerID, houseHubID uint, title, body string) (*models.Announcement, error) {
	var hub models.HouseHub
	if err := s.DB.First(&hub, houseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrHouseHubNotFound)
		}
		return nil, err
	}

	authorized, err := s.authService.CanManageHub(callerID, houseHubID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, NewServiceErrorWithMessage(code.ErrUnauthorizedAction,
			"You are not authorized to create announcements for this HouseHub.")
	}

	title = strings.TrimSpace(title)
	// 标题上限255个字符，按rune计数
	if title == "" || utf8.RuneCountInString(title) > 255 {
		return nil, NewServiceErrorWithMessage(code.ErrValidation, "title is required and must not exceed 255 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, NewServiceErrorWithMessage(code.ErrValidation, "body is required")
	}

	announcement := models.Announcement{
		HouseHubID: houseHubID,
		UserID:     callerID,
		Title:      title,
		Body:       body,
	}
	if err := s.DB.Create(&announcement).Error; err != nil {
		return nil, err
	}

	// 广播是尽力而为，失败不影响响应
	if s.notifier != nil {
		s.notifier.PublishAnnouncement(&announcement)
	}
	return &announcement, nil
}

// 2. GetHubAnnouncements 获取Hub公告列表，按创建时间倒序，作者仅投影id和name
func (s *AnnouncementService) GetHubAnnouncements(houseHubID uint) ([]models.AnnouncementView, error) {
	var hub models.HouseHub
	if err := s.DB.First(&hub, houseHubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(code.ErrHouseHubNotFound)
		}
		return nil, err
	}

	var announcements []models.Announcement
	if err := s.DB.Preload("User").
		Where("house_hub_id = ?", houseHubID).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}

	views := make([]models.AnnouncementView, 0, len(announcements))
	for _, a := range announcements {
		view := models.AnnouncementView{
			ID:        a.ID,
			Title:     a.Title,
			Body:      a.Body,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
		if a.User != nil {
			view.User = models.AnnouncementAuthor{ID: a.User.ID, Name: a.User.Name}
		}
		views = append(views, view)
	}
	return views, nil
}
