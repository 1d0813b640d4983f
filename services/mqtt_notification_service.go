package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
)

// InterfaceMQTTNotificationService 定义MQTT通知服务接口
// 公告创建后向 househub/{id}/announcements 主题广播事件，发布是尽力而为
type InterfaceMQTTNotificationService interface {
	Connect() error
	Disconnect()
	PublishAnnouncement(announcement *models.Announcement)
	Enabled() bool
}

// AnnouncementEvent 公告广播消息体
type AnnouncementEvent struct {
	AnnouncementID uint      `json:"announcement_id"`
	HouseHubID     uint      `json:"house_hub_id"`
	AuthorID       uint      `json:"author_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
}

// MQTTNotificationService 提供Hub事件的MQTT广播
// 未配置broker时服务保持禁用，所有调用为空操作
type MQTTNotificationService struct {
	Config *config.Config
	Client mqtt.Client

	isConnected    bool
	connectedMutex sync.RWMutex
}

// NewMQTTNotificationService 创建一个新的MQTT通知服务
func NewMQTTNotificationService(cfg *config.Config) InterfaceMQTTNotificationService {
	service := &MQTTNotificationService{
		Config: cfg,
	}

	if cfg.MQTTBrokerURL != "" {
		service.setupMQTTClient()
	}

	return service
}

// Enabled 判断MQTT通知是否启用
func (s *MQTTNotificationService) Enabled() bool {
	return s.Client != nil
}

// setupMQTTClient 设置MQTT客户端
func (s *MQTTNotificationService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s", s.Config.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		config.Warning("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.isConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		config.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.isConnected = true
		s.connectedMutex.Unlock()
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器
func (s *MQTTNotificationService) Connect() error {
	if s.Client == nil {
		return nil
	}

	s.connectedMutex.RLock()
	isConnected := s.isConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()
	if isConnected {
		return nil
	}

	token := s.Client.Connect()
	if token.WaitTimeout(5*time.Second) && token.Error() == nil {
		s.connectedMutex.Lock()
		s.isConnected = true
		s.connectedMutex.Unlock()
		return nil
	}
	return fmt.Errorf("[MQTT] 连接 %s 失败: %v", s.Config.MQTTBrokerURL, token.Error())
}

// Disconnect 断开与MQTT服务器的连接
func (s *MQTTNotificationService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// PublishAnnouncement 广播公告创建事件，失败仅记录日志
func (s *MQTTNotificationService) PublishAnnouncement(announcement *models.Announcement) {
	if s.Client == nil {
		return
	}

	event := AnnouncementEvent{
		AnnouncementID: announcement.ID,
		HouseHubID:     announcement.HouseHubID,
		AuthorID:       announcement.UserID,
		Title:          announcement.Title,
		CreatedAt:      announcement.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		config.Error("[MQTT] 序列化公告事件失败: %v", err)
		return
	}

	topic := fmt.Sprintf("househub/%d/announcements", announcement.HouseHubID)
	token := s.Client.Publish(topic, 1, false, payload)
	go func() {
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			config.Warning("[MQTT] 发布公告事件失败: %v", token.Error())
		}
	}()
}
