package services

import (
	"fmt"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/utils"
)

// mailQueueSize 邮件队列缓冲大小，入队不阻塞请求处理
const mailQueueSize = 64

// InterfaceMailService 定义邮件服务接口
// 所有发送都是异步的：入队即返回，发送失败只记录日志，
// 不回滚触发发送的业务写入（账号创建以落库为准）
type InterfaceMailService interface {
	Start()
	Stop()
	SendVerificationMail(user *models.User)
	SendApartmentOwnerInvite(user *models.User, password, houseHubName, buildingName string, floor int, apartmentName string)
	SendResidentInvite(user *models.User, password, houseHubName, buildingName, apartmentName string)
	SendRoleInvite(email, roleName, houseHubName, inviteLink, recipientName, password string)
}

// mailSender 抽象底层SMTP发送，便于测试注入
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailService 提供异步邮件派发服务
type MailService struct {
	Config *config.Config

	sender  mailSender
	queue   chan *gomail.Message
	done    chan struct{}
	started bool
	mu      sync.Mutex
}

// NewMailService 创建一个新的邮件服务
func NewMailService(cfg *config.Config) InterfaceMailService {
	return &MailService{
		Config: cfg,
		sender: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		queue:  make(chan *gomail.Message, mailQueueSize),
		done:   make(chan struct{}),
	}
}

// Start 启动后台派发协程
func (s *MailService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	go func() {
		for {
			select {
			case msg := <-s.queue:
				if err := s.sender.DialAndSend(msg); err != nil {
					config.Error("发送邮件失败 (subject=%q): %v", msg.GetHeader("Subject"), err)
				}
			case <-s.done:
				return
			}
		}
	}()
}

// Stop 停止后台派发协程
func (s *MailService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.done)
}

// enqueue 将邮件放入队列，队列满时丢弃并记录
func (s *MailService) enqueue(msg *gomail.Message) {
	select {
	case s.queue <- msg:
	default:
		config.Error("邮件队列已满，丢弃邮件 (subject=%q)", msg.GetHeader("Subject"))
	}
}

// newMessage 构建带发件人的基础邮件
func (s *MailService) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.Config.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

// 1. SendVerificationMail 发送邮箱验证邮件
func (s *MailService) SendVerificationMail(user *models.User) {
	link := fmt.Sprintf("%s/api/verify-email/%d/%s",
		s.Config.AppURL, user.ID, utils.EmailVerificationHash(user.Email))

	msg := s.newMessage(user.Email, "Verify Your Email Address")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Please verify your email address by clicking the link below:</p>
		<p><a href="%s">Verify Email</a></p>`,
		user.Name, link))
	s.enqueue(msg)
}

// 2. SendApartmentOwnerInvite 发送公寓业主邀请邮件，包含初始明文密码
func (s *MailService) SendApartmentOwnerInvite(user *models.User, password, houseHubName, buildingName string, floor int, apartmentName string) {
	msg := s.newMessage(user.Email, "You Are Invited To Be Owner Of Apartment")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You have been invited to be the owner of apartment <b>%s</b>,
		floor %d of building <b>%s</b> in House Hub <b>%s</b>.</p>
		<p>Your account email: %s</p>
		<p>Your temporary password: <b>%s</b></p>
		<p>Please log in and change your password.</p>`,
		user.Name, apartmentName, floor, buildingName, houseHubName, user.Email, password))
	s.enqueue(msg)
}

// 3. SendResidentInvite 发送公寓居住人邀请邮件，包含初始明文密码
func (s *MailService) SendResidentInvite(user *models.User, password, houseHubName, buildingName, apartmentName string) {
	msg := s.newMessage(user.Email, "You Are Invited To Be Resident Of Apartment")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You have been added as a resident of apartment <b>%s</b>
		in building <b>%s</b> of House Hub <b>%s</b>.</p>
		<p>Your account email: %s</p>
		<p>Your temporary password: <b>%s</b></p>
		<p>Please log in and change your password.</p>`,
		user.Name, apartmentName, buildingName, houseHubName, user.Email, password))
	s.enqueue(msg)
}

// 4. SendRoleInvite 发送Hub角色邀请邮件，包含接受邀请链接
// password 为空表示受邀人已有账号，邮件中不包含密码段
func (s *MailService) SendRoleInvite(email, roleName, houseHubName, inviteLink, recipientName, password string) {
	passwordBlock := ""
	if password != "" {
		passwordBlock = fmt.Sprintf("<p>Your temporary password: <b>%s</b></p>", password)
	}

	msg := s.newMessage(email, fmt.Sprintf("You're invited to join %s", houseHubName))
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You have been invited to join House Hub <b>%s</b> as <b>%s</b>.</p>
		%s
		<p><a href="%s">Accept Invitation</a></p>`,
		recipientName, houseHubName, roleName, passwordBlock, inviteLink))
	s.enqueue(msg)
}
