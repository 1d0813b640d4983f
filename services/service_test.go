package services

import (
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
)

// setupMockDB 基于sqlmock构建gorm连接，所有服务测试共用
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

// errDuplicateEmail 模拟MySQL邮箱唯一索引冲突
func errDuplicateEmail() error {
	return errors.New("Error 1062 (23000): Duplicate entry 'max@example.com' for key 'users.email'")
}

func testConfig() *config.Config {
	return &config.Config{
		AppURL:       "http://localhost:8080",
		JWTSecretKey: "test-secret",
		MailFrom:     "noreply@househub.app",
	}
}

// fakeAuthService 固定返回授权结果
type fakeAuthService struct {
	allowHub       bool
	allowBuilding  bool
	allowApartment bool
}

func (f *fakeAuthService) CanManageHub(userID, houseHubID uint) (bool, error) {
	return f.allowHub, nil
}

func (f *fakeAuthService) CanManageBuilding(userID, buildingID uint) (bool, error) {
	return f.allowBuilding, nil
}

func (f *fakeAuthService) CanManageApartment(userID, apartmentID uint) (bool, error) {
	return f.allowApartment, nil
}

// fakeUserService 只实现邀请流程用到的FindOrCreateByEmail，并记录调用
type fakeUserService struct {
	user     *models.User
	password string
	err      error

	findOrCreateCalls []string
}

func (f *fakeUserService) FindOrCreateByEmail(email string) (*models.User, string, error) {
	f.findOrCreateCalls = append(f.findOrCreateCalls, email)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.password, nil
}

func (f *fakeUserService) Register(name, email, password string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) Login(email, password string) (*models.User, string, error) {
	return nil, "", nil
}

func (f *fakeUserService) Logout(userID uint) error { return nil }

func (f *fakeUserService) DestroyAccount(userID uint) error { return nil }

func (f *fakeUserService) GetProfile(userID uint) (*models.User, error) { return nil, nil }

func (f *fakeUserService) UpdateProfile(userID uint, updates map[string]interface{}) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeUserService) SendVerificationEmail(userID uint) error { return nil }

func (f *fakeUserService) VerifyEmail(userID uint, hash string) error { return nil }

func (f *fakeUserService) GetUserHouseHubs(userID uint) ([]models.HouseHub, error) { return nil, nil }

// roleInviteCall 记录一次角色邀请邮件的参数
type roleInviteCall struct {
	email      string
	roleName   string
	hubName    string
	inviteLink string
	password   string
}

// ownerInviteCall 记录一次业主邀请邮件的参数
type ownerInviteCall struct {
	email         string
	password      string
	hubName       string
	buildingName  string
	floor         int
	apartmentName string
}

// residentInviteCall 记录一次居住人邀请邮件的参数
type residentInviteCall struct {
	email         string
	password      string
	hubName       string
	buildingName  string
	apartmentName string
}

// fakeMailService 记录所有发信调用
type fakeMailService struct {
	mu sync.Mutex

	verificationMails []string
	ownerInvites      []ownerInviteCall
	residentInvites   []residentInviteCall
	roleInvites       []roleInviteCall
}

func (f *fakeMailService) Start() {}
func (f *fakeMailService) Stop()  {}

func (f *fakeMailService) SendVerificationMail(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verificationMails = append(f.verificationMails, user.Email)
}

func (f *fakeMailService) SendApartmentOwnerInvite(user *models.User, password, houseHubName, buildingName string, floor int, apartmentName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownerInvites = append(f.ownerInvites, ownerInviteCall{
		email:         user.Email,
		password:      password,
		hubName:       houseHubName,
		buildingName:  buildingName,
		floor:         floor,
		apartmentName: apartmentName,
	})
}

func (f *fakeMailService) SendResidentInvite(user *models.User, password, houseHubName, buildingName, apartmentName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.residentInvites = append(f.residentInvites, residentInviteCall{
		email:         user.Email,
		password:      password,
		hubName:       houseHubName,
		buildingName:  buildingName,
		apartmentName: apartmentName,
	})
}

func (f *fakeMailService) SendRoleInvite(email, roleName, houseHubName, inviteLink, recipientName, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleInvites = append(f.roleInvites, roleInviteCall{
		email:      email,
		roleName:   roleName,
		hubName:    houseHubName,
		inviteLink: inviteLink,
		password:   password,
	})
}

// fakeNotifier 记录发布的公告事件
type fakeNotifier struct {
	published []*models.Announcement
}

func (f *fakeNotifier) Connect() error { return nil }
func (f *fakeNotifier) Disconnect()    {}
func (f *fakeNotifier) Enabled() bool  { return true }

func (f *fakeNotifier) PublishAnnouncement(announcement *models.Announcement) {
	f.published = append(f.published, announcement)
}

// fakeRedisService 内存实现，记录令牌缓存操作
type fakeRedisService struct {
	tokens map[string]uint
}

func newFakeRedisService() *fakeRedisService {
	return &fakeRedisService{tokens: make(map[string]uint)}
}

func (f *fakeRedisService) Set(key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (f *fakeRedisService) Get(key string, dest interface{}) error { return nil }

func (f *fakeRedisService) Delete(keys ...string) error { return nil }

func (f *fakeRedisService) CacheTokenID(tokenID string, userID uint, expiration time.Duration) error {
	f.tokens[tokenID] = userID
	return nil
}

func (f *fakeRedisService) TokenIDExists(tokenID string) (bool, error) {
	_, ok := f.tokens[tokenID]
	return ok, nil
}

func (f *fakeRedisService) DropTokenIDs(tokenIDs []string) error {
	for _, id := range tokenIDs {
		delete(f.tokens, id)
	}
	return nil
}

func (f *fakeRedisService) Available() bool { return true }
