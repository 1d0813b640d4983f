package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/utils"
)

// fakeJWTService 固定返回令牌，记录注销调用
type fakeJWTService struct {
	token        string
	revokedUsers []uint
}

func (f *fakeJWTService) GenerateToken(user *models.User) (string, error) {
	return f.token, nil
}

func (f *fakeJWTService) ValidateToken(tokenString string) (*jwt.Token, error) { return nil, nil }

func (f *fakeJWTService) ExtractClaims(tokenString string) (*JWTClaims, error) { return nil, nil }

func (f *fakeJWTService) IsTokenActive(tokenID string) (bool, error) { return true, nil }

func (f *fakeJWTService) RevokeAllTokens(userID uint) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	return nil
}

func userRow(t *testing.T, id uint, name, email, password string, verified bool) *sqlmock.Rows {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	var verifiedAt interface{}
	if verified {
		now := time.Now()
		verifiedAt = now
	}
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "email_verified_at"}).
		AddRow(id, name, email, hashed, verifiedAt)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mail := &fakeMailService{}
	svc := NewUserService(db, testConfig(), &fakeJWTService{}, mail)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := svc.Register("jane", "jane@example.com", "password1")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrUserAlreadyExist, se.Code)
	assert.Empty(t, mail.verificationMails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_CreatesUserAndSendsVerification(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mail := &fakeMailService{}
	svc := NewUserService(db, testConfig(), &fakeJWTService{}, mail)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, err := svc.Register("jane", "jane@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "jane", user.Name)
	// BeforeCreate钩子已将明文替换为bcrypt哈希
	assert.True(t, utils.CheckPasswordHash("password1", user.Password))
	assert.Nil(t, user.EmailVerifiedAt)
	assert.Equal(t, []string{"jane@example.com"}, mail.verificationMails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_InvalidPassword(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 1, "jane", "jane@example.com", "password1", true))

	_, _, err := svc.Login("jane@example.com", "wrong")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrInvalidCredentials, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := svc.Login("nobody@example.com", "whatever")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrInvalidCredentials, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnverifiedEmailRejected(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{token: "never"}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 1, "jane", "jane@example.com", "password1", false))

	_, _, err := svc.Login("jane@example.com", "password1")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrEmailNotVerified, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Succeeds(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{token: "signed-token"}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 1, "jane", "jane@example.com", "password1", true))

	user, token, err := svc.Login("jane@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, uint(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_ExistingUserReused(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mail := &fakeMailService{}
	svc := NewUserService(db, testConfig(), &fakeJWTService{}, mail)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 9, "max", "max@example.com", "whatever", true))

	user, password, err := svc.FindOrCreateByEmail("max@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
	// 已有账号：不生成密码，不发验证邮件，不做任何修改
	assert.Empty(t, password)
	assert.Empty(t, mail.verificationMails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_CreatesWithLocalPartName(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mail := &fakeMailService{}
	svc := NewUserService(db, testConfig(), &fakeJWTService{}, mail)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	user, password, err := svc.FindOrCreateByEmail("max.muster@example.com")
	require.NoError(t, err)
	assert.Equal(t, "max.muster", user.Name)
	assert.Len(t, password, 10)
	assert.True(t, utils.CheckPasswordHash(password, user.Password))
	assert.Nil(t, user.EmailVerifiedAt)
	assert.Equal(t, []string{"max.muster@example.com"}, mail.verificationMails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_ConcurrentCreateReturnsConflict(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mail := &fakeMailService{}
	svc := NewUserService(db, testConfig(), &fakeJWTService{}, mail)

	// 先查后插的窗口里另一请求已创建同一邮箱的账号
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(errDuplicateEmail())
	mock.ExpectRollback()

	_, _, err := svc.FindOrCreateByEmail("max@example.com")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrUserAlreadyExist, se.Code)
	// 冲突路径不补发验证邮件
	assert.Empty(t, mail.verificationMails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyEmail_InvalidHashRejected(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 1, "jane", "jane@example.com", "password1", false))

	err := svc.VerifyEmail(1, "bogus-hash")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrValidation, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyEmail_MarksVerified(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{}, &fakeMailService{})

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(t, 1, "jane", "jane@example.com", "password1", false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.VerifyEmail(1, utils.EmailVerificationHash("jane@example.com"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	db, _, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	jwtSvc := &fakeJWTService{}
	svc := NewUserService(db, testConfig(), jwtSvc, &fakeMailService{})

	require.NoError(t, svc.Logout(7))
	assert.Equal(t, []uint{7}, jwtSvc.revokedUsers)
}

func TestGetUserHouseHubs_UnionDeduplicated(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewUserService(db, testConfig(), &fakeJWTService{}, &fakeMailService{})

	// Hub 1 既有角色又有居住关系，结果只出现一次
	mock.ExpectQuery("SELECT (.+) FROM `house_hubs` JOIN roles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Sunrise Hub"))
	mock.ExpectQuery("SELECT (.+) FROM `house_hubs` JOIN buildings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Sunrise Hub").
			AddRow(2, "Riverside Hub"))

	hubs, err := svc.GetUserHouseHubs(7)
	require.NoError(t, err)
	require.Len(t, hubs, 2)
	assert.Equal(t, uint(1), hubs[0].ID)
	assert.Equal(t, uint(2), hubs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
