package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
)

// tokenTTL 令牌有效期为24小时
const tokenTTL = 24 * time.Hour

// InterfaceJWTService 定义JWT相关服务接口
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	IsTokenActive(tokenID string) (bool, error)
	RevokeAllTokens(userID uint) error
}

// JWTService 提供JWT颁发、校验与注销服务
// 颁发的令牌ID登记在tokens表中，按用户批量删除即实现全端退出
type JWTService struct {
	DB        *gorm.DB
	secretKey string
	issuer    string
	redis     InterfaceRedisService
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceJWTService {
	return &JWTService{
		DB:        db,
		secretKey: cfg.JWTSecretKey,
		issuer:    "house-hub-api",
		redis:     redisService,
	}
}

// GenerateToken 生成JWT令牌并登记令牌ID
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL)
	tokenID := uuid.NewString()

	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", err
	}

	record := models.Token{
		UserID:    user.ID,
		TokenID:   tokenID,
		Name:      "auth_token",
		ExpiresAt: expiresAt,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return "", err
	}

	// 缓存失败不影响颁发，校验时会退回数据库
	if s.redis != nil {
		if err := s.redis.CacheTokenID(tokenID, user.ID, tokenTTL); err != nil {
			config.Warning("缓存令牌ID失败: %v", err)
		}
	}

	return signed, nil
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// IsTokenActive 检查令牌ID是否仍然登记在册（未被退出登录注销）
func (s *JWTService) IsTokenActive(tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	// 优先查缓存
	if s.redis != nil {
		if exists, err := s.redis.TokenIDExists(tokenID); err == nil && exists {
			return true, nil
		}
	}

	var record models.Token
	err := s.DB.Where("token_id = ?", tokenID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if time.Now().After(record.ExpiresAt) {
		return false, nil
	}

	// 回填缓存
	if s.redis != nil {
		ttl := time.Until(record.ExpiresAt)
		if err := s.redis.CacheTokenID(record.TokenID, record.UserID, ttl); err != nil {
			config.Debug("回填令牌缓存失败: %v", err)
		}
	}
	return true, nil
}

// RevokeAllTokens 注销用户的全部令牌
func (s *JWTService) RevokeAllTokens(userID uint) error {
	var tokenIDs []string
	if err := s.DB.Model(&models.Token{}).
		Where("user_id = ?", userID).
		Pluck("token_id", &tokenIDs).Error; err != nil {
		return err
	}

	if err := s.DB.Where("user_id = ?", userID).Delete(&models.Token{}).Error; err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.DropTokenIDs(tokenIDs); err != nil {
			config.Warning("清理令牌缓存失败: %v", err)
		}
	}
	return nil
}
