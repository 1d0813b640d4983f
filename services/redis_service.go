package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hadirida46/house-hub-api/config"
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(keys ...string) error
	CacheTokenID(tokenID string, userID uint, expiration time.Duration) error
	TokenIDExists(tokenID string) (bool, error)
	DropTokenIDs(tokenIDs []string) error
	Available() bool
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Available 检查Redis是否可达，不可达时上层退回数据库查询
func (s *RedisService) Available() bool {
	if s.Client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err() == nil
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes keys from Redis
func (s *RedisService) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}

// CacheTokenID 缓存有效令牌ID，避免每次请求都查tokens表
func (s *RedisService) CacheTokenID(tokenID string, userID uint, expiration time.Duration) error {
	key := "auth_token:" + tokenID
	return s.Client.Set(s.Ctx, key, userID, expiration).Err()
}

// TokenIDExists 检查令牌ID是否仍然有效
func (s *RedisService) TokenIDExists(tokenID string) (bool, error) {
	key := "auth_token:" + tokenID
	n, err := s.Client.Exists(s.Ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DropTokenIDs 批量移除缓存中的令牌ID（退出登录时调用）
func (s *RedisService) DropTokenIDs(tokenIDs []string) error {
	if len(tokenIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		keys = append(keys, "auth_token:"+id)
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}
