package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/internal/error/code"
	"github.com/hadirida46/house-hub-api/internal/error/response"
)

// tokenBucket 简单的令牌桶限流器
type tokenBucket struct {
	rate       float64   // 每秒填充的令牌数
	capacity   int       // 桶的容量
	tokens     float64   // 当前令牌数
	lastRefill time.Time // 上次填充时间
	mu         sync.Mutex
}

func newTokenBucket(rate float64, capacity int) *tokenBucket {
	return &tokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow 尝试获取令牌
func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// ipLimiterStore 按客户端IP维护限流器，定期清理不活跃条目
type ipLimiterStore struct {
	mu       sync.RWMutex
	limiters map[string]*ipLimiterEntry
	rate     float64
	burst    int
}

type ipLimiterEntry struct {
	bucket   *tokenBucket
	lastSeen time.Time
}

func newIPLimiterStore(rate float64, burst int) *ipLimiterStore {
	store := &ipLimiterStore{
		limiters: make(map[string]*ipLimiterEntry),
		rate:     rate,
		burst:    burst,
	}
	go store.cleanupLoop(10*time.Minute, time.Hour)
	return store
}

func (s *ipLimiterStore) get(ip string) *tokenBucket {
	s.mu.RLock()
	entry, exists := s.limiters[ip]
	s.mu.RUnlock()

	if exists {
		s.mu.Lock()
		entry.lastSeen = time.Now()
		s.mu.Unlock()
		return entry.bucket
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, exists = s.limiters[ip]; exists {
		entry.lastSeen = time.Now()
		return entry.bucket
	}
	entry = &ipLimiterEntry{
		bucket:   newTokenBucket(s.rate, s.burst),
		lastSeen: time.Now(),
	}
	s.limiters[ip] = entry
	return entry.bucket
}

// cleanupLoop 定期删除超过expiry未活跃的限流器
func (s *ipLimiterStore) cleanupLoop(interval, expiry time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-expiry)
		s.mu.Lock()
		for ip, entry := range s.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(s.limiters, ip)
			}
		}
		s.mu.Unlock()
	}
}

// IPRateLimiter 按客户端IP限流，用于登录、注册等暴露端点
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	store := newIPLimiterStore(rate, burst)
	return func(c *gin.Context) {
		if !store.get(c.ClientIP()).allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "Too many requests, please try again later", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
