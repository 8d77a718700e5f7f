package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-slot/internal/pkg/common"
)

// Limiter 速率限制器介面，依 key（通常是用戶端 IP）判斷是否放行
type Limiter interface {
	Allow(key string) bool
}

// MemoryLimiter 記憶體版滑動視窗限流器
type MemoryLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	lastGC   time.Time
}

// NewMemoryLimiter 建立記憶體限流器
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		lastGC:   time.Now(),
	}
}

// Allow 檢查 key 在視窗內的請求數是否超限
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// 定期清理過期的 key，避免記憶體無限成長
	if now.Sub(l.lastGC) > l.window {
		for k, times := range l.requests {
			if len(times) == 0 || times[len(times)-1].Before(cutoff) {
				delete(l.requests, k)
			}
		}
		l.lastGC = now
	}

	times := l.requests[key]
	valid := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.limit {
		l.requests[key] = valid
		return false
	}

	l.requests[key] = append(valid, now)
	return true
}

// RedisLimiter Redis 版限流器，多實例部署時共享計數
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter 建立 Redis 限流器
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow 以固定視窗計數器檢查限流，Redis 故障時放行
func (l *RedisLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	redisKey := "ratelimit:" + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		common.LogWarn("限流計數失敗，放行請求", zap.Error(err))
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}
	return count <= int64(l.limit)
}

// RateLimit 速率限制中間件，依用戶端 IP 限流
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			common.LogWarn("請求超出速率限制",
				zap.String("ip", key),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", strconv.Itoa(60))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
