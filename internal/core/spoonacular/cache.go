package spoonacular

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-slot/internal/pkg/common"
)

// Cache 供應商回應快取。以請求簽名為鍵存放原始 JSON 回應，
// 減少對外部 API 的配額消耗。停用時所有操作為空操作。
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
}

// NewCache 建立 Redis 快取，enabled 為 false 時回傳空操作快取
func NewCache(addr string, ttl time.Duration, enabled bool) *Cache {
	if !enabled {
		return &Cache{enabled: false}
	}
	return &Cache{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		ttl:     ttl,
		enabled: true,
	}
}

// Get 讀取快取，未命中或快取停用時回傳 (nil, false)
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		common.LogCacheMiss("provider", key)
		return nil, false
	}
	if err != nil {
		common.LogWarn("快取讀取失敗", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	common.LogCacheHit("provider", key)
	return data, true
}

// Set 寫入快取，失敗時僅記錄警告
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if !c.enabled {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("key", key), zap.Error(err))
	}
}

// Close 關閉 Redis 連線
func (c *Cache) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// cacheKey 由端點與查詢參數產生快取鍵，避免金鑰出現在鍵名中
func cacheKey(endpoint string, params map[string]string) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	// map 迭代順序不定，改用排序後的串接
	for _, k := range sortedKeys(params) {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(params[k]))
		h.Write([]byte{0})
	}
	return "spoonacular:" + hex.EncodeToString(h.Sum(nil))[:32]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
