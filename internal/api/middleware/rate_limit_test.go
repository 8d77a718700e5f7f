package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiterAllow(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	// 不同 key 各自計數
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestMemoryLimiterWindowExpiry(t *testing.T) {
	limiter := NewMemoryLimiter(1, 50*time.Millisecond)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("1.2.3.4"))
}
