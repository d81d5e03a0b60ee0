// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerWindow(t *testing.T) {
	limit := PerWindow(50, 10, 30*time.Second)

	assert.Equal(t, 50, limit.Rate)
	assert.Equal(t, 10, limit.Burst)
	assert.Equal(t, 30*time.Second, limit.Period)
}

func TestPerWindow_ZeroWindowDefaultsToMinute(t *testing.T) {
	limit := PerWindow(100, 20, 0)

	assert.Equal(t, time.Minute, limit.Period)
}

func TestLocalLimiter_StopEndsCleanup(t *testing.T) {
	l := newLocalLimiter()
	l.stop()

	select {
	case <-l.done:
	default:
		t.Fatal("stop must signal the cleanup goroutine to exit")
	}
}

func TestRateLimiter_Close(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Limit: PerMinute(10, 5)})
	require.NotNil(t, rl.fallback)

	rl.Close()

	select {
	case <-rl.fallback.done:
	default:
		t.Fatal("Close must stop the fallback limiter")
	}
}
