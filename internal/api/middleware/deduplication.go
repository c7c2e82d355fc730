package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-recommender/internal/pkg/common"
)

// requestCache 請求指紋與最後出現時間
type requestCache struct {
	sync.Mutex
	requests  map[string]time.Time
	lastSweep time.Time
}

// sweep 移除超過 10 倍窗口的指紋，呼叫端需持有鎖
func (rc *requestCache) sweep(now time.Time, window time.Duration) {
	if now.Sub(rc.lastSweep) < 10*window {
		return
	}
	for k, t := range rc.requests {
		if now.Sub(t) > 10*window {
			delete(rc.requests, k)
		}
	}
	rc.lastSweep = now
}

// Deduplication 請求去重中間件：同一客戶端在 window 內重送已成功的相同 POST 請求會被拒絕。window <= 0 時停用
func Deduplication(window time.Duration) gin.HandlerFunc {
	cache := &requestCache{
		requests:  make(map[string]time.Time),
		lastSweep: time.Now(),
	}

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if window <= 0 || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		now := time.Now()
		cache.Lock()
		cache.sweep(now, window)
		if lastTime, exists := cache.requests[fingerprint]; exists && now.Sub(lastTime) <= window {
			cache.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrTooManyRequests.Response(false))
			return
		}
		cache.Unlock()

		c.Next()

		// 只記錄成功的請求，失敗或超時的請求可立即重試
		if status := c.Writer.Status(); c.Writer.Written() && status >= 200 && status < 300 {
			cache.Lock()
			cache.requests[fingerprint] = now
			cache.Unlock()
		}
	}
}
