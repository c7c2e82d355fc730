package health

import (
	"net/http"
	"runtime"
	"time"

	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// cacheStatsProvider 提供快取統計的服務
type cacheStatsProvider interface {
	CacheStats() map[string]interface{}
}

// CatalogStatus 目錄狀態
type CatalogStatus struct {
	Recipes     int       `json:"recipes"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if cat := catalogFromContext(c); cat != nil {
		response.Catalog = &CatalogStatus{
			Recipes:     cat.Len(),
			Fingerprint: cat.Fingerprint(),
			LoadedAt:    cat.LoadedAt(),
		}
	}

	if v, exists := c.Get("recommend_service"); exists {
		if sp, ok := v.(cacheStatsProvider); ok {
			response.Cache = sp.CacheStats()
		}
	}

	// 記錄請求
	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：目錄已載入且非空才算就緒
func ReadinessCheck(c *gin.Context) {
	cat := catalogFromContext(c)
	if cat == nil || cat.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "catalog not loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"recipes": cat.Len(),
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func catalogFromContext(c *gin.Context) *catalog.Catalog {
	v, exists := c.Get("catalog")
	if !exists {
		return nil
	}
	cat, _ := v.(*catalog.Catalog)
	return cat
}
