package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meal_recommender"

// 推薦結果分類
const (
	OutcomeFound    = "found"
	OutcomeNoMatch  = "no_match"
	OutcomeCacheHit = "cache_hit"
	OutcomeError    = "error"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	recommendationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time spent filtering, scaling and searching for one recommendation",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)

	filteredRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_filtered_rows",
			Help:      "Number of catalog rows left after ingredient filtering",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	catalogRecipes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_recipes",
			Help:      "Number of recipes in the loaded catalog",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		recommendationsTotal,
		recommendationDuration,
		filteredRows,
		catalogRecipes,
	)
}

// Middleware 記錄 HTTP 請求耗時與次數
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 使用路由樣板避免標籤基數過高
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler Prometheus 抓取端點
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// ObserveRecommendation 記錄一次推薦的結果分類與耗時；快取命中時 filtered 為 -1 表示未計算
func ObserveRecommendation(outcome string, duration time.Duration, filtered int) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCacheHit || outcome == OutcomeError {
		return
	}
	recommendationDuration.Observe(duration.Seconds())
	if filtered >= 0 {
		filteredRows.Observe(float64(filtered))
	}
}

// SetCatalogSize 設定目錄食譜數量
func SetCatalogSize(n int) {
	catalogRecipes.Set(float64(n))
}
