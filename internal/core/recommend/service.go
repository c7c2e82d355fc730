package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Cache 推薦結果快取
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Result 推薦服務回傳結果；Found 為 false 表示沒有符合條件的食譜（非錯誤）
type Result struct {
	Found    bool     `json:"found"`
	Recipes  []Recipe `json:"recipes"`
	Filtered int      `json:"filtered"`
	CacheHit bool     `json:"-"`
}

// Service 推薦服務。目錄為共用唯讀快照，標準化參數與索引每次請求重新建立
type Service struct {
	catalog *catalog.Catalog
	cache   Cache
}

// NewService 創建推薦服務，cache 可為 nil
func NewService(c *catalog.Catalog, cache Cache) *Service {
	return &Service{
		catalog: c,
		cache:   cache,
	}
}

// Catalog 取得目錄
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// CacheStats 快取統計，未啟用快取或快取不提供統計時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if sp, ok := s.cache.(interface{ GetStats() map[string]interface{} }); ok {
		return sp.GetStats()
	}
	return nil
}

// Recommend 執行一次推薦：過濾、標準化、搜尋、格式化
func (s *Service) Recommend(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return nil, common.ErrCatalogUnavailable
	}

	key := s.cacheKey(q)
	if res, ok := s.getCached(ctx, key); ok {
		metrics.ObserveRecommendation(metrics.OutcomeCacheHit, time.Since(start), -1)
		return res, nil
	}

	outcome, err := Recommend(s.catalog, q)
	if err != nil {
		metrics.ObserveRecommendation(metrics.OutcomeError, time.Since(start), -1)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		metrics.ObserveRecommendation(metrics.OutcomeError, time.Since(start), outcome.Filtered)
		return nil, err
	}

	res := &Result{
		Found:    outcome.Matches != nil,
		Recipes:  Format(s.catalog, outcome.Matches),
		Filtered: outcome.Filtered,
	}
	if res.Recipes == nil {
		res.Recipes = []Recipe{}
	}

	if res.Found {
		metrics.ObserveRecommendation(metrics.OutcomeFound, time.Since(start), outcome.Filtered)
	} else {
		metrics.ObserveRecommendation(metrics.OutcomeNoMatch, time.Since(start), outcome.Filtered)
	}

	s.setCached(ctx, key, res)
	return res, nil
}

func (s *Service) getCached(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		common.LogCacheMiss("recommendation")
		return nil, false
	}

	var res Result
	if err := common.ParseJSONBytes(data, &res); err != nil {
		common.LogWarn("Failed to decode cached recommendation", zap.Error(err))
		return nil, false
	}
	if res.Recipes == nil {
		res.Recipes = []Recipe{}
	}
	res.CacheHit = true
	common.LogCacheHit("recommendation")
	return &res, true
}

func (s *Service) setCached(ctx context.Context, key string, res *Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		common.LogWarn("Failed to encode recommendation for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		common.LogWarn("Failed to store recommendation in cache", zap.Error(err))
	}
}

// cacheKey 目錄不可變，因此以目錄指紋加上正規化後的查詢條件作為鍵
func (s *Service) cacheKey(q Query) string {
	var sb strings.Builder
	sb.WriteString(s.catalog.Fingerprint())
	sb.WriteString("|")
	for _, v := range q.Nutrition {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteString(",")
	}
	fmt.Fprintf(&sb, "|%s|%s|%d", sortedTerms(q.Include), sortedTerms(q.Exclude), q.Count)

	hash := sha256.Sum256([]byte(sb.String()))
	return "recommend:" + hex.EncodeToString(hash[:])
}

// sortedTerms 以 JSON 陣列編碼，詞彙本身含有分隔符號時也不會與其他組合混淆
func sortedTerms(terms []string) string {
	t := normalizeTerms(terms)
	slices.Sort(t)
	t = slices.Compact(t)
	data, _ := json.Marshal(t)
	return string(data)
}
