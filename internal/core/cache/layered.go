package cache

import (
	"context"
	"errors"
	"fmt"

	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Layered 多層快取：依序查詢，較後層命中時回填前面各層
type Layered struct {
	stores []Store
}

// NewLayered 創建多層快取
func NewLayered(stores ...Store) *Layered {
	return &Layered{stores: stores}
}

// Len 層數
func (l *Layered) Len() int {
	return len(l.stores)
}

// GetStats 各層統計，不提供統計的層只回報類型
func (l *Layered) GetStats() map[string]interface{} {
	layers := make([]map[string]interface{}, len(l.stores))
	for i, s := range l.stores {
		if sp, ok := s.(interface{ GetStats() map[string]interface{} }); ok {
			layers[i] = sp.GetStats()
		} else {
			layers[i] = map[string]interface{}{}
		}
		layers[i]["type"] = fmt.Sprintf("%T", s)
	}
	return map[string]interface{}{
		"layers": l.Len(),
		"stores": layers,
	}
}

// Get 獲取緩存
func (l *Layered) Get(ctx context.Context, key string) ([]byte, error) {
	for i, s := range l.stores {
		data, err := s.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrMiss) {
				common.LogWarn("Cache layer lookup failed", zap.Int("layer", i), zap.Error(err))
			}
			continue
		}
		for j := 0; j < i; j++ {
			if err := l.stores[j].Set(ctx, key, data); err != nil {
				common.LogDebug("Cache layer backfill failed", zap.Int("layer", j), zap.Error(err))
			}
		}
		return data, nil
	}
	return nil, ErrMiss
}

// Set 寫入所有層，回傳第一個錯誤
func (l *Layered) Set(ctx context.Context, key string, value []byte) error {
	var firstErr error
	for _, s := range l.stores {
		if err := s.Set(ctx, key, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close 關閉所有層
func (l *Layered) Close() error {
	var errs []error
	for _, s := range l.stores {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
