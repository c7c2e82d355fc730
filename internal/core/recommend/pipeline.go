package recommend

import (
	"errors"
	"fmt"

	"meal-recommender/internal/core/catalog"
)

var (
	// ErrInvalidCount 推薦數量必須大於 0
	ErrInvalidCount = errors.New("recommendation count must be positive")
	// ErrInvalidVector 營養向量含有 NaN 或無限值
	ErrInvalidVector = errors.New("nutrition vector must be finite")
)

// Query 推薦條件
type Query struct {
	Nutrition catalog.Nutrition
	Include   []string
	Exclude   []string
	Count     int
}

// Match 推薦結果中的一筆
type Match struct {
	Position int     // 目錄位置
	Distance float64 // 與標準化查詢向量的餘弦距離
}

// Outcome 單次推薦的計算資訊
type Outcome struct {
	Matches  []Match
	Filtered int // 過濾後的資料列數
	Scaler   *Scaler
}

// Recommend 過濾目錄、以過濾後子集擬合標準化參數、用同一組參數轉換查詢向量，
// 再以餘弦距離找出最近的 Count 筆。過濾後不足 Count 筆時 Matches 為 nil（不回傳部分結果）。
//
// 前置條件：目錄中每筆食譜的營養欄位皆為有效數值。
func Recommend(c *catalog.Catalog, q Query) (*Outcome, error) {
	if q.Count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, q.Count)
	}
	if !q.Nutrition.IsFinite() {
		return nil, ErrInvalidVector
	}

	positions := Filter(c, q.Include, q.Exclude)
	outcome := &Outcome{Filtered: len(positions)}
	if len(positions) < q.Count {
		return outcome, nil
	}

	rows := make([]catalog.Nutrition, len(positions))
	for i, p := range positions {
		rows[i] = c.At(p).Nutrition
	}

	scaler, scaled := FitScaler(rows)
	outcome.Scaler = scaler

	index := BuildIndex(scaled)
	neighbors := index.Search(scaler.Transform(q.Nutrition), q.Count)
	if neighbors == nil {
		return outcome, nil
	}

	outcome.Matches = make([]Match, len(neighbors))
	for i, n := range neighbors {
		outcome.Matches[i] = Match{Position: positions[n.Row], Distance: n.Distance}
	}
	return outcome, nil
}
