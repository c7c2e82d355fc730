package recommend

import (
	"math"

	"meal-recommender/internal/core/catalog"
)

// Scaler 標準化參數（每個營養欄位的平均值與標準差）
type Scaler struct {
	Mean [catalog.NutritionCount]float64
	Std  [catalog.NutritionCount]float64
	// constant 標記變異數為 0 的欄位，標準化後固定輸出 0
	constant [catalog.NutritionCount]bool
}

// FitScaler 以給定資料列計算平均值與母體標準差，並回傳標準化後的矩陣
func FitScaler(rows []catalog.Nutrition) (*Scaler, [][]float64) {
	s := &Scaler{}
	n := float64(len(rows))
	if len(rows) == 0 {
		for j := range s.constant {
			s.constant[j] = true
		}
		return s, [][]float64{}
	}

	for j := 0; j < catalog.NutritionCount; j++ {
		lo, hi := rows[0][j], rows[0][j]
		var sum float64
		for _, r := range rows {
			v := r[j]
			sum += v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		mean := sum / n

		var ss float64
		for _, r := range rows {
			d := r[j] - mean
			ss += d * d
		}
		std := math.Sqrt(ss / n)

		s.Mean[j] = mean
		s.Std[j] = std
		// 完全相同的數值以 min == max 判斷，避免浮點誤差造成極小的標準差
		s.constant[j] = lo == hi || std == 0
	}

	scaled := make([][]float64, len(rows))
	for i, r := range rows {
		scaled[i] = s.Transform(r)
	}
	return s, scaled
}

// Transform 以相同參數標準化一個營養向量
func (s *Scaler) Transform(v catalog.Nutrition) []float64 {
	out := make([]float64, catalog.NutritionCount)
	for j := range out {
		if s.constant[j] {
			continue
		}
		out[j] = (v[j] - s.Mean[j]) / s.Std[j]
	}
	return out
}

// IsConstant 欄位是否為零變異數
func (s *Scaler) IsConstant(j int) bool {
	return s.constant[j]
}
