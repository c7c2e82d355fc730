package recommend

import (
	"cmp"
	"math"
	"slices"
)

// Neighbor 最近鄰結果
type Neighbor struct {
	Row      int     // 在索引中的列號
	Distance float64 // 餘弦距離
}

// Index 暴力搜尋的餘弦距離索引
type Index struct {
	rows  [][]float64
	norms []float64
}

// BuildIndex 建立索引，預先計算每列的範數
func BuildIndex(rows [][]float64) *Index {
	idx := &Index{
		rows:  rows,
		norms: make([]float64, len(rows)),
	}
	for i, r := range rows {
		idx.norms[i] = norm(r)
	}
	return idx
}

// Len 索引列數
func (idx *Index) Len() int {
	return len(idx.rows)
}

// Search 回傳距離最小的 k 列，依距離遞增排序，距離相同時保持原列順序。
// k 不大於 0 或超過索引列數時回傳 nil
func (idx *Index) Search(query []float64, k int) []Neighbor {
	if k <= 0 || k > idx.Len() {
		return nil
	}

	qn := norm(query)
	all := make([]Neighbor, idx.Len())
	for i, r := range idx.rows {
		all[i] = Neighbor{Row: i, Distance: cosineDistance(query, qn, r, idx.norms[i])}
	}

	slices.SortStableFunc(all, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return all[:k]
}

// CosineDistance 計算兩向量的餘弦距離（1 - 餘弦相似度）
func CosineDistance(a, b []float64) float64 {
	return cosineDistance(a, norm(a), b, norm(b))
}

// cosineDistance 任一向量為零向量時相似度視為 0，距離為 1
func cosineDistance(a []float64, an float64, b []float64, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 1
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	d := 1 - dot/(an*bn)
	// 浮點誤差可能使結果略小於 0 或大於 2
	return math.Min(math.Max(d, 0), 2)
}

func norm(v []float64) float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	return math.Sqrt(ss)
}
