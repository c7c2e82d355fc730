package recommend

import (
	"strings"

	"meal-recommender/internal/core/catalog"
)

// Filter 依照食材條件過濾目錄，回傳符合條件的目錄位置（保持目錄順序）。
// include 中每個詞都必須出現，exclude 中任一詞出現即排除；比對不分大小寫、子字串匹配。
// 空白詞會被忽略，兩個列表皆為空時回傳全部位置。
func Filter(c *catalog.Catalog, include, exclude []string) []int {
	inc := normalizeTerms(include)
	exc := normalizeTerms(exclude)

	positions := make([]int, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if matchesTerms(c.IngredientText(i), inc, exc) {
			positions = append(positions, i)
		}
	}
	return positions
}

func matchesTerms(text string, include, exclude []string) bool {
	for _, t := range include {
		if !strings.Contains(text, t) {
			return false
		}
	}
	for _, t := range exclude {
		if strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// normalizeTerms 去除空白並轉小寫
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
