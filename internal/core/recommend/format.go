package recommend

import (
	"regexp"

	"meal-recommender/internal/core/catalog"
)

var quotedPattern = regexp.MustCompile(`"([^"]*)"`)

// ExtractQuoted 依出現順序取出所有雙引號內的字串，找不到時回傳空列表
func ExtractQuoted(s string) []string {
	found := quotedPattern.FindAllStringSubmatch(s, -1)
	out := make([]string, len(found))
	for i, m := range found {
		out[i] = m[1]
	}
	return out
}

// NutritionValue 單一營養數值（圖表資料）
type NutritionValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Recipe 輸出用食譜
type Recipe struct {
	RecipeID            int64            `json:"recipe_id,omitempty"`
	Name                string           `json:"name"`
	Calories            float64          `json:"calories"`
	FatContent          float64          `json:"fat_content"`
	SaturatedFatContent float64          `json:"saturated_fat_content"`
	CholesterolContent  float64          `json:"cholesterol_content"`
	SodiumContent       float64          `json:"sodium_content"`
	CarbohydrateContent float64          `json:"carbohydrate_content"`
	FiberContent        float64          `json:"fiber_content"`
	SugarContent        float64          `json:"sugar_content"`
	ProteinContent      float64          `json:"protein_content"`
	CookTime            float64          `json:"cook_time"`
	PrepTime            float64          `json:"prep_time"`
	TotalTime           float64          `json:"total_time"`
	Ingredients         []string         `json:"recipe_ingredient_parts"`
	Instructions        []string         `json:"recipe_instructions"`
	Nutrition           []NutritionValue `json:"nutrition"`
	Distance            float64          `json:"distance"`
}

// Format 將推薦結果轉為輸出用食譜；matches 為 nil 時回傳 nil（無符合結果）
func Format(c *catalog.Catalog, matches []Match) []Recipe {
	if matches == nil {
		return nil
	}

	out := make([]Recipe, len(matches))
	for i, m := range matches {
		out[i] = FormatRecipe(c.At(m.Position))
		out[i].Distance = m.Distance
	}
	return out
}

// FormatRecipe 轉換單筆食譜，只解析食材與步驟兩個欄位，其他數值保持不變
func FormatRecipe(r catalog.Recipe) Recipe {
	n := r.Nutrition
	out := Recipe{
		RecipeID:            r.ID,
		Name:                r.Name,
		Calories:            n[catalog.Calories],
		FatContent:          n[catalog.FatContent],
		SaturatedFatContent: n[catalog.SaturatedFatContent],
		CholesterolContent:  n[catalog.CholesterolContent],
		SodiumContent:       n[catalog.SodiumContent],
		CarbohydrateContent: n[catalog.CarbohydrateContent],
		FiberContent:        n[catalog.FiberContent],
		SugarContent:        n[catalog.SugarContent],
		ProteinContent:      n[catalog.ProteinContent],
		CookTime:            r.CookTime,
		PrepTime:            r.PrepTime,
		TotalTime:           r.TotalTime,
		Ingredients:         ExtractQuoted(r.RawIngredients),
		Instructions:        ExtractQuoted(r.RawInstructions),
		Nutrition:           make([]NutritionValue, catalog.NutritionCount),
	}
	for j, name := range catalog.NutritionFields {
		out.Nutrition[j] = NutritionValue{Name: name, Value: n[j]}
	}
	return out
}
