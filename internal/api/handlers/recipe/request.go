package recipe

import (
	"encoding/json"
	"fmt"

	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/core/recommend"
	"meal-recommender/internal/pkg/common"
)

// TermList 食材詞彙列表，可接受 "milk;eggs" 字串或 ["milk","eggs"] 陣列
type TermList []string

// UnmarshalJSON 實現 json.Unmarshaler
func (t *TermList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TermList{}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*t = common.ParseTerms(text)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("terms must be a semicolon separated string or a string array")
	}
	terms := make(TermList, 0, len(list))
	for _, item := range list {
		terms = append(terms, common.ParseTerms(item)...)
	}
	*t = terms
	return nil
}

// NutritionInput 以欄位名稱指定的目標營養值
type NutritionInput struct {
	Calories            *float64 `json:"calories" binding:"required"`
	FatContent          *float64 `json:"fat_content" binding:"required"`
	SaturatedFatContent *float64 `json:"saturated_fat_content" binding:"required"`
	CholesterolContent  *float64 `json:"cholesterol_content" binding:"required"`
	SodiumContent       *float64 `json:"sodium_content" binding:"required"`
	CarbohydrateContent *float64 `json:"carbohydrate_content" binding:"required"`
	FiberContent        *float64 `json:"fiber_content" binding:"required"`
	SugarContent        *float64 `json:"sugar_content" binding:"required"`
	ProteinContent      *float64 `json:"protein_content" binding:"required"`
}

// Vector 轉為固定順序的營養向量
func (n *NutritionInput) Vector() catalog.Nutrition {
	var v catalog.Nutrition
	v[catalog.Calories] = *n.Calories
	v[catalog.FatContent] = *n.FatContent
	v[catalog.SaturatedFatContent] = *n.SaturatedFatContent
	v[catalog.CholesterolContent] = *n.CholesterolContent
	v[catalog.SodiumContent] = *n.SodiumContent
	v[catalog.CarbohydrateContent] = *n.CarbohydrateContent
	v[catalog.FiberContent] = *n.FiberContent
	v[catalog.SugarContent] = *n.SugarContent
	v[catalog.ProteinContent] = *n.ProteinContent
	return v
}

// RecommendRequest 推薦請求。nutrition 與 nutrition_values 擇一提供
type RecommendRequest struct {
	Nutrition       *NutritionInput `json:"nutrition"`
	NutritionValues []float64       `json:"nutrition_values" binding:"omitempty,len=9"`
	Count           int             `json:"count" binding:"omitempty,min=0"`
	Include         TermList        `json:"include,omitempty"`
	Exclude         TermList        `json:"exclude,omitempty"`
}

// Vector 取得營養向量
func (r *RecommendRequest) Vector() (catalog.Nutrition, error) {
	switch {
	case r.Nutrition != nil && r.NutritionValues != nil:
		return catalog.Nutrition{}, common.NewValidationError("only one of nutrition and nutrition_values may be set")
	case r.Nutrition != nil:
		return r.Nutrition.Vector(), nil
	case len(r.NutritionValues) == catalog.NutritionCount:
		var v catalog.Nutrition
		copy(v[:], r.NutritionValues)
		return v, nil
	default:
		return catalog.Nutrition{}, common.NewValidationError("nutrition or nutrition_values (9 numbers) is required")
	}
}

// RecommendResponse 推薦響應
type RecommendResponse struct {
	Found    bool               `json:"found"`
	Count    int                `json:"count"`
	Filtered int                `json:"filtered"`
	CacheHit bool               `json:"cache_hit"`
	Recipes  []recommend.Recipe `json:"recipes"`
	Code     string             `json:"code,omitempty"`
	Message  string             `json:"message,omitempty"`
}
