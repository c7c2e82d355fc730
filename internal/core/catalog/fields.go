package catalog

// FieldSpec 營養欄位的輸入範圍與預設值（供前端滑桿使用，核心不強制）
type FieldSpec struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// FieldSpecs 九個營養欄位的預設範圍
var FieldSpecs = [NutritionCount]FieldSpec{
	{Name: "Calories", Min: 0, Max: 2000, Default: 500},
	{Name: "FatContent", Min: 0, Max: 100, Default: 50},
	{Name: "SaturatedFatContent", Min: 0, Max: 13, Default: 0},
	{Name: "CholesterolContent", Min: 0, Max: 300, Default: 0},
	{Name: "SodiumContent", Min: 0, Max: 2300, Default: 400},
	{Name: "CarbohydrateContent", Min: 0, Max: 325, Default: 100},
	{Name: "FiberContent", Min: 0, Max: 50, Default: 10},
	{Name: "SugarContent", Min: 0, Max: 40, Default: 10},
	{Name: "ProteinContent", Min: 0, Max: 40, Default: 10},
}

// DefaultNutrition 以預設值組成的營養向量
func DefaultNutrition() Nutrition {
	var n Nutrition
	for i, f := range FieldSpecs {
		n[i] = f.Default
	}
	return n
}
