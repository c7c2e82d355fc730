package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// NutritionCount 營養欄位數量
const NutritionCount = 9

// 營養欄位索引（固定順序）
const (
	Calories = iota
	FatContent
	SaturatedFatContent
	CholesterolContent
	SodiumContent
	CarbohydrateContent
	FiberContent
	SugarContent
	ProteinContent
)

// NutritionFields 營養欄位名稱，順序即特徵向量的欄位順序
var NutritionFields = [NutritionCount]string{
	"Calories",
	"FatContent",
	"SaturatedFatContent",
	"CholesterolContent",
	"SodiumContent",
	"CarbohydrateContent",
	"FiberContent",
	"SugarContent",
	"ProteinContent",
}

// Nutrition 九個營養數值
type Nutrition [NutritionCount]float64

// IsFinite 檢查所有數值皆為有限數
func (n Nutrition) IsFinite() bool {
	for _, v := range n {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Recipe 食譜資料列
type Recipe struct {
	ID              int64
	Name            string
	CookTime        float64 // 分鐘
	PrepTime        float64 // 分鐘
	TotalTime       float64 // 分鐘
	RawIngredients  string  // RecipeIngredientParts 原始文字
	RawInstructions string  // RecipeInstructions 原始文字
	Nutrition       Nutrition
}

// Catalog 食譜目錄，載入後不可變更，可安全地在多個請求間共用
type Catalog struct {
	recipes     []Recipe
	searchText  []string
	fingerprint string
	loadedAt    time.Time
}

// New 建立目錄（複製輸入切片）
func New(recipes []Recipe) *Catalog {
	c := &Catalog{
		recipes:    make([]Recipe, len(recipes)),
		searchText: make([]string, len(recipes)),
		loadedAt:   time.Now(),
	}
	copy(c.recipes, recipes)

	h := sha256.New()
	for i, r := range c.recipes {
		c.searchText[i] = strings.ToLower(r.RawIngredients)

		writeField(h, strconv.FormatInt(r.ID, 10))
		writeField(h, r.Name)
		writeField(h, r.RawIngredients)
		writeField(h, r.RawInstructions)
		for _, v := range [...]float64{r.CookTime, r.PrepTime, r.TotalTime} {
			writeField(h, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range r.Nutrition {
			writeField(h, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	c.fingerprint = hex.EncodeToString(h.Sum(nil))[:16]

	return c
}

// writeField 以長度前綴寫入欄位，欄位內容不會與相鄰欄位混淆
func writeField(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s", len(s), s)
}

// Len 食譜數量
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.recipes)
}

// At 取得指定位置的食譜
func (c *Catalog) At(i int) Recipe {
	return c.recipes[i]
}

// IngredientText 取得已轉小寫的食材文字，供過濾使用
func (c *Catalog) IngredientText(i int) string {
	return c.searchText[i]
}

// Fingerprint 目錄內容指紋，用於快取鍵
func (c *Catalog) Fingerprint() string {
	if c == nil {
		return ""
	}
	return c.fingerprint
}

// LoadedAt 載入時間
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// ColumnStats 單一營養欄位統計
type ColumnStats struct {
	Field string  `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summary 目錄摘要
type Summary struct {
	Recipes     int           `json:"recipes"`
	Fingerprint string        `json:"fingerprint"`
	LoadedAt    time.Time     `json:"loaded_at"`
	Columns     []ColumnStats `json:"columns"`
}

// Summarize 計算各營養欄位的最小、最大與平均值
func (c *Catalog) Summarize() Summary {
	s := Summary{
		Recipes:     c.Len(),
		Fingerprint: c.Fingerprint(),
		Columns:     make([]ColumnStats, NutritionCount),
	}
	if c != nil {
		s.LoadedAt = c.loadedAt
	}

	for j := 0; j < NutritionCount; j++ {
		col := ColumnStats{Field: NutritionFields[j]}
		for i := 0; i < s.Recipes; i++ {
			v := c.recipes[i].Nutrition[j]
			if i == 0 || v < col.Min {
				col.Min = v
			}
			if i == 0 || v > col.Max {
				col.Max = v
			}
			col.Mean += v
		}
		if s.Recipes > 0 {
			col.Mean /= float64(s.Recipes)
		}
		s.Columns[j] = col
	}

	return s
}
