package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"meal-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// 欄位名稱
const (
	columnID           = "RecipeId"
	columnName         = "Name"
	columnCookTime     = "CookTime"
	columnPrepTime     = "PrepTime"
	columnTotalTime    = "TotalTime"
	columnIngredients  = "RecipeIngredientParts"
	columnInstructions = "RecipeInstructions"
)

// ErrMissingColumn 缺少必要欄位
var ErrMissingColumn = errors.New("missing required column")

// Report 載入結果統計
type Report struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
}

// Load 依來源載入目錄：http(s) URL 透過 HTTP 取得，其餘視為本機檔案路徑
func Load(ctx context.Context, source string, timeout time.Duration) (*Catalog, Report, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return FetchRemote(ctx, source, timeout)
	}
	return LoadFile(source)
}

// LoadFile 從本機 CSV 檔案載入目錄
func LoadFile(path string) (*Catalog, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: path}, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, report, err := Parse(f)
	report.Source = path
	return c, report, err
}

// FetchRemote 從遠端 URL 下載 CSV 並載入目錄
func FetchRemote(ctx context.Context, url string, timeout time.Duration) (*Catalog, Report, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/csv")

	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, Report{Source: url}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, Report{Source: url}, fmt.Errorf("failed to fetch catalog: unexpected status %d", resp.StatusCode())
	}

	c, report, err := Parse(body)
	report.Source = url
	return c, report, err
}

// Parse 解析帶標題列的 CSV。營養欄位缺漏或非數值的資料列會被略過
func Parse(r io.Reader) (*Catalog, Report, error) {
	var report Report

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, report, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	required := append([]string{columnName, columnIngredients, columnInstructions}, NutritionFields[:]...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, report, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var recipes []Recipe
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("failed to read catalog row %d: %w", report.Rows+1, err)
		}
		report.Rows++

		recipe, ok := parseRecord(record, cols)
		if !ok {
			report.Skipped++
			continue
		}
		recipes = append(recipes, recipe)
	}
	report.Loaded = len(recipes)

	if report.Skipped > 0 {
		common.LogWarn("Skipped catalog rows with invalid nutrition values",
			zap.Int("skipped", report.Skipped),
			zap.Int("rows", report.Rows),
		)
	}

	return New(recipes), report, nil
}

func parseRecord(record []string, cols map[string]int) (Recipe, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	recipe := Recipe{
		Name:            field(columnName),
		RawIngredients:  field(columnIngredients),
		RawInstructions: field(columnInstructions),
		CookTime:        parseMinutes(field(columnCookTime)),
		PrepTime:        parseMinutes(field(columnPrepTime)),
		TotalTime:       parseMinutes(field(columnTotalTime)),
	}

	if id := field(columnID); id != "" {
		if v, err := strconv.ParseFloat(id, 64); err == nil {
			recipe.ID = int64(v)
		}
	}

	for i, name := range NutritionFields {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return Recipe{}, false
		}
		recipe.Nutrition[i] = v
	}
	if !recipe.Nutrition.IsFinite() {
		return Recipe{}, false
	}

	return recipe, true
}

// parseMinutes 解析分鐘數，支援純數字與 ISO-8601 的 PT#H#M#S 格式，無法解析時為 0
func parseMinutes(s string) float64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "PT") {
		return 0
	}

	var total float64
	num := ""
	for _, r := range upper[2:] {
		switch {
		case (r >= '0' && r <= '9') || r == '.':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0
			}
			switch r {
			case 'H':
				total += v * 60
			case 'M':
				total += v
			case 'S':
				total += v / 60
			}
			num = ""
		default:
			return 0
		}
	}
	if num != "" {
		return 0
	}
	return total
}
