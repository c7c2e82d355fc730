package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "RecipeId,Name,CookTime,PrepTime,TotalTime,RecipeIngredientParts,Calories,FatContent,SaturatedFatContent,CholesterolContent,SodiumContent,CarbohydrateContent,FiberContent,SugarContent,ProteinContent,RecipeInstructions\n"

const sampleCSV = header +
	`38,Low-Fat Berry Blue Frozen Dessert,PT24H,PT45M,PT24H45M,"c(""blueberries"", ""granulated sugar"", ""lemon juice"")",170.9,2.5,1.3,8,29.8,37.1,3.6,30.2,3.2,"c(""Toss 2 cups berries with sugar."", ""Let stand for 45 minutes."")"` + "\n" +
	`39,Biryani,PT25M,PT4H,PT4H25M,"c(""saffron"", ""milk"", ""chicken"")",1110.7,58.8,16.6,372.8,368.4,84.4,9,20.4,63.4,"c(""Soak saffron in warm milk."")"` + "\n" +
	`40,Broken Row,PT5M,,PT5M,"c(""water"")",NA,1,1,1,1,1,1,1,1,"c(""Boil."")"` + "\n"

func TestParse(t *testing.T) {
	c, report, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 1, report.Skipped)
	require.Equal(t, 2, c.Len())

	r := c.At(0)
	assert.Equal(t, int64(38), r.ID)
	assert.Equal(t, "Low-Fat Berry Blue Frozen Dessert", r.Name)
	assert.InDelta(t, 1440, r.CookTime, 1e-9)
	assert.InDelta(t, 45, r.PrepTime, 1e-9)
	assert.InDelta(t, 1485, r.TotalTime, 1e-9)
	assert.Equal(t, `c("blueberries", "granulated sugar", "lemon juice")`, r.RawIngredients)
	assert.InDelta(t, 170.9, r.Nutrition[Calories], 1e-9)
	assert.InDelta(t, 3.2, r.Nutrition[ProteinContent], 1e-9)

	assert.Equal(t, `c("saffron", "milk", "chicken")`, c.IngredientText(1))
	assert.Len(t, c.Fingerprint(), 16)
}

func TestParseHeaderWithBOM(t *testing.T) {
	c, _, err := Parse(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestParseMissingColumn(t *testing.T) {
	csv := "Name,RecipeIngredientParts,RecipeInstructions,Calories\nA,x,y,1\n"

	_, _, err := Parse(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseEmpty(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""))
	assert.Error(t, err)

	c, report, err := Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, report.Rows)
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"15", 15},
		{"PT30M", 30},
		{"PT1H", 60},
		{"PT1H30M", 90},
		{"PT90S", 1.5},
		{"pt2h", 120},
		{"PT", 0},
		{"PT5X", 0},
		{"PT5", 0},
		{"soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseMinutes(tt.in), 1e-9)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	c, report, err := Load(context.Background(), path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, path, report.Source)
	assert.Equal(t, 2, c.Len())

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dataset.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c, report, err := Load(context.Background(), srv.URL+"/dataset.csv", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/dataset.csv", report.Source)
	assert.Equal(t, 2, c.Len())

	_, _, err = FetchRemote(context.Background(), srv.URL+"/missing.csv", 5*time.Second)
	assert.Error(t, err)
}

func TestCatalogSummarize(t *testing.T) {
	c, _, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	s := c.Summarize()
	assert.Equal(t, 2, s.Recipes)
	require.Len(t, s.Columns, NutritionCount)

	cal := s.Columns[Calories]
	assert.Equal(t, "Calories", cal.Field)
	assert.InDelta(t, 170.9, cal.Min, 1e-9)
	assert.InDelta(t, 1110.7, cal.Max, 1e-9)
	assert.InDelta(t, (170.9+1110.7)/2, cal.Mean, 1e-9)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Fingerprint())
	s := c.Summarize()
	assert.Equal(t, 0, s.Recipes)
	assert.Len(t, s.Columns, NutritionCount)
}

func TestFingerprintStable(t *testing.T) {
	recipes := []Recipe{{Name: "a", RawIngredients: "x", Nutrition: Nutrition{1}}}

	assert.Equal(t, New(recipes).Fingerprint(), New(recipes).Fingerprint())
	other := []Recipe{{Name: "a", RawIngredients: "x", Nutrition: Nutrition{2}}}
	assert.NotEqual(t, New(recipes).Fingerprint(), New(other).Fingerprint())
}

func TestDefaultNutrition(t *testing.T) {
	n := DefaultNutrition()
	assert.Equal(t, 500.0, n[Calories])
	for i, f := range FieldSpecs {
		assert.Equal(t, NutritionFields[i], f.Name)
		assert.LessOrEqual(t, f.Min, f.Default)
		assert.GreaterOrEqual(t, f.Max, f.Default)
	}
}

func TestFingerprintCoversFormattedFields(t *testing.T) {
	base := Recipe{ID: 1, Name: "a", RawIngredients: `c("x")`, RawInstructions: `c("Mix.")`, CookTime: 5, PrepTime: 5, TotalTime: 10, Nutrition: Nutrition{1}}
	fp := New([]Recipe{base}).Fingerprint()

	variants := map[string]func(r *Recipe){
		"id":           func(r *Recipe) { r.ID = 2 },
		"instructions": func(r *Recipe) { r.RawInstructions = `c("Stir.")` },
		"cook time":    func(r *Recipe) { r.CookTime = 6 },
		"prep time":    func(r *Recipe) { r.PrepTime = 6 },
		"total time":   func(r *Recipe) { r.TotalTime = 11 },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			r := base
			mutate(&r)
			assert.NotEqual(t, fp, New([]Recipe{r}).Fingerprint())
		})
	}

	// 欄位邊界移動不應產生相同指紋
	shifted := []Recipe{{Name: "ab", RawIngredients: "c"}}
	other := []Recipe{{Name: "a", RawIngredients: "bc"}}
	assert.NotEqual(t, New(shifted).Fingerprint(), New(other).Fingerprint())
}
