package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	recipeHandler "meal-recommender/internal/api/handlers/recipe"
	"meal-recommender/internal/core/cache"
	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/core/recommend"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Version: "test"},
		Server:    config.ServerConfig{Port: 8080, MaxBodyBytes: 1 << 20},
		Recommend: config.RecommendConfig{DefaultCount: 2, MinCount: 1, MaxCount: 5, Timeout: 5 * time.Second},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func testCatalog() *catalog.Catalog {
	ingredients := []string{
		`c("egg", "milk", "flour")`,
		`c("egg", "bacon")`,
		`c("chicken", "rice")`,
		`c("egg", "spinach", "walnuts")`,
		`c("beef", "onion")`,
		`c("egg", "tomato")`,
	}
	recipes := make([]catalog.Recipe, len(ingredients))
	for i, ing := range ingredients {
		f := float64(i + 1)
		recipes[i] = catalog.Recipe{
			ID:              int64(100 + i),
			Name:            fmt.Sprintf("Recipe %d", i),
			RawIngredients:  ing,
			RawInstructions: `c("Mix.", "Cook.")`,
			Nutrition:       catalog.Nutrition{100 * f, 5 * f, f, 10 * f, 50 * f, 20 * f, 2, f * f, 3 * f},
		}
	}
	return catalog.New(recipes)
}

func setup(t *testing.T, cat *catalog.Catalog) *gin.Engine {
	t.Helper()
	router, err := SetupRouter(testConfig(), recommend.NewService(cat, nil))
	require.NoError(t, err)
	return router
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeRecommend(t *testing.T, w *httptest.ResponseRecorder) recipeHandler.RecommendResponse {
	t.Helper()
	var resp recipeHandler.RecommendResponse
	require.NoError(t, common.DecodeJSON(w.Body, &resp))
	return resp
}

func TestSetupRouterRequiresDependencies(t *testing.T) {
	_, err := SetupRouter(nil, recommend.NewService(testCatalog(), nil))
	assert.Error(t, err)
	_, err = SetupRouter(testConfig(), nil)
	assert.Error(t, err)
}

func TestRecommendWithValues(t *testing.T) {
	r := setup(t, testCatalog())

	w := post(r, `{"nutrition_values":[300,15,3,30,150,60,2,9,9],"count":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	resp := decodeRecommend(t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 6, resp.Filtered)
	require.Len(t, resp.Recipes, 3)
	assert.Equal(t, "Recipe 2", resp.Recipes[0].Name)
	assert.Equal(t, []string{"chicken", "rice"}, resp.Recipes[0].Ingredients)
	assert.Empty(t, resp.Message)
}

func TestRecommendWithNamedNutrition(t *testing.T) {
	r := setup(t, testCatalog())

	body := `{
		"nutrition": {
			"calories": 100, "fat_content": 5, "saturated_fat_content": 1,
			"cholesterol_content": 10, "sodium_content": 50, "carbohydrate_content": 20,
			"fiber_content": 2, "sugar_content": 1, "protein_content": 3
		},
		"include": "egg"
	}`
	w := post(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeRecommend(t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, 4, resp.Filtered)
	require.Len(t, resp.Recipes, 2, "default count")
	assert.Equal(t, "Recipe 0", resp.Recipes[0].Name)
}

func TestRecommendTermForms(t *testing.T) {
	r := setup(t, testCatalog())
	values := `"nutrition_values":[300,15,3,30,150,60,2,9,9]`

	asString := decodeRecommend(t, post(r, `{`+values+`,"include":"egg","exclude":"walnuts; bacon"}`))
	asArray := decodeRecommend(t, post(r, `{`+values+`,"include":["egg"],"exclude":["walnuts","bacon"]}`))

	assert.Equal(t, 2, asString.Filtered)
	assert.Equal(t, asString.Filtered, asArray.Filtered)
	assert.Equal(t, asString.Recipes, asArray.Recipes)
}

func TestRecommendNoMatches(t *testing.T) {
	r := setup(t, testCatalog())

	w := post(r, `{"nutrition_values":[300,15,3,30,150,60,2,9,9],"include":"tofu"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeRecommend(t, w)
	assert.False(t, resp.Found)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Recipes)
	assert.Equal(t, common.ErrCodeNoMatches, resp.Code)
	assert.Equal(t, recipeHandler.NoMatchesMessage, resp.Message)

	// 篩選後數量不足 count 時不回傳部分結果
	resp = decodeRecommend(t, post(r, `{"nutrition_values":[300,15,3,30,150,60,2,9,9],"include":"chicken","count":2}`))
	assert.False(t, resp.Found)
	assert.Equal(t, 1, resp.Filtered)
}

func TestRecommendInvalidRequests(t *testing.T) {
	r := setup(t, testCatalog())

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"nutrition_values":`, common.ErrCodeInvalidRequest},
		{"missing vector", `{"count":2}`, common.ErrCodeInvalidQuery},
		{"short vector", `{"nutrition_values":[1,2,3]}`, common.ErrCodeInvalidRequest},
		{"both forms", `{"nutrition_values":[1,2,3,4,5,6,7,8,9],"nutrition":{"calories":1,"fat_content":1,"saturated_fat_content":1,"cholesterol_content":1,"sodium_content":1,"carbohydrate_content":1,"fiber_content":1,"sugar_content":1,"protein_content":1}}`, common.ErrCodeInvalidQuery},
		{"partial nutrition", `{"nutrition":{"calories":1}}`, common.ErrCodeInvalidRequest},
		{"count too large", `{"nutrition_values":[1,2,3,4,5,6,7,8,9],"count":6}`, common.ErrCodeInvalidQuery},
		{"negative count", `{"nutrition_values":[1,2,3,4,5,6,7,8,9],"count":-1}`, common.ErrCodeInvalidRequest},
		{"bad terms", `{"nutrition_values":[1,2,3,4,5,6,7,8,9],"include":42}`, common.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp common.ErrorResponse
			require.NoError(t, common.DecodeJSON(w.Body, &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestNutritionFields(t *testing.T) {
	r := setup(t, testCatalog())

	w := get(r, "/api/v1/nutrition/fields")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fields       []catalog.FieldSpec `json:"fields"`
		DefaultCount int                 `json:"default_count"`
		MaxCount     int                 `json:"max_count"`
	}
	require.NoError(t, common.DecodeJSON(w.Body, &resp))
	require.Len(t, resp.Fields, catalog.NutritionCount)
	assert.Equal(t, "Calories", resp.Fields[0].Name)
	assert.Equal(t, 2, resp.DefaultCount)
	assert.Equal(t, 5, resp.MaxCount)
}

func TestCatalogSummary(t *testing.T) {
	r := setup(t, testCatalog())

	w := get(r, "/api/v1/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	var summary catalog.Summary
	require.NoError(t, common.DecodeJSON(w.Body, &summary))
	assert.Equal(t, 6, summary.Recipes)
	assert.Len(t, summary.Columns, catalog.NutritionCount)
}

func TestHealthEndpoints(t *testing.T) {
	r := setup(t, testCatalog())

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/live").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ready").Code)

	empty := setup(t, catalog.New(nil))
	assert.Equal(t, http.StatusServiceUnavailable, get(empty, "/ready").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := setup(t, testCatalog())
	post(r, `{"nutrition_values":[300,15,3,30,150,60,2,9,9]}`)

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "meal_recommender_recommendations_total")
	assert.Contains(t, w.Body.String(), "meal_recommender_http_requests_total")
}

func TestHealthReportsCache(t *testing.T) {
	mem := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })
	router, err := SetupRouter(testConfig(), recommend.NewService(testCatalog(), cache.NewLayered(mem)))
	require.NoError(t, err)

	post(router, `{"nutrition_values":[300,15,3,30,150,60,2,9,9]}`)

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cache map[string]interface{} `json:"cache"`
	}
	require.NoError(t, common.DecodeJSON(w.Body, &resp))
	require.NotNil(t, resp.Cache)
	assert.Contains(t, resp.Cache, "layers")
	assert.Contains(t, resp.Cache, "stores")

	plain := get(setup(t, testCatalog()), "/health")
	assert.NotContains(t, plain.Body.String(), `"cache"`)
}
