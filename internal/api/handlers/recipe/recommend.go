package recipe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/core/recommend"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoMatchesMessage 沒有符合條件的食譜時的提示
const NoMatchesMessage = "Couldn't find any recipes with the specified ingredients"

// Handler 推薦處理程序
type Handler struct {
	service *recommend.Service
	config  config.RecommendConfig
	debug   bool
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommend.Service, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		config:  cfg.Recommend,
		debug:   cfg.App.Debug,
	}
}

// HandleRecommend 依目標營養值與食材條件推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		h.writeError(c, common.ErrInvalidRequest.WithError(err))
		return
	}

	vector, err := req.Vector()
	if err != nil {
		h.writeError(c, common.ErrInvalidQuery.WithError(err))
		return
	}

	count := req.Count
	if count == 0 {
		count = h.config.DefaultCount
	}
	if count < h.config.MinCount || count > h.config.MaxCount {
		h.writeError(c, common.ErrInvalidQuery.WithError(
			common.NewValidationError("count out of range"),
		))
		return
	}

	query := recommend.Query{
		Nutrition: vector,
		Include:   req.Include,
		Exclude:   req.Exclude,
		Count:     count,
	}

	result, err := h.service.Recommend(c.Request.Context(), query)
	if err != nil {
		common.LogError("推薦失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		h.writeError(c, classifyError(err))
		return
	}

	common.LogRecommendation(requestID, result.Filtered, len(result.Recipes), time.Since(start), result.Found)

	response := RecommendResponse{
		Found:    result.Found,
		Count:    len(result.Recipes),
		Filtered: result.Filtered,
		CacheHit: result.CacheHit,
		Recipes:  result.Recipes,
	}
	if !result.Found {
		response.Code = common.ErrCodeNoMatches
		response.Message = NoMatchesMessage
	}
	c.JSON(http.StatusOK, response)
}

// HandleNutritionFields 回傳九個營養欄位與預設範圍
func (h *Handler) HandleNutritionFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields":        catalog.FieldSpecs,
		"default_count": h.config.DefaultCount,
		"min_count":     h.config.MinCount,
		"max_count":     h.config.MaxCount,
	})
}

// HandleCatalogSummary 回傳目錄摘要
func (h *Handler) HandleCatalogSummary(c *gin.Context) {
	cat := h.service.Catalog()
	if cat == nil {
		h.writeError(c, common.ErrCatalogUnavailable)
		return
	}
	c.JSON(http.StatusOK, cat.Summarize())
}

func (h *Handler) writeError(c *gin.Context, e *common.CustomError) {
	c.AbortWithStatusJSON(e.Status, e.Response(h.debug))
}

// classifyError 將服務錯誤對應為 API 錯誤
func classifyError(err error) *common.CustomError {
	var ce *common.CustomError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, recommend.ErrInvalidCount), errors.Is(err, recommend.ErrInvalidVector):
		return common.ErrInvalidQuery.WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.WithError(err)
	case errors.Is(err, context.Canceled):
		return common.ErrRequestTimeout.WithError(err)
	default:
		return common.ErrInternalError.WithError(err)
	}
}

// requestIDFrom 取得請求 ID，沒有時生成一個
func requestIDFrom(c *gin.Context) string {
	requestID := c.Writer.Header().Get("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
