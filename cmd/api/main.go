package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-recommender/internal/api"
	"meal-recommender/internal/core/cache"
	"meal-recommender/internal/core/catalog"
	"meal-recommender/internal/core/recommend"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 載入食譜目錄（啟動時一次）
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	cat, report, err := catalog.Load(loadCtx, cfg.Catalog.Source, cfg.Catalog.FetchTimeout)
	cancelLoad()
	if err != nil {
		common.LogFatal("Failed to load catalog",
			zap.String("source", cfg.Catalog.Source),
			zap.Error(err),
		)
	}
	metrics.SetCatalogSize(cat.Len())
	common.LogInfo("載入食譜目錄",
		zap.String("source", report.Source),
		zap.Int("rows", report.Rows),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
		zap.String("fingerprint", cat.Fingerprint()),
	)

	// 初始化快取
	resultCache := setupCache(cfg)
	if resultCache != nil {
		defer resultCache.Close()
	}

	var svc *recommend.Service
	if resultCache != nil {
		svc = recommend.NewService(cat, resultCache)
	} else {
		svc = recommend.NewService(cat, nil)
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, svc)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// setupCache 組合記憶體與 Redis 快取；Redis 無法連線時僅記錄警告並略過
func setupCache(cfg *config.Config) *cache.Layered {
	var stores []cache.Store

	if cfg.Cache.Enabled {
		stores = append(stores, cache.NewManager(cfg.Cache))
	}

	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisStore, err := cache.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			common.LogWarn("Redis cache unavailable, continuing without it",
				zap.String("addr", cfg.Redis.Addr),
				zap.Error(err),
			)
		} else {
			stores = append(stores, redisStore)
		}
	}

	if len(stores) == 0 {
		common.LogInfo("Cache disabled")
		return nil
	}
	return cache.NewLayered(stores...)
}
