package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"polydash/internal/app/analytics"
	"polydash/internal/app/service"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/infrastructure/httpclient"
	"polydash/internal/infrastructure/restapi"
	"polydash/internal/pkg/logger"
)

const defaultConfigPath = "config/config.yml"

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	// Загрузка конфигурации
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	zapLogger := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer logger.Sync()

	logger.Info("polydash is starting", "config", cfgPath, "port", cfg.Server.Port)

	// Upstream clients. The Polymarket hosts share one limiter, the LLM is not limited.
	upstreamTimeout := time.Duration(cfg.Upstream.RequestTimeoutMillis) * time.Millisecond
	limiter := httpclient.NewLimiter(cfg.Upstream.RateLimit, cfg.Upstream.BurstLimit)
	newPolymarketFetcher := func(api, baseURL string) *httpclient.Fetcher {
		return httpclient.NewFetcher(httpclient.FetcherOptions{
			API:             api,
			BaseURL:         baseURL,
			UserAgent:       cfg.Upstream.UserAgent,
			Timeout:         upstreamTimeout,
			MaxConnsPerHost: cfg.Upstream.MaxConnsPerHost,
			Limiter:         limiter,
		}, zapLogger)
	}

	gammaClient := httpclient.NewGammaClient(newPolymarketFetcher("gamma", cfg.Upstream.GammaBaseURL), zapLogger)
	dataClient := httpclient.NewDataClient(newPolymarketFetcher("data", cfg.Upstream.DataBaseURL), zapLogger)
	clobClient := httpclient.NewClobClient(newPolymarketFetcher("clob", cfg.Upstream.ClobBaseURL), zapLogger)

	llmFetcher := httpclient.NewFetcher(httpclient.FetcherOptions{
		API:       "llm",
		BaseURL:   cfg.Analysis.BaseURL,
		UserAgent: cfg.Upstream.UserAgent,
		Timeout:   time.Duration(cfg.Analysis.TimeoutMillis) * time.Millisecond,
	}, zapLogger)
	llmClient := httpclient.NewLLMClient(llmFetcher, httpclient.LLMOptions{
		APIKey:      cfg.Analysis.APIKey,
		Model:       cfg.Analysis.Model,
		Temperature: cfg.Analysis.Temperature,
		MaxTokens:   cfg.Analysis.MaxTokens,
	}, zapLogger)
	logger.Info("Upstream clients initialized", "rateLimit", cfg.Upstream.RateLimit, "burst", cfg.Upstream.BurstLimit)

	catalog := analytics.NewCatalog(cfg.Catalog.TagGroups, cfg.Catalog.ExcludedTags, cfg.Catalog.TitleKeywords)

	// Сервисы
	marketService := service.NewMarketService(gammaClient, catalog, cfg, logger.Named("MarketService"))
	holderService := service.NewHolderService(dataClient, cfg, logger.Named("HolderService"))
	traderService := service.NewTraderService(dataClient, cfg, logger.Named("TraderService"))
	insightService := service.NewInsightService(gammaClient, clobClient, cfg, logger.Named("InsightService"))
	analysisService := service.NewAnalysisService(llmClient, cfg, logger.Named("AnalysisService"))
	proxyService := service.NewProxyService(gammaClient, cfg, logger.Named("ProxyService"))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := restapi.SetupRouter(cfg, zapLogger, restapi.Handlers{
		Markets:  restapi.NewMarketHandler(marketService, cfg),
		Traders:  restapi.NewTraderHandler(holderService, traderService, cfg),
		Insights: restapi.NewInsightHandler(insightService, analysisService, proxyService, cfg),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, stopping HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced to shutdown", "error", err)
	}

	logger.Info("polydash stopped")
}
