package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"polydash/internal/infrastructure/configloader"
)

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Markets  *MarketHandler
	Traders  *TraderHandler
	Insights *InsightHandler
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(cfg *configloader.Config, zapLogger *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.OptionsResponseStatusCode = http.StatusOK
	router.Use(cors.New(corsConfig))
	router.Use(Options())

	router.Use(AccessLog(zapLogger))
	router.Use(Metrics())
	router.Use(gin.Recovery())

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, bareError{Error: "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Success: false, Error: "Not found"})
	})

	api := router.Group("/api")
	{
		api.GET("/markets", h.Markets.ListMarkets)
		api.GET("/search", h.Markets.Search)
		api.GET("/event", h.Markets.Event)
		api.GET("/debug", h.Markets.Debug)

		api.GET("/holders", h.Traders.Holders)
		api.GET("/profile", h.Traders.Profile)
		api.GET("/positions", h.Traders.Positions)
		api.GET("/leaderboard", h.Traders.Leaderboard)

		api.GET("/prices", h.Insights.Prices)
		api.GET("/comments", h.Insights.Comments)
		api.GET("/tags", h.Insights.Tags)
		api.GET("/polymarket", h.Insights.Proxy)
		api.POST("/analyze", h.Insights.Analyze)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled != nil && *cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
		zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	return router
}
