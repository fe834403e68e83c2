package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/utils"
)

const defaultDebugSlug = "portugal-presidential-election"

type marketsResponse struct {
	Success bool `json:"success"`
	entity.MarketPage
}

type searchResponse struct {
	Success bool `json:"success"`
	entity.SearchResult
}

// MarketHandler обрабатывает запросы каталога рынков: список, поиск, событие, debug.
type MarketHandler struct {
	markets port.MarketService
	cfg     *configloader.Config
}

// NewMarketHandler создает новый экземпляр MarketHandler.
func NewMarketHandler(ms port.MarketService, cfg *configloader.Config) *MarketHandler {
	return &MarketHandler{markets: ms, cfg: cfg}
}

// ListMarkets handles GET /api/markets?tag=&page=&limit=.
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage := utils.ParseLimit(c.Query("limit"), h.cfg.Catalog.DefaultPerPage, h.cfg.Catalog.MaxPerPage)

	result, err := h.markets.ListMarkets(c.Request.Context(), c.Query("tag"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("markets"))
	c.JSON(http.StatusOK, marketsResponse{Success: true, MarketPage: result})
}

// Search handles GET /api/search?q=&limit=.
func (h *MarketHandler) Search(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.cfg.Search.DefaultLimit, h.cfg.Search.MaxLimit)

	result, err := h.markets.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("search"))
	c.JSON(http.StatusOK, searchResponse{Success: true, SearchResult: result})
}

// Event handles GET /api/event?slug=.
func (h *MarketHandler) Event(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		respondBadRequest(c, "slug required")
		return
	}

	event, err := h.markets.Event(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("event"))
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: event})
}

// Debug handles GET /api/debug?slug=. The body is the bare inspection view.
func (h *MarketHandler) Debug(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		slug = defaultDebugSlug
	}

	debug, err := h.markets.DebugEvent(c.Request.Context(), slug)
	if err != nil {
		respondBareError(c, err)
		return
	}
	c.JSON(http.StatusOK, debug)
}
