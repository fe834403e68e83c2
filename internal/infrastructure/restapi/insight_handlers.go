package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/utils"
)

type pricesResponse struct {
	Success bool `json:"success"`
	entity.PriceHistory
}

type commentsResponse struct {
	Success bool `json:"success"`
	entity.CommentThread
}

type tagsResponse struct {
	Success bool `json:"success"`
	entity.TagList
}

// InsightHandler обрабатывает вспомогательные запросы: цены, комментарии, теги, анализ и прокси.
type InsightHandler struct {
	insights port.InsightService
	analysis port.AnalysisService
	proxy    port.ProxyService
	cfg      *configloader.Config
}

// NewInsightHandler создает новый экземпляр InsightHandler.
func NewInsightHandler(is port.InsightService, as port.AnalysisService, ps port.ProxyService, cfg *configloader.Config) *InsightHandler {
	return &InsightHandler{insights: is, analysis: as, proxy: ps, cfg: cfg}
}

// Prices handles GET /api/prices?market=&interval=.
func (h *InsightHandler) Prices(c *gin.Context) {
	market := strings.TrimSpace(c.Query("market"))
	if market == "" {
		respondBadRequest(c, "market (conditionId) required")
		return
	}

	history, err := h.insights.PriceHistory(c.Request.Context(), market, strings.TrimSpace(c.Query("interval")))
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("prices"))
	c.JSON(http.StatusOK, pricesResponse{Success: true, PriceHistory: history})
}

// Comments handles GET /api/comments?slug=&limit=. Always 200 once the slug is present.
func (h *InsightHandler) Comments(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		respondBadRequest(c, "slug required")
		return
	}
	limit := utils.ParseLimit(c.Query("limit"), h.cfg.Comments.DefaultLimit, h.cfg.Comments.MaxLimit)

	thread := h.insights.Comments(c.Request.Context(), slug, limit)
	if thread.Note == "" {
		setCache(c, h.cfg.CacheSeconds("comments"))
	}
	c.JSON(http.StatusOK, commentsResponse{Success: true, CommentThread: thread})
}

// Tags handles GET /api/tags.
func (h *InsightHandler) Tags(c *gin.Context) {
	tags := h.insights.Tags(c.Request.Context())
	if !tags.Fallback {
		setCache(c, h.cfg.CacheSeconds("tags"))
	}
	c.JSON(http.StatusOK, tagsResponse{Success: true, TagList: tags})
}

// Analyze handles POST /api/analyze with a JSON {title, category, impliedPct} body.
// The response is the bare analysis.
func (h *InsightHandler) Analyze(c *gin.Context) {
	var req entity.AnalysisRequest
	// an unreadable body is treated as an empty request
	_ = c.ShouldBindJSON(&req)

	analysis, err := h.analysis.Analyze(c.Request.Context(), req)
	if err != nil {
		respondBareError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Proxy handles GET /api/polymarket?endpoint=&... and relays the upstream body untouched.
func (h *InsightHandler) Proxy(c *gin.Context) {
	body, err := h.proxy.Forward(c.Request.Context(), c.Query("endpoint"), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		status := statusFor(err)
		if status == http.StatusBadRequest {
			c.JSON(status, bareError{Error: err.Error()})
			return
		}
		c.JSON(status, bareError{Error: "Failed to fetch from Polymarket", Message: errorCause(err)})
		return
	}

	setCache(c, h.cfg.CacheSeconds("proxy"))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// errorCause returns the message of the error wrapped by an AppError, or err itself.
func errorCause(err error) string {
	var appErr *entity.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}
