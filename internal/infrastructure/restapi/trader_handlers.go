package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/utils"
)

type holdersResponse struct {
	Success bool `json:"success"`
	entity.HolderSnapshot
}

// TraderHandler обрабатывает запросы по кошелькам: держатели рынка, профиль, позиции, лидерборд.
type TraderHandler struct {
	holders port.HolderService
	traders port.TraderService
	cfg     *configloader.Config
}

// NewTraderHandler создает новый экземпляр TraderHandler.
func NewTraderHandler(hs port.HolderService, ts port.TraderService, cfg *configloader.Config) *TraderHandler {
	return &TraderHandler{holders: hs, traders: ts, cfg: cfg}
}

// Holders handles GET /api/holders?market=|conditionId=&limit=.
func (h *TraderHandler) Holders(c *gin.Context) {
	market := firstQuery(c, "market", "conditionId")
	if market == "" {
		respondBadRequest(c, "market required")
		return
	}
	limit := utils.ParseLimit(c.Query("limit"), h.cfg.Holders.DefaultLimit, h.cfg.Holders.MaxLimit)

	snapshot, err := h.holders.Holders(c.Request.Context(), market, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("holders"))
	c.JSON(http.StatusOK, holdersResponse{Success: true, HolderSnapshot: snapshot})
}

// Profile handles GET /api/profile?wallet=|user=.
func (h *TraderHandler) Profile(c *gin.Context) {
	wallet := firstQuery(c, "wallet", "user")
	if wallet == "" {
		respondBadRequest(c, "wallet required")
		return
	}

	profile, err := h.traders.Profile(c.Request.Context(), wallet)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("profile"))
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: profile})
}

// Positions handles GET /api/positions?wallet=.
func (h *TraderHandler) Positions(c *gin.Context) {
	wallet := strings.TrimSpace(c.Query("wallet"))
	if wallet == "" {
		respondBadRequest(c, "wallet parameter required")
		return
	}

	positions, err := h.traders.Positions(c.Request.Context(), wallet)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("positions"))
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: positions})
}

// Leaderboard handles GET /api/leaderboard?window=&limit=.
func (h *TraderHandler) Leaderboard(c *gin.Context) {
	window := strings.TrimSpace(c.Query("window"))
	if window == "" {
		window = h.cfg.Leaderboard.DefaultWindow
	}
	limit := utils.ParseLimit(c.Query("limit"), h.cfg.Leaderboard.DefaultLimit, h.cfg.Leaderboard.MaxLimit)

	traders, err := h.traders.Leaderboard(c.Request.Context(), window, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	setCache(c, h.cfg.CacheSeconds("leaderboard"))
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: traders})
}

// firstQuery returns the first non-blank query parameter among keys.
func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
