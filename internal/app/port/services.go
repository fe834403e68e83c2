package port

import (
	"context"
	"net/url"

	"polydash/internal/domain/entity"
)

// MarketService serves the market catalog views: listing, search, event detail and debug.
type MarketService interface {
	ListMarkets(ctx context.Context, tag string, page, perPage int) (entity.MarketPage, error)
	Search(ctx context.Context, query string, limit int) (entity.SearchResult, error)
	Event(ctx context.Context, slug string) (entity.EventDetail, error)
	DebugEvent(ctx context.Context, slug string) (entity.EventDebug, error)
}

// HolderService serves the aggregated holder view of a market.
type HolderService interface {
	Holders(ctx context.Context, market string, limit int) (entity.HolderSnapshot, error)
}

// TraderService serves wallet profiles, open positions and the leaderboard.
type TraderService interface {
	Profile(ctx context.Context, wallet string) (entity.WalletProfile, error)
	Positions(ctx context.Context, wallet string) ([]entity.PositionSummary, error)
	Leaderboard(ctx context.Context, window string, limit int) ([]entity.TraderStat, error)
}

// InsightService serves the secondary market data: price history, comments and tags.
type InsightService interface {
	PriceHistory(ctx context.Context, market, interval string) (entity.PriceHistory, error)
	Comments(ctx context.Context, slug string, limit int) entity.CommentThread
	Tags(ctx context.Context) entity.TagList
}

// AnalysisService produces LLM market analyses.
type AnalysisService interface {
	Analyze(ctx context.Context, req entity.AnalysisRequest) (entity.Analysis, error)
}

// ProxyService forwards raw gamma queries.
type ProxyService interface {
	Forward(ctx context.Context, endpoint string, query url.Values) ([]byte, error)
}
