package port

import (
	"context"
	"errors"
	"net/url"

	"polydash/internal/pkg/utils"
)

// EventQuery selects a page of gamma events.
type EventQuery struct {
	Offset int
	Limit  int
	Closed bool
	// Order by volume, largest first, when set.
	ByVolume bool
}

// GammaClient defines the interface for the Polymarket gamma API (events, markets, tags, comments).
type GammaClient interface {
	ListEvents(ctx context.Context, q EventQuery) ([]utils.Record, error)
	EventsBySlug(ctx context.Context, slug string) ([]utils.Record, error)
	MarketsByCondition(ctx context.Context, conditionID string) ([]utils.Record, error)
	Tags(ctx context.Context) ([]utils.Record, error)
	// Comments tries every known comments route in order and returns the first non-empty list.
	Comments(ctx context.Context, slug string, limit int) ([]utils.Record, error)
	// Raw forwards a request to an arbitrary gamma endpoint and returns the body untouched.
	Raw(ctx context.Context, endpoint string, query url.Values) ([]byte, error)
}

// DataClient defines the interface for the Polymarket data API (holders, positions, activity, value, leaderboard).
type DataClient interface {
	// Holders returns one page of per-token holder groups, each carrying a "holders" array.
	Holders(ctx context.Context, market string, limit, offset int) ([]utils.Record, error)
	Positions(ctx context.Context, user string, limit int) ([]utils.Record, error)
	Activity(ctx context.Context, user string, limit int) ([]utils.Record, error)
	PortfolioValue(ctx context.Context, user string) (float64, error)
	Leaderboard(ctx context.Context, window string, limit int) ([]utils.Record, error)
}

// ClobClient defines the interface for the Polymarket CLOB price history API.
type ClobClient interface {
	PriceHistory(ctx context.Context, tokenID, interval string, fidelity int) ([]utils.Record, error)
}

// ChatMessage is one message of an LLM conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrEmptyCompletion is returned when the model answered without any content.
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// LLMClient defines the interface for an OpenAI-compatible chat completions API.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
