package httpclient

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"polydash/internal/app/port"
	"polydash/internal/pkg/utils"
)

// Referer sent with comment requests.
const polymarketReferer = "https://polymarket.com/"

type gammaClientImpl struct {
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewGammaClient creates the gamma API client.
func NewGammaClient(fetcher *Fetcher, logger *zap.Logger) port.GammaClient {
	return &gammaClientImpl{
		fetcher: fetcher,
		logger:  logger.Named("GammaClient"),
	}
}

func (c *gammaClientImpl) ListEvents(ctx context.Context, q port.EventQuery) ([]utils.Record, error) {
	query := url.Values{}
	query.Set("closed", strconv.FormatBool(q.Closed))
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(q.Offset))
	if q.ByVolume {
		query.Set("order", "volume")
		query.Set("ascending", "false")
	}
	return c.fetcher.GetRecords(ctx, Request{Path: "/events", Query: query})
}

func (c *gammaClientImpl) EventsBySlug(ctx context.Context, slug string) ([]utils.Record, error) {
	return c.fetcher.GetRecords(ctx, Request{Path: "/events", Query: url.Values{"slug": {slug}}})
}

func (c *gammaClientImpl) MarketsByCondition(ctx context.Context, conditionID string) ([]utils.Record, error) {
	return c.fetcher.GetRecords(ctx, Request{Path: "/markets", Query: url.Values{"condition_id": {conditionID}}})
}

func (c *gammaClientImpl) Tags(ctx context.Context) ([]utils.Record, error) {
	return c.fetcher.GetRecords(ctx, Request{Path: "/tags"}, "tags", "data")
}

func (c *gammaClientImpl) Comments(ctx context.Context, slug string, limit int) ([]utils.Record, error) {
	header := map[string]string{"Referer": polymarketReferer}
	limitStr := strconv.Itoa(limit)
	candidates := []Request{
		{
			Endpoint: "/events/comments",
			Path:     "/events/" + url.PathEscape(slug) + "/comments",
			Query:    url.Values{"limit": {limitStr}},
			Header:   header,
		},
		{
			Path:   "/comments",
			Query:  url.Values{"eventSlug": {slug}, "limit": {limitStr}},
			Header: header,
		},
	}
	records, err := c.fetcher.GetFirstRecords(ctx, candidates, "comments", "data")
	if err != nil {
		c.logger.Debug("All comment routes failed", zap.String("slug", slug), zap.Error(err))
	}
	return records, err
}

func (c *gammaClientImpl) Raw(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.fetcher.Get(ctx, Request{Path: "/" + endpoint, Query: query})
}
