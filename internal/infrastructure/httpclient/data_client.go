package httpclient

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"polydash/internal/app/port"
	"polydash/internal/pkg/utils"
)

// positionSizeThreshold hides dust positions on the data API side.
const positionSizeThreshold = "0.1"

type dataClientImpl struct {
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewDataClient creates the data API client.
func NewDataClient(fetcher *Fetcher, logger *zap.Logger) port.DataClient {
	return &dataClientImpl{
		fetcher: fetcher,
		logger:  logger.Named("DataClient"),
	}
}

func (c *dataClientImpl) Holders(ctx context.Context, market string, limit, offset int) ([]utils.Record, error) {
	query := url.Values{
		"market": {market},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	return c.fetcher.GetRecords(ctx, Request{Path: "/holders", Query: query})
}

func (c *dataClientImpl) Positions(ctx context.Context, user string, limit int) ([]utils.Record, error) {
	query := url.Values{
		"user":          {user},
		"sizeThreshold": {positionSizeThreshold},
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.fetcher.GetRecords(ctx, Request{Path: "/positions", Query: query})
}

func (c *dataClientImpl) Activity(ctx context.Context, user string, limit int) ([]utils.Record, error) {
	query := url.Values{
		"user":  {user},
		"limit": {strconv.Itoa(limit)},
	}
	return c.fetcher.GetRecords(ctx, Request{Path: "/activity", Query: query})
}

// PortfolioValue reads /value, which answers either [{"user":..,"value":..}] or a bare object.
func (c *dataClientImpl) PortfolioValue(ctx context.Context, user string) (float64, error) {
	records, err := c.fetcher.GetRecords(ctx, Request{Path: "/value", Query: url.Values{"user": {user}}})
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return records[0].Float("value"), nil
}

func (c *dataClientImpl) Leaderboard(ctx context.Context, window string, limit int) ([]utils.Record, error) {
	query := url.Values{
		"window": {window},
		"limit":  {strconv.Itoa(limit)},
	}
	return c.fetcher.GetRecords(ctx, Request{Path: "/leaderboard", Query: query}, "data", "leaderboard")
}
