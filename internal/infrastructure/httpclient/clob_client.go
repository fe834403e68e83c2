package httpclient

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"polydash/internal/app/port"
	"polydash/internal/pkg/utils"
)

type clobClientImpl struct {
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewClobClient creates the CLOB API client.
func NewClobClient(fetcher *Fetcher, logger *zap.Logger) port.ClobClient {
	return &clobClientImpl{
		fetcher: fetcher,
		logger:  logger.Named("ClobClient"),
	}
}

// PriceHistory returns the raw {t, p} samples of a token.
func (c *clobClientImpl) PriceHistory(ctx context.Context, tokenID, interval string, fidelity int) ([]utils.Record, error) {
	query := url.Values{
		"market":   {tokenID},
		"interval": {interval},
		"fidelity": {strconv.Itoa(fidelity)},
	}
	records, err := c.fetcher.GetRecords(ctx, Request{Path: "/prices-history", Query: query}, "history")
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Price history received", zap.String("tokenID", tokenID), zap.Int("points", len(records)))
	return records, nil
}
