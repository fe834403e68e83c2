package service

import (
	"context"
	"errors"
	"time"

	"polydash/internal/app/analytics"
	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/metrics"
	"polydash/internal/pkg/utils"
)

const (
	defaultPriceOutcome = "YES"
	commentsUnavailable = "Comments unavailable"
)

var errEmptyTags = errors.New("gamma returned no usable tags")

// insightServiceImpl implements port.InsightService
type insightServiceImpl struct {
	gamma  port.GammaClient
	clob   port.ClobClient
	cfg    *configloader.Config
	logger port.Logger
	now    func() time.Time
}

// NewInsightService creates a new instance of insightServiceImpl.
func NewInsightService(gamma port.GammaClient, clob port.ClobClient, cfg *configloader.Config, l port.Logger) port.InsightService {
	s := &insightServiceImpl{
		gamma:  gamma,
		clob:   clob,
		cfg:    cfg,
		logger: l,
		now:    time.Now,
	}
	l.Info("InsightService initialized", "intervals", len(cfg.Prices.Intervals), "fallbackTags", len(cfg.Tags.Fallback))
	return s
}

// PriceHistory implements port.InsightService. The market lookup is critical, the
// price history itself is not: without it the series is empty and stats fall back to the current price.
func (s *insightServiceImpl) PriceHistory(ctx context.Context, market, interval string) (entity.PriceHistory, error) {
	fidelity, ok := s.cfg.Prices.Intervals[interval]
	if !ok {
		interval = s.cfg.Prices.DefaultInterval
		fidelity = s.cfg.Prices.Intervals[interval]
	}

	lookupCtx, cancel := withTimeout(ctx, s.cfg.Prices.TimeoutMillis)
	markets, err := s.gamma.MarketsByCondition(lookupCtx, market)
	cancel()
	if err != nil {
		return entity.PriceHistory{}, entity.UpstreamFailure("failed to fetch market", err)
	}
	if len(markets) == 0 {
		return entity.PriceHistory{}, entity.NotFound("Market not found")
	}

	m := markets[0]
	current := analytics.CurrentPrice(m)
	tokenIDs := analytics.ClobTokenIDs(m["clobTokenIds"])

	var tokenID *string
	points := []entity.PricePoint{}
	if len(tokenIDs) > 0 {
		tokenID = &tokenIDs[0]
		historyCtx, cancel := withTimeout(ctx, s.cfg.Prices.TimeoutMillis)
		samples, err := s.clob.PriceHistory(historyCtx, tokenIDs[0], interval, fidelity)
		cancel()
		if err != nil {
			s.logger.Warn("Price history unavailable", "market", market, "token", tokenIDs[0], "error", err)
			metrics.RecordDegraded("prices")
		} else {
			points = analytics.PricePoints(samples)
		}
	}

	return entity.PriceHistory{
		Market:       market,
		TokenID:      tokenID,
		Outcome:      firstNonEmpty(m.Str("outcome"), defaultPriceOutcome),
		CurrentPrice: utils.RoundTo(current, 1),
		Interval:     interval,
		Stats:        analytics.SummarizePrices(points, current),
		History:      utils.Tail(points, s.cfg.Prices.MaxPoints),
	}, nil
}

// Comments implements port.InsightService. Comments are best effort: any failure yields
// an empty thread with a note.
func (s *insightServiceImpl) Comments(ctx context.Context, slug string, limit int) entity.CommentThread {
	ctx, cancel := withTimeout(ctx, s.cfg.Comments.TimeoutMillis)
	defer cancel()

	raw, err := s.gamma.Comments(ctx, slug, limit)
	if err != nil {
		s.logger.Warn("Comments unavailable", "slug", slug, "error", err)
		metrics.RecordDegraded("comments")
		return entity.CommentThread{Slug: slug, Comments: []entity.Comment{}, Note: commentsUnavailable}
	}

	comments := analytics.NormalizeComments(raw, s.now())
	return entity.CommentThread{Slug: slug, Count: len(comments), Comments: comments}
}

// Tags implements port.InsightService. The configured default tags are served when gamma fails.
func (s *insightServiceImpl) Tags(ctx context.Context) entity.TagList {
	ctx, cancel := withTimeout(ctx, s.cfg.Tags.TimeoutMillis)
	defer cancel()

	raw, err := s.gamma.Tags(ctx)
	if err == nil {
		if tags := analytics.NormalizeTags(raw); len(tags) > 0 {
			return entity.TagList{Tags: tags}
		}
		err = errEmptyTags
	}

	s.logger.Warn("Tags unavailable, serving fallback", "error", err)
	metrics.RecordDegraded("tags")
	fallback := make([]entity.Tag, 0, len(s.cfg.Tags.Fallback))
	for _, t := range s.cfg.Tags.Fallback {
		fallback = append(fallback, entity.Tag{ID: t.ID, Slug: t.Slug, Label: t.Label})
	}
	return entity.TagList{Tags: fallback, Fallback: true}
}
