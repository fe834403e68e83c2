package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"polydash/internal/app/analytics"
	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/metrics"
	"polydash/internal/pkg/utils"
)

const (
	allTags          = "all"
	searchTagLimit   = 5
	debugMarketLimit = 10
)

// marketServiceImpl implements port.MarketService
type marketServiceImpl struct {
	gamma   port.GammaClient
	catalog *analytics.Catalog
	cfg     *configloader.Config
	logger  port.Logger
}

// NewMarketService creates a new instance of marketServiceImpl.
func NewMarketService(gamma port.GammaClient, catalog *analytics.Catalog, cfg *configloader.Config, l port.Logger) port.MarketService {
	s := &marketServiceImpl{
		gamma:   gamma,
		catalog: catalog,
		cfg:     cfg,
		logger:  l,
	}
	l.Info("MarketService initialized", "maxEvents", cfg.Catalog.MaxEvents, "searchBatches", cfg.Search.Batches)
	return s
}

func (s *marketServiceImpl) cardOptions() analytics.NormalizeOptions {
	return analytics.NormalizeOptions{
		IncludeZeroVolume: !s.cfg.Catalog.HideUntraded,
		StrictTagMatching: true,
		DedupeByName:      true,
		MaxOutcomes:       s.cfg.Catalog.MaxOutcomes,
	}
}

// ListMarkets implements port.MarketService.
func (s *marketServiceImpl) ListMarkets(ctx context.Context, tag string, page, perPage int) (entity.MarketPage, error) {
	events, err := s.fetchOpenEvents(ctx)
	if err != nil {
		return entity.MarketPage{}, entity.UpstreamFailure("failed to fetch events", err)
	}

	opts := s.cardOptions()
	filter := s.catalog.Filter(tag)
	cards := make([]entity.MarketCard, 0, len(events))
	for i, event := range events {
		card := analytics.BuildMarketCard(event, i, s.catalog.TitleKeywords(event.Str("title")), opts)
		if card.OutcomesCount == 0 || !filter.Match(card, opts.StrictTagMatching) {
			continue
		}
		cards = append(cards, card)
	}
	analytics.SortCardsByVolume(cards)

	if page < 1 {
		page = 1
	}
	paged, totalPages := utils.Page(cards, page, perPage)

	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = allTags
	}

	s.logger.Debug("Markets listed", "tag", tag, "events", len(events), "matched", len(cards), "page", page)
	return entity.MarketPage{
		Pagination: entity.Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      len(cards),
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
		Tag:     tag,
		Markets: paged,
	}, nil
}

// fetchOpenEvents pages through open events by volume until a short page or the event cap.
// A failure after the first page keeps what was already fetched.
func (s *marketServiceImpl) fetchOpenEvents(ctx context.Context) ([]utils.Record, error) {
	cfg := s.cfg.Catalog
	events := make([]utils.Record, 0, cfg.PageSize)
	for p := 0; p < cfg.MaxPages; p++ {
		pageCtx, cancel := withTimeout(ctx, cfg.TimeoutMillis)
		batch, err := s.gamma.ListEvents(pageCtx, port.EventQuery{
			Offset:   p * cfg.PageSize,
			Limit:    cfg.PageSize,
			ByVolume: true,
		})
		cancel()
		if err != nil {
			if p == 0 {
				return nil, err
			}
			s.logger.Warn("Events paging stopped early", "page", p, "error", err)
			metrics.RecordDegraded("markets")
			break
		}
		events = append(events, batch...)
		if len(batch) < cfg.PageSize || len(events) >= cfg.MaxEvents {
			break
		}
	}
	return events, nil
}

// Search implements port.MarketService.
func (s *marketServiceImpl) Search(ctx context.Context, query string, limit int) (entity.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < s.cfg.Search.MinQueryLength {
		return entity.SearchResult{}, entity.BadRequest(fmt.Sprintf("Query must be at least %d characters", s.cfg.Search.MinQueryLength))
	}

	offsets := utils.Offsets(s.cfg.Search.Batches, s.cfg.Search.BatchSize)
	batches := make([][]utils.Record, len(offsets))

	g, gctx := errgroup.WithContext(ctx)
	for i, offset := range offsets {
		i, offset := i, offset
		g.Go(func() error {
			batchCtx, cancel := withTimeout(gctx, s.cfg.Search.TimeoutMillis)
			defer cancel()
			events, err := s.gamma.ListEvents(batchCtx, port.EventQuery{
				Offset:   offset,
				Limit:    s.cfg.Search.BatchSize,
				ByVolume: true,
			})
			if err != nil {
				s.logger.Warn("Search batch failed", "offset", offset, "error", err)
				metrics.RecordDegraded("search")
				return nil
			}
			batches[i] = events
			return nil
		})
	}
	_ = g.Wait()

	opts := s.cardOptions()
	seen := make(map[string]struct{})
	searched := 0
	cards := make([]entity.MarketCard, 0)
	for _, batch := range batches {
		searched += len(batch)
		for _, event := range batch {
			if key := event.Str("id", "slug"); key != "" {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			if !analytics.MatchesQuery(event, query) {
				continue
			}
			card := analytics.BuildMarketCard(event, len(cards), nil, opts)
			if card.OutcomesCount == 0 {
				continue
			}
			card.Tags = utils.Truncate(card.Tags, searchTagLimit)
			cards = append(cards, card)
		}
	}
	analytics.SortCardsByVolume(cards)
	cards = utils.Truncate(cards, limit)

	return entity.SearchResult{
		Query:    query,
		Count:    len(cards),
		Searched: searched,
		Markets:  cards,
	}, nil
}

// Event implements port.MarketService.
func (s *marketServiceImpl) Event(ctx context.Context, slug string) (entity.EventDetail, error) {
	event, err := s.eventBySlug(ctx, slug)
	if err != nil {
		return entity.EventDetail{}, err
	}
	return analytics.NormalizeEvent(event, analytics.NormalizeOptions{
		IncludeZeroVolume: !s.cfg.Catalog.HideUntraded,
	}), nil
}

// DebugEvent implements port.MarketService.
func (s *marketServiceImpl) DebugEvent(ctx context.Context, slug string) (entity.EventDebug, error) {
	event, err := s.eventBySlug(ctx, slug)
	if err != nil {
		return entity.EventDebug{}, err
	}
	return analytics.DebugEvent(event, debugMarketLimit), nil
}

func (s *marketServiceImpl) eventBySlug(ctx context.Context, slug string) (utils.Record, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.Catalog.TimeoutMillis)
	defer cancel()

	events, err := s.gamma.EventsBySlug(ctx, slug)
	if err != nil {
		return nil, entity.UpstreamFailure("failed to fetch event", err)
	}
	if len(events) == 0 {
		return nil, entity.NotFound("Event not found")
	}
	return events[0], nil
}
