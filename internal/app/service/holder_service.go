package service

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"polydash/internal/app/analytics"
	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/metrics"
	"polydash/internal/pkg/utils"
)

// holderServiceImpl implements port.HolderService
type holderServiceImpl struct {
	data   port.DataClient
	cfg    *configloader.Config
	logger port.Logger
}

// NewHolderService creates a new instance of holderServiceImpl.
func NewHolderService(data port.DataClient, cfg *configloader.Config, l port.Logger) port.HolderService {
	s := &holderServiceImpl{
		data:   data,
		cfg:    cfg,
		logger: l,
	}
	l.Info("HolderService initialized", "botAddresses", len(cfg.Holders.BotAddresses), "maxPages", cfg.Holders.MaxPages)
	return s
}

// Holders implements port.HolderService.
func (s *holderServiceImpl) Holders(ctx context.Context, market string, limit int) (entity.HolderSnapshot, error) {
	records := s.fetchHolderRecords(ctx, market)

	dedupe := s.cfg.Holders.DedupeByName == nil || *s.cfg.Holders.DedupeByName
	opts := analytics.NewHolderOptions(limit, s.cfg.Holders.DustThreshold, s.cfg.Holders.BotAddresses, dedupe)
	snapshot := analytics.AggregateHolders(records, opts)
	snapshot.Market = market

	metrics.RecordHolders(snapshot.Stats.YesHolders + snapshot.Stats.NoHolders)
	s.logger.Debug("Holders aggregated", "market", market, "raw", len(records), "holders", snapshot.Stats.TotalHolders)
	return snapshot, nil
}

// fetchHolderRecords pages through the per-token holder groups. The data API caps each
// token group at the page size, so a page whose groups together hold fewer rows is the last.
// A failed page ends paging; whatever was collected so far is aggregated.
func (s *holderServiceImpl) fetchHolderRecords(ctx context.Context, market string) []entity.HolderRecord {
	cfg := s.cfg.Holders
	var records []entity.HolderRecord
	for p := 0; p < cfg.MaxPages; p++ {
		pageCtx, cancel := withTimeout(ctx, cfg.TimeoutMillis)
		groups, err := s.data.Holders(pageCtx, market, cfg.PageSize, p*cfg.PageSize)
		cancel()
		if err != nil {
			s.logger.Warn("Holders paging stopped early", "market", market, "page", p, "error", err)
			metrics.RecordDegraded("holders")
			break
		}
		if len(groups) == 0 {
			break
		}

		inPage := 0
		for _, group := range groups {
			holders := group.List("holders")
			inPage += len(holders)
			for _, h := range holders {
				records = append(records, HolderRecordFrom(h))
			}
		}
		if inPage < cfg.PageSize {
			break
		}
	}
	return records
}

// HolderRecordFrom maps one raw data API holder onto a HolderRecord.
func HolderRecordFrom(h utils.Record) entity.HolderRecord {
	return entity.HolderRecord{
		Wallet:        h.Str("proxyWallet", "wallet", "address"),
		Name:          h.Str("name"),
		Pseudonym:     h.Str("pseudonym"),
		DisplayPublic: h.Bool("displayUsernamePublic"),
		Amount:        utils.ParseAmount(h["amount"]),
		OutcomeIndex:  outcomeIndex(h),
		ProfileImage:  h.Str("profileImage", "profileImageOptimized"),
		Bio:           h.Str("bio"),
	}
}

// outcomeIndex returns the holder's outcome index, -1 when it is absent or not a number.
func outcomeIndex(h utils.Record) int {
	v, ok := h.Value("outcomeIndex")
	if !ok {
		return -1
	}
	if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
		return -1
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return -1
	}
	return int(f)
}
