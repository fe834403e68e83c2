package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"polydash/internal/app/analytics"
	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/metrics"
	"polydash/internal/pkg/utils"
)

// defaultAvgPrice is assumed for positions the data API reports without an average price.
const defaultAvgPrice = 0.5

// traderServiceImpl implements port.TraderService
type traderServiceImpl struct {
	data   port.DataClient
	cfg    *configloader.Config
	logger port.Logger
	now    func() time.Time
}

// NewTraderService creates a new instance of traderServiceImpl.
func NewTraderService(data port.DataClient, cfg *configloader.Config, l port.Logger) port.TraderService {
	s := &traderServiceImpl{
		data:   data,
		cfg:    cfg,
		logger: l,
		now:    time.Now,
	}
	l.Info("TraderService initialized")
	return s
}

// Profile implements port.TraderService. Positions, activity and portfolio value are fetched
// in parallel; a failed branch contributes empty data.
func (s *traderServiceImpl) Profile(ctx context.Context, wallet string) (entity.WalletProfile, error) {
	cfg := s.cfg.Profile
	var (
		rawPositions []utils.Record
		rawActivity  []utils.Record
		value        float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := withTimeout(gctx, cfg.TimeoutMillis)
		defer cancel()
		records, err := s.data.Positions(callCtx, wallet, cfg.PositionsLimit)
		if err != nil {
			s.degraded("positions", wallet, err)
			return nil
		}
		rawPositions = records
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := withTimeout(gctx, cfg.TimeoutMillis)
		defer cancel()
		records, err := s.data.Activity(callCtx, wallet, cfg.ActivityLimit)
		if err != nil {
			s.degraded("activity", wallet, err)
			return nil
		}
		rawActivity = records
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := withTimeout(gctx, cfg.TimeoutMillis)
		defer cancel()
		v, err := s.data.PortfolioValue(callCtx, wallet)
		if err != nil {
			s.degraded("value", wallet, err)
			return nil
		}
		value = v
		return nil
	})
	_ = g.Wait()

	positions := make([]entity.Position, 0, len(rawPositions))
	for _, p := range rawPositions {
		positions = append(positions, PositionFrom(p))
	}
	activity := make([]entity.Activity, 0, len(rawActivity))
	for _, a := range rawActivity {
		activity = append(activity, ActivityFrom(a))
	}

	return analytics.BuildWalletProfile(wallet, positions, activity, value, s.now(), analytics.ProfileOptions{
		HistoryDays:    cfg.HistoryDays,
		TopPositions:   cfg.TopPositions,
		RecentActivity: cfg.RecentActivity,
	}), nil
}

func (s *traderServiceImpl) degraded(branch, wallet string, err error) {
	s.logger.Warn("Profile branch failed, serving empty data", "branch", branch, "wallet", wallet, "error", err)
	metrics.RecordDegraded("profile")
}

// Positions implements port.TraderService.
func (s *traderServiceImpl) Positions(ctx context.Context, wallet string) ([]entity.PositionSummary, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.Profile.TimeoutMillis)
	defer cancel()

	records, err := s.data.Positions(ctx, wallet, 0)
	if err != nil {
		return nil, entity.UpstreamFailure("failed to fetch positions", err)
	}

	out := make([]entity.PositionSummary, 0, len(records))
	for _, p := range records {
		out = append(out, PositionSummaryFrom(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out, nil
}

// Leaderboard implements port.TraderService.
func (s *traderServiceImpl) Leaderboard(ctx context.Context, window string, limit int) ([]entity.TraderStat, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.RequestTimeoutMillis)
	defer cancel()

	records, err := s.data.Leaderboard(ctx, window, limit)
	if err != nil {
		return nil, entity.UpstreamFailure("failed to fetch leaderboard", err)
	}
	if len(records) == 0 {
		return nil, entity.NotFound("No leaderboard data received")
	}

	traders := make([]entity.TraderStat, 0, len(records))
	for i, t := range records {
		traders = append(traders, TraderStatFrom(t, i))
	}
	return traders, nil
}

// PositionFrom maps a raw data API position onto the profile position view.
func PositionFrom(p utils.Record) entity.Position {
	outcome := p.Str("outcome")
	if outcome == "" {
		outcome = "No"
		if v, ok := p.Value("outcomeIndex"); ok && utils.ToFloat(v) == 0 {
			outcome = "Yes"
		}
	}
	return entity.Position{
		Market:       firstNonEmpty(p.Str("title", "question"), "Unknown"),
		Slug:         p.Str("eventSlug", "slug"),
		Outcome:      outcome,
		Size:         p.Float("size"),
		AvgPrice:     p.Float("avgPrice"),
		CurrentPrice: p.Float("curPrice"),
		InitialValue: p.Float("initialValue"),
		CurrentValue: p.Float("currentValue"),
		Pnl:          p.Float("cashPnl"),
		PnlPercent:   p.Float("percentPnl"),
		RealizedPnl:  p.Float("realizedPnl"),
		Image:        p.Str("icon"),
	}
}

// ActivityFrom maps a raw data API activity record.
func ActivityFrom(a utils.Record) entity.Activity {
	ts := a.Int("timestamp")
	date := ""
	if ts > 0 {
		date = time.Unix(ts, 0).UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return entity.Activity{
		Type:      firstNonEmpty(a.Str("type"), entity.ActivityTrade),
		Market:    firstNonEmpty(a.Str("title"), "Unknown"),
		Slug:      a.Str("slug"),
		Side:      a.Str("side"),
		Outcome:   a.Str("outcome"),
		Size:      a.Float("size"),
		Price:     a.Float("price"),
		UsdcSize:  a.Float("usdcSize"),
		Timestamp: ts,
		Date:      date,
	}
}

// PositionSummaryFrom maps a raw data API position onto the compact positions row.
func PositionSummaryFrom(p utils.Record) entity.PositionSummary {
	side := entity.SideNo
	if p.Str("outcome") == "Yes" || p.Str("side") == "long" {
		side = entity.SideYes
	}
	avg := p.Float("avgPrice")
	if avg == 0 {
		avg = defaultAvgPrice
	}
	return entity.PositionSummary{
		Market:   firstNonEmpty(p.Str("title", "question"), "Unknown Market"),
		Slug:     p.Str("slug", "conditionId"),
		Side:     side,
		Size:     p.Float("size", "currentValue"),
		AvgPrice: int(utils.RoundHalfUp(avg * 100)),
		Pnl:      p.Float("pnl", "cashPnl"),
	}
}

// TraderStatFrom maps one raw leaderboard row at position i.
func TraderStatFrom(t utils.Record, i int) entity.TraderStat {
	pnl := t.Float("pnl")
	volume := t.Float("volume", "vol")
	rank := int(t.Int("rank"))
	if rank <= 0 {
		rank = i + 1
	}
	return entity.TraderStat{
		Rank:      rank,
		Wallet:    t.Str("proxyWallet", "address"),
		Username:  firstNonEmpty(t.Str("userName", "name"), fmt.Sprintf("Trader_%d", i+1)),
		Pnl:       pnl,
		Volume:    volume,
		Positions: int(t.Int("positions", "numTrades")),
		Verified:  t.Bool("verifiedBadge"),
		Roi:       analytics.LeaderboardROI(pnl, volume),
	}
}

func firstNonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
