package analytics

import (
	"math"
	"sort"
	"time"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

const dayLayout = "2006-01-02"

// Classification thresholds.
const (
	activeActivityCount  = 100
	highVolumeThreshold  = 10000
	sharpWinRate         = 60
	sharpMinPositions    = 10
	whaleAvgTradeSize    = 500
	diversifiedPositions = 20
)

// ProfileOptions shapes the wallet profile view.
type ProfileOptions struct {
	HistoryDays    int
	TopPositions   int
	RecentActivity int
}

// ComputeProfileStats derives the summary block of a wallet profile.
func ComputeProfileStats(positions []entity.Position, activity []entity.Activity, portfolioValue float64) entity.ProfileStats {
	stats := entity.ProfileStats{
		PortfolioValue: utils.Finite(portfolioValue),
		PositionsCount: len(positions),
	}

	markets := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		stats.TotalPnl += p.Pnl
		stats.TotalInvested += p.InitialValue
		switch {
		case p.Pnl > 0:
			stats.WinningPositions++
		case p.Pnl < 0:
			stats.LosingPositions++
		}
		markets[p.Slug] = struct{}{}
	}
	stats.MarketsCount = len(markets)

	for _, a := range activity {
		if a.Type == entity.ActivityTrade {
			stats.TradesCount++
			stats.TotalVolume += a.UsdcSize
		}
	}

	stats.TotalPnl = utils.Finite(stats.TotalPnl)
	stats.TotalInvested = utils.Finite(stats.TotalInvested)
	stats.TotalVolume = utils.Finite(stats.TotalVolume)
	stats.WinRate = utils.WholePercent(stats.WinningPositions, len(positions))
	stats.Roi = utils.RatioPercent(stats.TotalPnl, stats.TotalInvested)
	if stats.TradesCount > 0 {
		stats.AvgTradeSize = utils.RoundTo(stats.TotalVolume/float64(stats.TradesCount), 2)
	}
	return stats
}

// PnlHistory buckets activity cash flow into the trailing days UTC calendar days ending today,
// oldest first. BUY is an outflow, SELL an inflow; days without activity are zero.
func PnlHistory(activity []entity.Activity, now time.Time, days int) []entity.PnlHistoryPoint {
	if days <= 0 {
		return []entity.PnlHistoryPoint{}
	}
	perDay := make(map[string]float64)
	for _, a := range activity {
		if a.Timestamp <= 0 {
			continue
		}
		day := time.Unix(a.Timestamp, 0).UTC().Format(dayLayout)
		switch a.Side {
		case entity.SideBuy:
			perDay[day] -= a.UsdcSize
		case entity.SideSell:
			perDay[day] += a.UsdcSize
		}
	}

	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	history := make([]entity.PnlHistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(dayLayout)
		history = append(history, entity.PnlHistoryPoint{Date: day, Pnl: utils.RoundTo(perDay[day], 2)})
	}
	return history
}

// Volatility is the population standard deviation of the daily PnL values.
func Volatility(history []entity.PnlHistoryPoint) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, p := range history {
		sum += p.Pnl
	}
	mean := sum / float64(len(history))
	var variance float64
	for _, p := range history {
		variance += (p.Pnl - mean) * (p.Pnl - mean)
	}
	return utils.RoundTo(math.Sqrt(variance/float64(len(history))), 2)
}

// ClassifyTrader applies the classification rules in order, the last match wins.
func ClassifyTrader(stats entity.ProfileStats, activityCount int) entity.TraderType {
	traderType := entity.TraderCasual
	if activityCount > activeActivityCount {
		traderType = entity.TraderActive
	}
	if stats.TotalVolume > highVolumeThreshold {
		traderType = entity.TraderHighVolume
	}
	if stats.WinRate >= sharpWinRate && stats.PositionsCount >= sharpMinPositions {
		traderType = entity.TraderSharp
	}
	if stats.AvgTradeSize > whaleAvgTradeSize {
		traderType = entity.TraderWhale
	}
	if stats.PositionsCount >= diversifiedPositions {
		traderType = entity.TraderDiversified
	}
	return traderType
}

// ComputeStreak walks positions from the best PnL down while the sign holds.
// A PnL of exactly zero ends the streak.
func ComputeStreak(positions []entity.Position) entity.Streak {
	pnls := make([]float64, len(positions))
	for i, p := range positions {
		pnls[i] = p.Pnl
	}
	sort.SliceStable(pnls, func(i, j int) bool { return pnls[i] > pnls[j] })

	if len(pnls) == 0 || pnls[0] == 0 {
		return entity.Streak{Kind: entity.StreakNone}
	}

	winning := pnls[0] > 0
	length := 0
	for _, pnl := range pnls {
		if (winning && pnl > 0) || (!winning && pnl < 0) {
			length++
			continue
		}
		break
	}

	kind := entity.StreakLosing
	if winning {
		kind = entity.StreakWinning
	}
	return entity.Streak{Length: length, Kind: kind}
}

// LeaderboardROI is pnl over volume as a two-decimal percentage, 0 without volume.
func LeaderboardROI(pnl, volume float64) float64 {
	return utils.RatioPercent(pnl, volume)
}

// BuildWalletProfile assembles the full profile view from already fetched data.
func BuildWalletProfile(
	wallet string,
	positions []entity.Position,
	activity []entity.Activity,
	portfolioValue float64,
	now time.Time,
	opts ProfileOptions,
) entity.WalletProfile {
	if positions == nil {
		positions = []entity.Position{}
	}
	if activity == nil {
		activity = []entity.Activity{}
	}

	stats := ComputeProfileStats(positions, activity, portfolioValue)
	history := PnlHistory(activity, now, opts.HistoryDays)
	stats.Volatility = Volatility(history)

	byValue := append([]entity.Position(nil), positions...)
	sort.SliceStable(byValue, func(i, j int) bool { return byValue[i].CurrentValue > byValue[j].CurrentValue })

	return entity.WalletProfile{
		Wallet:         wallet,
		Stats:          stats,
		Positions:      utils.Truncate(byValue, opts.TopPositions),
		RecentActivity: utils.Truncate(activity, opts.RecentActivity),
		PnlHistory:     history,
		Streak:         ComputeStreak(positions),
		TraderType:     ClassifyTrader(stats, len(activity)),
	}
}
