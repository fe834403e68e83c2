package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydash/internal/domain/entity"
)

var fixedNow = time.Date(2024, time.March, 30, 15, 4, 5, 0, time.UTC)

func positionsWithPnl(pnls ...float64) []entity.Position {
	out := make([]entity.Position, len(pnls))
	for i, p := range pnls {
		out[i] = entity.Position{Slug: "m", Pnl: p, InitialValue: 100}
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name string
		pnls []float64
		want entity.Streak
	}{
		{"sorted by pnl first", []float64{100, -50, 75}, entity.Streak{Length: 2, Kind: entity.StreakWinning}},
		{"all losing", []float64{-1, -2, -3}, entity.Streak{Length: 3, Kind: entity.StreakLosing}},
		{"zero ends a winning run", []float64{5, 0, 3, -1}, entity.Streak{Length: 2, Kind: entity.StreakWinning}},
		{"best is zero", []float64{0, -4}, entity.Streak{Kind: entity.StreakNone}},
		{"no positions", nil, entity.Streak{Kind: entity.StreakNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(positionsWithPnl(tt.pnls...)))
		})
	}
}

func TestLeaderboardROI(t *testing.T) {
	assert.Equal(t, 0.0, LeaderboardROI(1000, 0))
	assert.False(t, math.IsNaN(LeaderboardROI(0, 0)))
	assert.Equal(t, 12.5, LeaderboardROI(125, 1000))
}

func TestComputeProfileStats(t *testing.T) {
	positions := []entity.Position{
		{Slug: "a", Pnl: 50, InitialValue: 100},
		{Slug: "a", Pnl: -20, InitialValue: 200},
		{Slug: "b", Pnl: 0, InitialValue: 100},
	}
	activity := []entity.Activity{
		{Type: "TRADE", UsdcSize: 300},
		{Type: "TRADE", UsdcSize: 100},
		{Type: "REDEEM", UsdcSize: 999},
	}

	stats := ComputeProfileStats(positions, activity, 1234.5)
	assert.Equal(t, 30.0, stats.TotalPnl)
	assert.Equal(t, 400.0, stats.TotalInvested)
	assert.Equal(t, 7.5, stats.Roi)
	assert.Equal(t, 33, stats.WinRate)
	assert.Equal(t, 1, stats.WinningPositions)
	assert.Equal(t, 1, stats.LosingPositions)
	assert.Equal(t, 2, stats.MarketsCount)
	assert.Equal(t, 2, stats.TradesCount)
	assert.Equal(t, 400.0, stats.TotalVolume)
	assert.Equal(t, 200.0, stats.AvgTradeSize)
	assert.Equal(t, 1234.5, stats.PortfolioValue)

	empty := ComputeProfileStats(nil, nil, 0)
	assert.Equal(t, 0.0, empty.Roi)
	assert.Equal(t, 0, empty.WinRate)
	assert.Equal(t, 0.0, empty.AvgTradeSize)

	noInvestment := ComputeProfileStats([]entity.Position{{Pnl: 10}}, nil, 0)
	assert.Equal(t, 0.0, noInvestment.Roi)
}

func TestPnlHistory(t *testing.T) {
	today := fixedNow.Unix()
	yesterday := fixedNow.Add(-24 * time.Hour).Unix()
	activity := []entity.Activity{
		{Side: "BUY", UsdcSize: 40, Timestamp: today},
		{Side: "SELL", UsdcSize: 100, Timestamp: today},
		{Side: "BUY", UsdcSize: 25.5, Timestamp: yesterday},
		{Side: "", UsdcSize: 500, Timestamp: yesterday},
		{Side: "SELL", UsdcSize: 1000, Timestamp: fixedNow.AddDate(0, 0, -45).Unix()},
	}

	history := PnlHistory(activity, fixedNow, 30)
	require.Len(t, history, 30)
	assert.Equal(t, "2024-03-01", history[0].Date)
	assert.Equal(t, "2024-03-30", history[29].Date)
	assert.Equal(t, 60.0, history[29].Pnl)
	assert.Equal(t, -25.5, history[28].Pnl)
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].Date, history[i].Date)
	}

	assert.Len(t, PnlHistory(nil, fixedNow, 30), 30)
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(nil))
	history := []entity.PnlHistoryPoint{{Pnl: 2}, {Pnl: 4}, {Pnl: 4}, {Pnl: 4}, {Pnl: 5}, {Pnl: 5}, {Pnl: 7}, {Pnl: 9}}
	assert.Equal(t, 2.0, Volatility(history))
}

func TestClassifyTrader(t *testing.T) {
	tests := []struct {
		name     string
		stats    entity.ProfileStats
		activity int
		want     entity.TraderType
	}{
		{"casual", entity.ProfileStats{}, 5, entity.TraderCasual},
		{"active", entity.ProfileStats{}, 101, entity.TraderActive},
		{"high volume beats active", entity.ProfileStats{TotalVolume: 10001}, 150, entity.TraderHighVolume},
		{"sharp", entity.ProfileStats{WinRate: 60, PositionsCount: 10}, 0, entity.TraderSharp},
		{"sharp needs positions", entity.ProfileStats{WinRate: 90, PositionsCount: 9}, 0, entity.TraderCasual},
		{"whale beats sharp", entity.ProfileStats{WinRate: 70, PositionsCount: 12, AvgTradeSize: 501}, 0, entity.TraderWhale},
		{"diversified wins last", entity.ProfileStats{PositionsCount: 20, AvgTradeSize: 900, TotalVolume: 50000}, 200, entity.TraderDiversified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrader(tt.stats, tt.activity))
		})
	}
}

func TestBuildWalletProfile(t *testing.T) {
	positions := []entity.Position{
		{Slug: "a", Pnl: 10, CurrentValue: 5, InitialValue: 50},
		{Slug: "b", Pnl: 20, CurrentValue: 50, InitialValue: 50},
		{Slug: "c", Pnl: -5, CurrentValue: 20, InitialValue: 50},
	}
	activity := make([]entity.Activity, 40)
	for i := range activity {
		activity[i] = entity.Activity{Type: "TRADE", Side: "BUY", UsdcSize: 1, Timestamp: fixedNow.Unix()}
	}

	profile := BuildWalletProfile("0xabc", positions, activity, 10, fixedNow, ProfileOptions{HistoryDays: 30, TopPositions: 2, RecentActivity: 30})
	assert.Equal(t, "0xabc", profile.Wallet)
	require.Len(t, profile.Positions, 2)
	assert.Equal(t, "b", profile.Positions[0].Slug)
	assert.Equal(t, "c", profile.Positions[1].Slug)
	assert.Len(t, profile.RecentActivity, 30)
	assert.Len(t, profile.PnlHistory, 30)
	assert.Equal(t, -40.0, profile.PnlHistory[29].Pnl)
	assert.Equal(t, entity.Streak{Length: 2, Kind: entity.StreakWinning}, profile.Streak)
	assert.Equal(t, entity.TraderCasual, profile.TraderType)
	assert.Equal(t, 16.67, profile.Stats.Roi)
	assert.Greater(t, profile.Stats.Volatility, 0.0)

	empty := BuildWalletProfile("0xabc", nil, nil, 0, fixedNow, ProfileOptions{HistoryDays: 30, TopPositions: 50, RecentActivity: 30})
	assert.NotNil(t, empty.Positions)
	assert.NotNil(t, empty.RecentActivity)
	assert.Equal(t, entity.Streak{Kind: entity.StreakNone}, empty.Streak)
}
