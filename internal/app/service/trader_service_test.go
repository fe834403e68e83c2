package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

var profileNow = time.Date(2024, time.March, 30, 15, 4, 5, 0, time.UTC)

func newTestTraderService(data *fakeData) *traderServiceImpl {
	s := NewTraderService(data, testConfig(), nopLogger{}).(*traderServiceImpl)
	s.now = func() time.Time { return profileNow }
	return s
}

func TestProfile(t *testing.T) {
	data := &fakeData{
		positions: []utils.Record{
			{"title": "A", "eventSlug": "a", "outcomeIndex": 0, "size": 10, "initialValue": 100, "currentValue": 150, "cashPnl": 50},
			{"title": "B", "eventSlug": "b", "outcome": "No", "size": 5, "initialValue": 100, "currentValue": 80, "cashPnl": -20},
		},
		activity: []utils.Record{
			{"type": "TRADE", "side": "BUY", "usdcSize": 40, "timestamp": profileNow.Add(-time.Hour).Unix()},
			{"type": "TRADE", "side": "SELL", "usdcSize": "60", "timestamp": profileNow.Add(-25 * time.Hour).Unix()},
		},
		value: 230,
	}

	profile, err := newTestTraderService(data).Profile(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, "0xabc", profile.Wallet)
	assert.Equal(t, 230.0, profile.Stats.PortfolioValue)
	assert.Equal(t, 2, profile.Stats.PositionsCount)
	assert.Equal(t, 2, profile.Stats.TradesCount)
	assert.Equal(t, 15.0, profile.Stats.Roi)
	assert.Equal(t, 50, profile.Stats.WinRate)

	require.Len(t, profile.Positions, 2)
	assert.Equal(t, "A", profile.Positions[0].Market)
	assert.Equal(t, "Yes", profile.Positions[0].Outcome)

	require.Len(t, profile.PnlHistory, 30)
	assert.Equal(t, "2024-03-30", profile.PnlHistory[29].Date)
	assert.Equal(t, -40.0, profile.PnlHistory[29].Pnl)
	assert.Equal(t, 60.0, profile.PnlHistory[28].Pnl)

	assert.Equal(t, entity.Streak{Length: 1, Kind: entity.StreakWinning}, profile.Streak)
	assert.Equal(t, entity.TraderCasual, profile.TraderType)
}

func TestProfileDegradesFailedBranches(t *testing.T) {
	data := &fakeData{
		positionsErr: errors.New("positions down"),
		activityErr:  errors.New("activity down"),
		value:        12,
	}

	profile, err := newTestTraderService(data).Profile(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Empty(t, profile.Positions)
	assert.NotNil(t, profile.Positions)
	assert.Empty(t, profile.RecentActivity)
	assert.Equal(t, 12.0, profile.Stats.PortfolioValue)
	assert.Equal(t, entity.StreakNone, profile.Streak.Kind)

	data = &fakeData{valueErr: errors.New("value down")}
	profile, err = newTestTraderService(data).Profile(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Zero(t, profile.Stats.PortfolioValue)
}

func TestPositions(t *testing.T) {
	data := &fakeData{positions: []utils.Record{
		{"title": "Small", "slug": "small", "outcome": "No", "size": 2, "avgPrice": 0.333, "cashPnl": -1},
		{"question": "Big", "conditionId": "0xcond", "outcome": "Yes", "size": "20", "pnl": 7},
		{"size": 0, "currentValue": 5},
	}}

	rows, err := newTestTraderService(data).Positions(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, entity.PositionSummary{Market: "Big", Slug: "0xcond", Side: entity.SideYes, Size: 20, AvgPrice: 50, Pnl: 7}, rows[0])
	assert.Equal(t, "Unknown Market", rows[1].Market)
	assert.Equal(t, 5.0, rows[1].Size)
	assert.Equal(t, entity.SideNo, rows[2].Side)
	assert.Equal(t, 33, rows[2].AvgPrice)
	assert.Equal(t, -1.0, rows[2].Pnl)

	_, err = newTestTraderService(&fakeData{positionsErr: errors.New("down")}).Positions(context.Background(), "0xabc")
	assert.Equal(t, entity.KindUpstream, entity.KindOf(err))
}

func TestLeaderboard(t *testing.T) {
	data := &fakeData{leaderboard: []utils.Record{
		{"rank": "1", "proxyWallet": "0xaaa", "userName": "whale", "pnl": 500, "vol": 10000, "verifiedBadge": true},
		{"proxyWallet": "0xbbb", "pnl": -10, "volume": 0},
	}}

	traders, err := newTestTraderService(data).Leaderboard(context.Background(), "all", 10)
	require.NoError(t, err)
	require.Len(t, traders, 2)

	assert.Equal(t, 1, traders[0].Rank)
	assert.Equal(t, "whale", traders[0].Username)
	assert.Equal(t, 5.0, traders[0].Roi)
	assert.True(t, traders[0].Verified)

	assert.Equal(t, 2, traders[1].Rank)
	assert.Equal(t, "Trader_2", traders[1].Username)
	assert.Zero(t, traders[1].Roi)

	_, err = newTestTraderService(&fakeData{}).Leaderboard(context.Background(), "all", 10)
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))

	_, err = newTestTraderService(&fakeData{leaderboardErr: errors.New("down")}).Leaderboard(context.Background(), "all", 10)
	assert.Equal(t, entity.KindUpstream, entity.KindOf(err))
}

func TestActivityFromFormatsDate(t *testing.T) {
	a := ActivityFrom(utils.Record{"timestamp": 1711811045, "side": "BUY"})
	assert.Equal(t, "2024-03-30T15:04:05.000Z", a.Date)
	assert.Equal(t, entity.ActivityTrade, a.Type)
	assert.Equal(t, "Unknown", a.Market)

	assert.Empty(t, ActivityFrom(utils.Record{}).Date)
}
