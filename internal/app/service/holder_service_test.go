package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

const (
	walletA = "0x1111111111111111111111111111111111111111"
	walletB = "0x2222222222222222222222222222222222222222"
	walletC = "0x3333333333333333333333333333333333333333"
)

func holderGroup(holders ...map[string]any) utils.Record {
	list := make([]any, 0, len(holders))
	for _, h := range holders {
		list = append(list, h)
	}
	return utils.Record{"token": "t", "holders": list}
}

func holder(wallet string, amount any, outcome int, name string) map[string]any {
	return map[string]any{
		"proxyWallet":           wallet,
		"amount":                amount,
		"outcomeIndex":          outcome,
		"name":                  name,
		"displayUsernamePublic": name != "",
	}
}

func TestHoldersPagesUntilShortPage(t *testing.T) {
	cfg := testConfig()
	cfg.Holders.PageSize = 2
	data := &fakeData{holderPages: map[int][]utils.Record{
		0: {
			holderGroup(holder(walletA, 10, 0, "alice"), holder(walletB, "5", 0, "")),
			holderGroup(holder(walletC, 7.5, 1, "carol")),
		},
		2: {holderGroup(holder("0x1111111111111111111111111111111111111111", 4, 0, ""))},
		4: {holderGroup(holder(walletB, 1000, 1, ""))},
	}}
	s := NewHolderService(data, cfg, nopLogger{})

	snap, err := s.Holders(context.Background(), "0xmarket", 50)
	require.NoError(t, err)
	assert.Equal(t, 2, data.holderCalls)
	assert.Equal(t, "0xmarket", snap.Market)

	require.Len(t, snap.Holders, 3)
	assert.Equal(t, walletA, snap.Holders[0].Wallet)
	assert.Equal(t, 14.0, snap.Holders[0].Amount)
	assert.Equal(t, "alice", snap.Holders[0].DisplayName)
	assert.Equal(t, entity.SideNo, snap.Holders[1].Outcome)
	assert.Equal(t, 1, snap.Holders[0].Rank)
	assert.Equal(t, 3, snap.Holders[2].Rank)

	assert.Equal(t, 3, snap.Stats.TotalHolders)
	assert.Equal(t, 2, snap.Stats.YesHolders)
	assert.Equal(t, 1, snap.Stats.NoHolders)
	assert.Equal(t, 19.0, snap.Stats.TotalYesShares)
}

func TestHoldersFailures(t *testing.T) {
	cfg := testConfig()
	cfg.Holders.PageSize = 1

	for name, upstreamErr := range map[string]error{
		"bad gateway": errors.New("502"),
		"timeout":     context.DeadlineExceeded,
	} {
		t.Run(name, func(t *testing.T) {
			first := &fakeData{holderErrs: map[int]error{0: upstreamErr}}
			snap, err := NewHolderService(first, cfg, nopLogger{}).Holders(context.Background(), "m", 10)
			require.NoError(t, err)
			assert.Equal(t, "m", snap.Market)
			assert.Empty(t, snap.Holders)
			assert.Equal(t, 0, snap.Stats.TotalHolders)
			assert.Equal(t, 50, snap.Stats.YesPct)
		})
	}

	later := &fakeData{
		holderPages: map[int][]utils.Record{0: {holderGroup(holder(walletA, 3, 0, ""))}},
		holderErrs:  map[int]error{1: errors.New("502")},
	}
	snap, err := NewHolderService(later, cfg, nopLogger{}).Holders(context.Background(), "m", 10)
	require.NoError(t, err)
	assert.Len(t, snap.Holders, 1)
}

func TestHolderRecordFrom(t *testing.T) {
	rec := HolderRecordFrom(utils.Record{
		"wallet":                walletA,
		"pseudonym":             "Quiet-Fox",
		"displayUsernamePublic": true,
		"amount":                "12.5",
		"outcomeIndex":          "1",
		"profileImageOptimized": "img.png",
	})
	assert.Equal(t, walletA, rec.Wallet)
	assert.Equal(t, "Quiet-Fox", rec.Pseudonym)
	assert.True(t, rec.DisplayPublic)
	assert.Equal(t, "12.5", rec.Amount.String())
	assert.Equal(t, 1, rec.OutcomeIndex)
	assert.Equal(t, "img.png", rec.ProfileImage)

	assert.Equal(t, 0, HolderRecordFrom(utils.Record{"proxyWallet": walletA, "outcomeIndex": 0}).OutcomeIndex)
	assert.Equal(t, 0, HolderRecordFrom(utils.Record{"proxyWallet": walletA, "outcomeIndex": "0"}).OutcomeIndex)
}

func TestHolderWithoutOutcomeIndexIsNo(t *testing.T) {
	for name, raw := range map[string]utils.Record{
		"missing": {"proxyWallet": walletA, "amount": "5"},
		"null":    {"proxyWallet": walletA, "amount": "5", "outcomeIndex": nil},
		"blank":   {"proxyWallet": walletA, "amount": "5", "outcomeIndex": ""},
		"garbage": {"proxyWallet": walletA, "amount": "5", "outcomeIndex": "yes"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := HolderRecordFrom(raw)
			assert.Equal(t, -1, rec.OutcomeIndex)
			assert.Equal(t, entity.SideNo, entity.SideFromIndex(rec.OutcomeIndex))
		})
	}

	cfg := testConfig()
	data := &fakeData{holderPages: map[int][]utils.Record{
		0: {holderGroup(map[string]any{"proxyWallet": walletA, "amount": "5"})},
	}}
	snap, err := NewHolderService(data, cfg, nopLogger{}).Holders(context.Background(), "m", 10)
	require.NoError(t, err)
	require.Len(t, snap.Holders, 1)
	assert.Equal(t, entity.SideNo, snap.Holders[0].Outcome)
	assert.Equal(t, 1, snap.Stats.NoHolders)
	assert.Equal(t, 0, snap.Stats.YesPct)
}
