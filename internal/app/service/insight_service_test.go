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

func newTestInsightService(gamma *fakeGamma, clob *fakeClob) *insightServiceImpl {
	s := NewInsightService(gamma, clob, testConfig(), nopLogger{}).(*insightServiceImpl)
	s.now = func() time.Time { return profileNow }
	return s
}

func TestPriceHistory(t *testing.T) {
	gamma := &fakeGamma{markets: []utils.Record{{
		"conditionId":   "0xcond",
		"outcomePrices": `["0.634","0.366"]`,
		"clobTokenIds":  `["111","222"]`,
	}}}
	clob := &fakeClob{samples: []utils.Record{
		{"t": 1700000060, "p": 0.6},
		{"t": 1700000000, "p": "0.5"},
	}}

	h, err := newTestInsightService(gamma, clob).PriceHistory(context.Background(), "0xcond", "1w")
	require.NoError(t, err)

	assert.Equal(t, "111", clob.tokenID)
	assert.Equal(t, 120, clob.fidelity)
	require.NotNil(t, h.TokenID)
	assert.Equal(t, "111", *h.TokenID)
	assert.Equal(t, "1w", h.Interval)
	assert.Equal(t, "YES", h.Outcome)
	assert.Equal(t, 63.4, h.CurrentPrice)
	require.Len(t, h.History, 2)
	assert.Equal(t, int64(1700000000000), h.History[0].Timestamp)
	assert.Equal(t, 10.0, h.Stats.Change)
	assert.Equal(t, 2, h.Stats.DataPoints)
}

func TestPriceHistoryUnknownIntervalUsesDefault(t *testing.T) {
	gamma := &fakeGamma{markets: []utils.Record{{"clobTokenIds": []any{"111"}}}}
	clob := &fakeClob{}

	h, err := newTestInsightService(gamma, clob).PriceHistory(context.Background(), "0xcond", "5y")
	require.NoError(t, err)
	assert.Equal(t, "1d", h.Interval)
	assert.Equal(t, "1d", clob.interval)
	assert.Equal(t, 30, clob.fidelity)
	assert.Equal(t, 50.0, h.CurrentPrice)
}

func TestPriceHistoryDegradesWithoutSeries(t *testing.T) {
	noToken := &fakeGamma{markets: []utils.Record{{"outcomePrices": []any{"0.25", "0.75"}}}}
	h, err := newTestInsightService(noToken, &fakeClob{}).PriceHistory(context.Background(), "m", "1d")
	require.NoError(t, err)
	assert.Nil(t, h.TokenID)
	assert.NotNil(t, h.History)
	assert.Empty(t, h.History)
	assert.Equal(t, entity.PriceStats{High: 25, Low: 25}, h.Stats)

	withToken := &fakeGamma{markets: []utils.Record{{"clobTokenIds": `["111"]`}}}
	h, err = newTestInsightService(withToken, &fakeClob{err: errors.New("clob down")}).PriceHistory(context.Background(), "m", "1d")
	require.NoError(t, err)
	require.NotNil(t, h.TokenID)
	assert.Empty(t, h.History)
}

func TestPriceHistoryMarketLookup(t *testing.T) {
	_, err := newTestInsightService(&fakeGamma{}, &fakeClob{}).PriceHistory(context.Background(), "m", "1d")
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))

	_, err = newTestInsightService(&fakeGamma{marketsErr: errors.New("down")}, &fakeClob{}).PriceHistory(context.Background(), "m", "1d")
	assert.Equal(t, entity.KindUpstream, entity.KindOf(err))
}

func TestComments(t *testing.T) {
	gamma := &fakeGamma{comments: []utils.Record{
		{"id": "c1", "body": "great market", "user": map[string]any{"name": "bob"}, "createdAt": "2024-03-30T14:04:05Z"},
		{"id": "c2", "text": "  "},
	}}

	thread := newTestInsightService(gamma, nil).Comments(context.Background(), "my-event", 20)
	assert.Equal(t, "my-event", thread.Slug)
	assert.Equal(t, 1, thread.Count)
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "bob", thread.Comments[0].Username)
	assert.Equal(t, "1h ago", thread.Comments[0].TimeAgo)
	assert.Empty(t, thread.Note)

	failed := newTestInsightService(&fakeGamma{commentErr: errors.New("404")}, nil).Comments(context.Background(), "my-event", 20)
	assert.Equal(t, commentsUnavailable, failed.Note)
	assert.NotNil(t, failed.Comments)
	assert.Zero(t, failed.Count)
}

func TestTags(t *testing.T) {
	gamma := &fakeGamma{tags: []utils.Record{{"id": "1", "slug": "nba", "label": "NBA"}}}
	list := newTestInsightService(gamma, nil).Tags(context.Background())
	assert.False(t, list.Fallback)
	assert.Equal(t, []entity.Tag{{ID: "1", Slug: "nba", Label: "NBA"}}, list.Tags)

	for _, g := range []*fakeGamma{{tagsErr: errors.New("down")}, {tags: []utils.Record{}}} {
		list = newTestInsightService(g, nil).Tags(context.Background())
		assert.True(t, list.Fallback)
		assert.Len(t, list.Tags, 6)
		assert.Equal(t, "sports", list.Tags[0].Slug)
	}
}
