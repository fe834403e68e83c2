package service

import (
	"context"
	"net/url"
	"sync"

	"polydash/internal/app/port"
	"polydash/internal/infrastructure/configloader"
	"polydash/internal/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testConfig() *configloader.Config {
	cfg := &configloader.Config{}
	configloader.ApplyDefaults(cfg)
	return cfg
}

type fakeGamma struct {
	mu         sync.Mutex
	eventPages map[int][]utils.Record // offset -> page
	eventErrs  map[int]error
	queries    []port.EventQuery

	bySlug     map[string][]utils.Record
	slugErr    error
	markets    []utils.Record
	marketsErr error
	tags       []utils.Record
	tagsErr    error
	comments   []utils.Record
	commentErr error

	rawEndpoint string
	rawQuery    url.Values
	rawBody     []byte
	rawErr      error
}

func (f *fakeGamma) ListEvents(_ context.Context, q port.EventQuery) ([]utils.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.eventErrs[q.Offset]; err != nil {
		return nil, err
	}
	return f.eventPages[q.Offset], nil
}

func (f *fakeGamma) EventsBySlug(_ context.Context, slug string) ([]utils.Record, error) {
	return f.bySlug[slug], f.slugErr
}

func (f *fakeGamma) MarketsByCondition(context.Context, string) ([]utils.Record, error) {
	return f.markets, f.marketsErr
}

func (f *fakeGamma) Tags(context.Context) ([]utils.Record, error) {
	return f.tags, f.tagsErr
}

func (f *fakeGamma) Comments(context.Context, string, int) ([]utils.Record, error) {
	return f.comments, f.commentErr
}

func (f *fakeGamma) Raw(_ context.Context, endpoint string, query url.Values) ([]byte, error) {
	f.rawEndpoint = endpoint
	f.rawQuery = query
	return f.rawBody, f.rawErr
}

type fakeData struct {
	holderPages map[int][]utils.Record // offset -> groups
	holderErrs  map[int]error
	holderCalls int

	positions    []utils.Record
	positionsErr error
	activity     []utils.Record
	activityErr  error
	value        float64
	valueErr     error

	leaderboard    []utils.Record
	leaderboardErr error
}

func (f *fakeData) Holders(_ context.Context, _ string, _, offset int) ([]utils.Record, error) {
	f.holderCalls++
	if err := f.holderErrs[offset]; err != nil {
		return nil, err
	}
	return f.holderPages[offset], nil
}

func (f *fakeData) Positions(context.Context, string, int) ([]utils.Record, error) {
	return f.positions, f.positionsErr
}

func (f *fakeData) Activity(context.Context, string, int) ([]utils.Record, error) {
	return f.activity, f.activityErr
}

func (f *fakeData) PortfolioValue(context.Context, string) (float64, error) {
	return f.value, f.valueErr
}

func (f *fakeData) Leaderboard(context.Context, string, int) ([]utils.Record, error) {
	return f.leaderboard, f.leaderboardErr
}

type fakeClob struct {
	samples  []utils.Record
	err      error
	tokenID  string
	interval string
	fidelity int
}

func (f *fakeClob) PriceHistory(_ context.Context, tokenID, interval string, fidelity int) ([]utils.Record, error) {
	f.tokenID, f.interval, f.fidelity = tokenID, interval, fidelity
	return f.samples, f.err
}

type fakeLLM struct {
	reply    string
	err      error
	messages []port.ChatMessage
}

func (f *fakeLLM) Complete(_ context.Context, messages []port.ChatMessage) (string, error) {
	f.messages = messages
	return f.reply, f.err
}
