package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"title":     "",
		"question":  "Will it rain?",
		"size":      "12.5",
		"curValue":  float64(3),
		"bad":       "abc",
		"nan":       "NaN",
		"verified":  true,
		"nested":    map[string]any{"name": "alice"},
		"positions": []any{map[string]any{"id": "1"}, "junk", map[string]any{"id": "2"}},
	}

	assert.Equal(t, "Will it rain?", r.Str("title", "question"))
	assert.Equal(t, "3", r.Str("curValue"))
	assert.Equal(t, "", r.Str("missing", "nested"))

	assert.Equal(t, 12.5, r.Float("size"))
	assert.Equal(t, 3.0, r.Float("bad", "curValue"))
	assert.Equal(t, 0.0, r.Float("nan"))
	assert.Equal(t, int64(12), r.Int("size"))

	assert.True(t, r.Bool("verified"))
	assert.False(t, r.Bool("missing"))

	require.NotNil(t, r.Obj("nested"))
	assert.Equal(t, "alice", r.Obj("nested").Str("name"))
	assert.Nil(t, r.Obj("title"))

	items := r.List("positions")
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[1].Str("id"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"numeric string", "5", "5"},
		{"padded string", " 2.25 ", "2.25"},
		{"float", 3.5, "3.5"},
		{"int", 7, "7"},
		{"garbage", "lots", "0"},
		{"trailing garbage", "5abc", "0"},
		{"nil", nil, "0"},
		{"nan", math.NaN(), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in).String())
		})
	}
}

func TestRatioPercent(t *testing.T) {
	assert.Equal(t, 0.0, RatioPercent(1000, 0))
	assert.Equal(t, 0.0, RatioPercent(1000, -5))
	assert.Equal(t, 0.0, RatioPercent(1000, math.Inf(1)))
	assert.Equal(t, 33.33, RatioPercent(1, 3))
	assert.Equal(t, -50.0, RatioPercent(-50, 100))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 3.0, RoundHalfUp(2.5))
	assert.Equal(t, -2.0, RoundHalfUp(-2.5))
	assert.Equal(t, 12.3, RoundTo(12.34, 1))
	assert.Equal(t, 67, WholePercent(2, 3))
	assert.Equal(t, 0, WholePercent(1, 0))
	assert.Equal(t, 100, ProbabilityToPercent(1))
	assert.Equal(t, 50, ProbabilityToPercent(0.5))
}

func TestWalletHelpers(t *testing.T) {
	const addr = "0xA5EF0EBA2FA70F6C72BC32BD604FFFD11E04C966"

	assert.Equal(t, "0xa5ef0eba2fa70f6c72bc32bd604fffd11e04c966", NormalizeWallet("  "+addr))
	assert.Equal(t, "0xA5EF...C966", ShortenWallet(addr))
	assert.Equal(t, "0xabc", ShortenWallet("0xabc"))
	assert.True(t, IsHexWallet(addr))
	assert.False(t, IsHexWallet("alice"))
	assert.True(t, IsZeroAddress(ZeroAddress))
	assert.False(t, IsZeroAddress(addr))

	assert.True(t, LooksLikeAddress(addr))
	assert.True(t, LooksLikeAddress("0x1234567890abcdef1234-1712345678901"))
	assert.False(t, LooksLikeAddress("0xPolyWhale"))
	assert.False(t, LooksLikeAddress("Theo4"))
}

func TestOffsetsAndPage(t *testing.T) {
	assert.Equal(t, []int{0, 500, 1000}, Offsets(3, 500))

	items := []string{"a", "b", "c", "d", "e"}
	page, total := Page(items, 2, 2)
	assert.Equal(t, []string{"c", "d"}, page)
	assert.Equal(t, 3, total)
	page, _ = Page(items, 9, 2)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	assert.Equal(t, []string{"a", "b"}, Truncate(items, 2))
	assert.Equal(t, []string{"d", "e"}, Tail(items, 2))
	assert.NotNil(t, Truncate[string](nil, 3))
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 50, ParseLimit("", 50, 200))
	assert.Equal(t, 50, ParseLimit("abc", 50, 200))
	assert.Equal(t, 50, ParseLimit("-3", 50, 200))
	assert.Equal(t, 10, ParseLimit("10", 50, 200))
	assert.Equal(t, 200, ParseLimit("5000", 50, 200))
}
