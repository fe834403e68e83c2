package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "https://gamma-api.polymarket.com", cfg.Upstream.GammaBaseURL)
	assert.Equal(t, 500, cfg.Holders.PageSize)
	assert.Equal(t, 4, cfg.Holders.MaxPages)
	assert.Equal(t, 1.0, cfg.Holders.DustThreshold)
	assert.Contains(t, cfg.Holders.BotAddresses, "0xa5ef0eba2fa70f6c72bc32bd604fffd11e04c966")
	require.NotNil(t, cfg.Holders.DedupeByName)
	assert.True(t, *cfg.Holders.DedupeByName)
	assert.Equal(t, 1500, cfg.Catalog.MaxEvents)
	assert.Contains(t, cfg.Catalog.TagGroups["sports"], "nfl")
	assert.Equal(t, 30, cfg.Prices.Intervals["1d"])
	assert.Equal(t, 3600, cfg.CacheSeconds("tags"))
	assert.Equal(t, 0, cfg.CacheSeconds("debug"))
	assert.Len(t, cfg.Tags.Fallback, 6)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Analysis.Model)
	assert.True(t, *cfg.Metrics.Enabled)
}

func TestLoadFileWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
server:
  port: "9090"
holders:
  maxLimit: 100
  defaultLimit: 20
  botAddresses: ["0x1111111111111111111111111111111111111111"]
  dedupeByName: false
cacheControl:
  markets: 15
catalog:
  tagGroups:
    sports: ["nfl"]
metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("GROQ_API_KEY", "secret")
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Holders.MaxLimit)
	assert.Equal(t, []string{"0x1111111111111111111111111111111111111111"}, cfg.Holders.BotAddresses)
	assert.False(t, *cfg.Holders.DedupeByName)
	assert.Equal(t, 15, cfg.CacheSeconds("markets"))
	assert.Equal(t, 30, cfg.CacheSeconds("event"))
	assert.Equal(t, []string{"nfl"}, cfg.Catalog.TagGroups["sports"])
	assert.Equal(t, "secret", cfg.Analysis.APIKey)
	assert.False(t, *cfg.Metrics.Enabled)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  defaultInterval: 3d\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3d")

	require.NoError(t, os.WriteFile(path, []byte("profile:\n  historyDays: 7\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "historyDays")

	require.NoError(t, os.WriteFile(path, []byte("holders: [oops"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
}
