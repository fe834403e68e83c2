package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// UpstreamConfig describes the Polymarket hosts and how hard we are allowed to hit them.
type UpstreamConfig struct {
	GammaBaseURL         string `yaml:"gammaBaseURL"`
	DataBaseURL          string `yaml:"dataBaseURL"`
	ClobBaseURL          string `yaml:"clobBaseURL"`
	UserAgent            string `yaml:"userAgent"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
	MaxConnsPerHost      int    `yaml:"maxConnsPerHost"`
}

// HoldersConfig drives the wallet aggregator and the holders pagination.
type HoldersConfig struct {
	PageSize      int      `yaml:"pageSize"`
	MaxPages      int      `yaml:"maxPages"`
	DefaultLimit  int      `yaml:"defaultLimit"`
	MaxLimit      int      `yaml:"maxLimit"`
	DustThreshold float64  `yaml:"dustThreshold"`
	BotAddresses  []string `yaml:"botAddresses"`
	DedupeByName  *bool    `yaml:"dedupeByName"`
	TimeoutMillis int64    `yaml:"timeoutMillis"`
}

// CatalogConfig drives the markets listing and the tag → category tables.
type CatalogConfig struct {
	PageSize       int                 `yaml:"pageSize"`
	MaxPages       int                 `yaml:"maxPages"`
	MaxEvents      int                 `yaml:"maxEvents"`
	DefaultPerPage int                 `yaml:"defaultPerPage"`
	MaxPerPage     int                 `yaml:"maxPerPage"`
	MaxOutcomes    int                 `yaml:"maxOutcomes"`
	TimeoutMillis  int64               `yaml:"timeoutMillis"`
	HideUntraded   bool                `yaml:"hideUntraded"` // drop zero-volume outcomes that still have liquidity
	TagGroups      map[string][]string `yaml:"tagGroups"`
	ExcludedTags   map[string][]string `yaml:"excludedTags"`
	TitleKeywords  map[string][]string `yaml:"titleKeywords"`
}

// SearchConfig holds the parallel search fan-out settings.
type SearchConfig struct {
	BatchSize      int   `yaml:"batchSize"`
	Batches        int   `yaml:"batches"`
	MinQueryLength int   `yaml:"minQueryLength"`
	DefaultLimit   int   `yaml:"defaultLimit"`
	MaxLimit       int   `yaml:"maxLimit"`
	TimeoutMillis  int64 `yaml:"timeoutMillis"`
}

// ProfileConfig holds wallet profile settings.
type ProfileConfig struct {
	PositionsLimit int   `yaml:"positionsLimit"`
	ActivityLimit  int   `yaml:"activityLimit"`
	HistoryDays    int   `yaml:"historyDays"`
	TopPositions   int   `yaml:"topPositions"`
	RecentActivity int   `yaml:"recentActivity"`
	TimeoutMillis  int64 `yaml:"timeoutMillis"`
}

// LeaderboardConfig holds leaderboard settings.
type LeaderboardConfig struct {
	DefaultWindow string `yaml:"defaultWindow"`
	DefaultLimit  int    `yaml:"defaultLimit"`
	MaxLimit      int    `yaml:"maxLimit"`
}

// PricesConfig maps a requested interval to the CLOB fidelity (minutes between points).
type PricesConfig struct {
	Intervals       map[string]int `yaml:"intervals"`
	DefaultInterval string         `yaml:"defaultInterval"`
	MaxPoints       int            `yaml:"maxPoints"`
	TimeoutMillis   int64          `yaml:"timeoutMillis"`
}

// CommentsConfig holds comments settings.
type CommentsConfig struct {
	DefaultLimit  int   `yaml:"defaultLimit"`
	MaxLimit      int   `yaml:"maxLimit"`
	TimeoutMillis int64 `yaml:"timeoutMillis"`
}

// TagConfig is a single fallback tag.
type TagConfig struct {
	ID    string `yaml:"id"`
	Slug  string `yaml:"slug"`
	Label string `yaml:"label"`
}

// TagsConfig holds the tag taxonomy settings.
type TagsConfig struct {
	Fallback      []TagConfig `yaml:"fallback"`
	TimeoutMillis int64       `yaml:"timeoutMillis"`
}

// AnalysisConfig configures the LLM market analysis endpoint.
type AnalysisConfig struct {
	BaseURL       string  `yaml:"baseURL"`
	APIKey        string  `yaml:"apiKey"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	MaxTokens     int     `yaml:"maxTokens"`
	TimeoutMillis int64   `yaml:"timeoutMillis"`
}

// MetricsConfig holds the prometheus endpoint settings.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig      `yaml:"server"`
	Logging      LoggingConfig     `yaml:"logging"`
	Upstream     UpstreamConfig    `yaml:"upstream"`
	CacheControl map[string]int    `yaml:"cacheControl"` // endpoint name -> s-maxage seconds
	Holders      HoldersConfig     `yaml:"holders"`
	Catalog      CatalogConfig     `yaml:"catalog"`
	Search       SearchConfig      `yaml:"search"`
	Profile      ProfileConfig     `yaml:"profile"`
	Leaderboard  LeaderboardConfig `yaml:"leaderboard"`
	Prices       PricesConfig      `yaml:"prices"`
	Comments     CommentsConfig    `yaml:"comments"`
	Tags         TagsConfig        `yaml:"tags"`
	Analysis     AnalysisConfig    `yaml:"analysis"`
	Metrics      MetricsConfig     `yaml:"metrics"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file is not an error: the service runs on defaults alone.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.Analysis.APIKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
}

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	setString(&cfg.Server.Port, "8080", "Server.Port")
	if !strings.HasPrefix(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	setInt(&cfg.Server.ReadTimeoutSeconds, 15, "Server.ReadTimeoutSeconds")
	setInt(&cfg.Server.WriteTimeoutSeconds, 60, "Server.WriteTimeoutSeconds")
	setInt(&cfg.Server.IdleTimeoutSeconds, 120, "Server.IdleTimeoutSeconds")

	setString(&cfg.Logging.Level, "info", "Logging.Level")
	setInt(&cfg.Logging.MaxSizeMB, 100, "Logging.MaxSizeMB")
	setInt(&cfg.Logging.MaxBackups, 5, "Logging.MaxBackups")
	setInt(&cfg.Logging.MaxAgeDays, 14, "Logging.MaxAgeDays")

	setString(&cfg.Upstream.GammaBaseURL, "https://gamma-api.polymarket.com", "Upstream.GammaBaseURL")
	setString(&cfg.Upstream.DataBaseURL, "https://data-api.polymarket.com", "Upstream.DataBaseURL")
	setString(&cfg.Upstream.ClobBaseURL, "https://clob.polymarket.com", "Upstream.ClobBaseURL")
	setString(&cfg.Upstream.UserAgent, "Mozilla/5.0 (compatible; polydash/1.0)", "Upstream.UserAgent")
	setInt64(&cfg.Upstream.RequestTimeoutMillis, 10000, "Upstream.RequestTimeoutMillis")
	setInt(&cfg.Upstream.RateLimit, 20, "Upstream.RateLimit")
	setInt(&cfg.Upstream.BurstLimit, 40, "Upstream.BurstLimit")
	setInt(&cfg.Upstream.MaxConnsPerHost, 64, "Upstream.MaxConnsPerHost")

	if cfg.CacheControl == nil {
		cfg.CacheControl = make(map[string]int)
	}
	for endpoint, seconds := range defaultCacheControl {
		if _, ok := cfg.CacheControl[endpoint]; !ok {
			cfg.CacheControl[endpoint] = seconds
		}
	}

	setInt(&cfg.Holders.PageSize, 500, "Holders.PageSize")
	setInt(&cfg.Holders.MaxPages, 4, "Holders.MaxPages")
	setInt(&cfg.Holders.DefaultLimit, 50, "Holders.DefaultLimit")
	setInt(&cfg.Holders.MaxLimit, 200, "Holders.MaxLimit")
	if cfg.Holders.DustThreshold <= 0 {
		cfg.Holders.DustThreshold = 1
	}
	if cfg.Holders.BotAddresses == nil {
		cfg.Holders.BotAddresses = append([]string(nil), defaultBotAddresses...)
		logrus.Infof("Holders.BotAddresses not set, defaulting to %d built-in addresses", len(cfg.Holders.BotAddresses))
	}
	if cfg.Holders.DedupeByName == nil {
		enabled := true
		cfg.Holders.DedupeByName = &enabled
	}
	setInt64(&cfg.Holders.TimeoutMillis, 8000, "Holders.TimeoutMillis")

	setInt(&cfg.Catalog.PageSize, 100, "Catalog.PageSize")
	setInt(&cfg.Catalog.MaxPages, 15, "Catalog.MaxPages")
	setInt(&cfg.Catalog.MaxEvents, 1500, "Catalog.MaxEvents")
	setInt(&cfg.Catalog.DefaultPerPage, 100, "Catalog.DefaultPerPage")
	setInt(&cfg.Catalog.MaxPerPage, 100, "Catalog.MaxPerPage")
	setInt(&cfg.Catalog.MaxOutcomes, 5, "Catalog.MaxOutcomes")
	setInt64(&cfg.Catalog.TimeoutMillis, 8000, "Catalog.TimeoutMillis")
	if cfg.Catalog.TagGroups == nil {
		cfg.Catalog.TagGroups = copyTable(defaultTagGroups)
	}
	if cfg.Catalog.ExcludedTags == nil {
		cfg.Catalog.ExcludedTags = copyTable(defaultExcludedTags)
	}
	if cfg.Catalog.TitleKeywords == nil {
		cfg.Catalog.TitleKeywords = copyTable(defaultTitleKeywords)
	}

	setInt(&cfg.Search.BatchSize, 500, "Search.BatchSize")
	setInt(&cfg.Search.Batches, 6, "Search.Batches")
	setInt(&cfg.Search.MinQueryLength, 2, "Search.MinQueryLength")
	setInt(&cfg.Search.DefaultLimit, 20, "Search.DefaultLimit")
	setInt(&cfg.Search.MaxLimit, 50, "Search.MaxLimit")
	setInt64(&cfg.Search.TimeoutMillis, 5000, "Search.TimeoutMillis")

	setInt(&cfg.Profile.PositionsLimit, 100, "Profile.PositionsLimit")
	setInt(&cfg.Profile.ActivityLimit, 100, "Profile.ActivityLimit")
	setInt(&cfg.Profile.HistoryDays, pnlHistoryDays, "Profile.HistoryDays")
	setInt(&cfg.Profile.TopPositions, 50, "Profile.TopPositions")
	setInt(&cfg.Profile.RecentActivity, 30, "Profile.RecentActivity")
	setInt64(&cfg.Profile.TimeoutMillis, 10000, "Profile.TimeoutMillis")

	setString(&cfg.Leaderboard.DefaultWindow, "all", "Leaderboard.DefaultWindow")
	setInt(&cfg.Leaderboard.DefaultLimit, 200, "Leaderboard.DefaultLimit")
	setInt(&cfg.Leaderboard.MaxLimit, 500, "Leaderboard.MaxLimit")

	if cfg.Prices.Intervals == nil {
		cfg.Prices.Intervals = map[string]int{"1h": 1, "6h": 5, "1d": 30, "1w": 120, "max": 720}
	}
	setString(&cfg.Prices.DefaultInterval, "1d", "Prices.DefaultInterval")
	setInt(&cfg.Prices.MaxPoints, 200, "Prices.MaxPoints")
	setInt64(&cfg.Prices.TimeoutMillis, 8000, "Prices.TimeoutMillis")

	setInt(&cfg.Comments.DefaultLimit, 50, "Comments.DefaultLimit")
	setInt(&cfg.Comments.MaxLimit, 100, "Comments.MaxLimit")
	setInt64(&cfg.Comments.TimeoutMillis, 5000, "Comments.TimeoutMillis")

	if len(cfg.Tags.Fallback) == 0 {
		cfg.Tags.Fallback = append([]TagConfig(nil), defaultFallbackTags...)
	}
	setInt64(&cfg.Tags.TimeoutMillis, 5000, "Tags.TimeoutMillis")

	setString(&cfg.Analysis.BaseURL, "https://api.groq.com/openai/v1", "Analysis.BaseURL")
	setString(&cfg.Analysis.Model, "llama-3.3-70b-versatile", "Analysis.Model")
	if cfg.Analysis.Temperature <= 0 {
		cfg.Analysis.Temperature = 0.7
	}
	setInt(&cfg.Analysis.MaxTokens, 500, "Analysis.MaxTokens")
	setInt64(&cfg.Analysis.TimeoutMillis, 30000, "Analysis.TimeoutMillis")

	if cfg.Metrics.Enabled == nil {
		enabled := true
		cfg.Metrics.Enabled = &enabled
	}
	setString(&cfg.Metrics.Path, "/metrics", "Metrics.Path")
}

// The profile PnL history is always the trailing 30 UTC days.
const pnlHistoryDays = 30

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if _, ok := c.Prices.Intervals[c.Prices.DefaultInterval]; !ok {
		return fmt.Errorf("prices.defaultInterval %q is not one of the configured intervals", c.Prices.DefaultInterval)
	}
	if c.Profile.HistoryDays != pnlHistoryDays {
		return fmt.Errorf("profile.historyDays must be %d, got %d", pnlHistoryDays, c.Profile.HistoryDays)
	}
	if c.Holders.DefaultLimit > c.Holders.MaxLimit {
		return fmt.Errorf("holders.defaultLimit (%d) exceeds holders.maxLimit (%d)", c.Holders.DefaultLimit, c.Holders.MaxLimit)
	}
	for category := range c.Catalog.ExcludedTags {
		if _, ok := c.Catalog.TagGroups[category]; !ok {
			logrus.Warnf("Catalog.ExcludedTags has category %q without a matching tag group", category)
		}
	}
	return nil
}

// CacheSeconds returns the s-maxage for an endpoint, 0 when caching is disabled for it.
func (c *Config) CacheSeconds(endpoint string) int {
	return c.CacheControl[endpoint]
}

func setString(field *string, def, name string) {
	if *field == "" {
		*field = def
		logrus.Debugf("%s not set, defaulting to %s", name, def)
	}
}

func setInt(field *int, def int, name string) {
	if *field <= 0 {
		*field = def
		logrus.Debugf("%s not set, defaulting to %d", name, def)
	}
}

func setInt64(field *int64, def int64, name string) {
	if *field <= 0 {
		*field = def
		logrus.Debugf("%s not set, defaulting to %d", name, def)
	}
}

func copyTable(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}
