package entity

// TraderStat is one leaderboard row.
type TraderStat struct {
	Rank      int     `json:"rank"`
	Wallet    string  `json:"wallet"`
	Username  string  `json:"username"`
	Pnl       float64 `json:"pnl"`
	Volume    float64 `json:"volume"`
	Positions int     `json:"positions"`
	Verified  bool    `json:"verified"`
	Roi       float64 `json:"roi"`
}

// Position is an open wallet position as shown on a profile. Prices are on the upstream 0–1 scale.
type Position struct {
	Market       string  `json:"market"`
	Slug         string  `json:"slug"`
	Outcome      string  `json:"outcome"`
	Size         float64 `json:"size"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	InitialValue float64 `json:"initialValue"`
	CurrentValue float64 `json:"currentValue"`
	Pnl          float64 `json:"pnl"`
	PnlPercent   float64 `json:"pnlPercent"`
	RealizedPnl  float64 `json:"realizedPnl"`
	Image        string  `json:"image"`
}

// PositionSummary is the compact position row of the positions endpoint. AvgPrice is 0–100.
type PositionSummary struct {
	Market   string      `json:"market"`
	Slug     string      `json:"slug"`
	Side     OutcomeSide `json:"side"`
	Size     float64     `json:"size"`
	AvgPrice int         `json:"avgPrice"`
	Pnl      float64     `json:"pnl"`
}

// Activity types and sides as reported by the data API.
const (
	ActivityTrade = "TRADE"
	SideBuy       = "BUY"
	SideSell      = "SELL"
)

// Activity is one wallet activity record.
type Activity struct {
	Type      string  `json:"type"`
	Market    string  `json:"market"`
	Slug      string  `json:"slug"`
	Side      string  `json:"side"`
	Outcome   string  `json:"outcome"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
	UsdcSize  float64 `json:"usdcSize"`
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
}

// PnlHistoryPoint is the signed cash flow of one UTC calendar day.
type PnlHistoryPoint struct {
	Date string  `json:"date"`
	Pnl  float64 `json:"pnl"`
}

// StreakKind is the sign of a streak.
type StreakKind string

const (
	StreakWinning StreakKind = "winning"
	StreakLosing  StreakKind = "losing"
	StreakNone    StreakKind = "none"
)

// Streak is the run of same-signed results starting from the best position.
type Streak struct {
	Length int        `json:"length"`
	Kind   StreakKind `json:"type"`
}

// TraderType is the coarse trader classification.
type TraderType string

const (
	TraderCasual      TraderType = "Casual"
	TraderActive      TraderType = "Active"
	TraderHighVolume  TraderType = "High Volume"
	TraderSharp       TraderType = "Sharp"
	TraderWhale       TraderType = "Whale"
	TraderDiversified TraderType = "Diversified"
)

// ProfileStats is the summary block of a wallet profile.
type ProfileStats struct {
	PortfolioValue   float64 `json:"portfolioValue"`
	TotalPnl         float64 `json:"totalPnl"`
	TotalInvested    float64 `json:"totalInvested"`
	TotalVolume      float64 `json:"totalVolume"`
	PositionsCount   int     `json:"positionsCount"`
	MarketsCount     int     `json:"marketsCount"`
	TradesCount      int     `json:"tradesCount"`
	WinRate          int     `json:"winRate"`
	Roi              float64 `json:"roi"`
	WinningPositions int     `json:"winningPositions"`
	LosingPositions  int     `json:"losingPositions"`
	AvgTradeSize     float64 `json:"avgTradeSize"`
	Volatility       float64 `json:"volatility"`
}

// WalletProfile is the full profile view of one wallet.
type WalletProfile struct {
	Wallet         string            `json:"wallet"`
	Stats          ProfileStats      `json:"stats"`
	Positions      []Position        `json:"positions"`
	RecentActivity []Activity        `json:"recentActivity"`
	PnlHistory     []PnlHistoryPoint `json:"pnlHistory"`
	Streak         Streak            `json:"streak"`
	TraderType     TraderType        `json:"traderType"`
}
