package entity

// Comment is one normalized event comment.
type Comment struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	TimeAgo   string `json:"timeAgo"`
	CreatedAt any    `json:"createdAt"`
	Likes     int    `json:"likes"`
	Replies   int    `json:"replies"`
	UserImage string `json:"userImage"`
}

// CommentThread is the comments view of an event.
type CommentThread struct {
	Slug     string    `json:"slug"`
	Count    int       `json:"count"`
	Comments []Comment `json:"data"`
	Note     string    `json:"note,omitempty"`
}

// Tag is one entry of the tag taxonomy.
type Tag struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// TagList is the tag taxonomy, Fallback set when the built-in list was served.
type TagList struct {
	Tags     []Tag `json:"data"`
	Fallback bool  `json:"fallback,omitempty"`
}

// PricePoint is one price sample, timestamp in unix milliseconds, price 0–100.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// PriceStats summarises a price series, rounded to one decimal.
type PriceStats struct {
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	DataPoints    int     `json:"dataPoints"`
}

// PriceHistory is the YES-token price series of one market.
type PriceHistory struct {
	Market       string       `json:"market"`
	TokenID      *string      `json:"tokenId"`
	Outcome      string       `json:"outcome"`
	CurrentPrice float64      `json:"currentPrice"`
	Interval     string       `json:"interval"`
	Stats        PriceStats   `json:"stats"`
	History      []PricePoint `json:"history"`
}

// AnalysisRequest is the body of a market analysis request.
type AnalysisRequest struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	ImpliedPct float64 `json:"impliedPct"`
}

// NewsLinks are search links for the analysed market.
type NewsLinks struct {
	Google  string `json:"google"`
	Reuters string `json:"reuters"`
}

// Analysis is an LLM-generated market analysis.
type Analysis struct {
	Analysis  string    `json:"analysis"`
	NewsLinks NewsLinks `json:"newsLinks"`
}
