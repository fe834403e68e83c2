package entity

// Outcome is one normalized market of an event. Prices are 0–100.
type Outcome struct {
	ID           string  `json:"id"`
	ConditionID  string  `json:"conditionId"`
	Name         string  `json:"name"`
	FullQuestion string  `json:"fullQuestion"`
	YesPrice     int     `json:"yesPrice"`
	NoPrice      int     `json:"noPrice"`
	Volume       float64 `json:"volume"`
	Liquidity    float64 `json:"liquidity"`
	Image        string  `json:"image"`
	IsDummy      bool    `json:"isDummy"`
}

// OutcomeSummary is the compact outcome row of a market card.
type OutcomeSummary struct {
	ID          string  `json:"id"`
	ConditionID string  `json:"conditionId"`
	Name        string  `json:"name"`
	Price       int     `json:"price"`
	Volume      float64 `json:"volume"`
	Liquidity   float64 `json:"liquidity"`
}

// Summary converts an outcome into its card form.
func (o Outcome) Summary() OutcomeSummary {
	return OutcomeSummary{
		ID:          o.ID,
		ConditionID: o.ConditionID,
		Name:        o.Name,
		Price:       o.YesPrice,
		Volume:      o.Volume,
		Liquidity:   o.Liquidity,
	}
}

// EventDetail is the full view of one event.
type EventDetail struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Volume       float64   `json:"volume"`
	Liquidity    float64   `json:"liquidity"`
	EndDate      string    `json:"endDate"`
	StartDate    string    `json:"startDate"`
	CommentCount int       `json:"commentCount"`
	Outcomes     []Outcome `json:"outcomes"`
	DummyCount   int       `json:"dummyCount"`
}

// MarketCard is one event in a listing or search result.
type MarketCard struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Title         string           `json:"title"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Tags          []string         `json:"tags"`
	TitleKeywords []string         `json:"titleKeywords,omitempty"`
	Volume        float64          `json:"volume"`
	Liquidity     float64          `json:"liquidity"`
	EndDate       string           `json:"endDate"`
	CommentCount  int              `json:"commentCount"`
	OutcomesCount int              `json:"outcomesCount"`
	Outcomes      []OutcomeSummary `json:"outcomes"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// MarketPage is one page of the markets listing.
type MarketPage struct {
	Pagination Pagination   `json:"pagination"`
	Tag        string       `json:"tag"`
	Markets    []MarketCard `json:"data"`
}

// SearchResult is the outcome of a free-text market search.
type SearchResult struct {
	Query    string       `json:"query"`
	Count    int          `json:"count"`
	Searched int          `json:"searched"`
	Markets  []MarketCard `json:"data"`
}

// MarketDebug exposes the raw fields of one upstream market.
type MarketDebug struct {
	Index             int      `json:"index"`
	ID                any      `json:"id"`
	ConditionID       any      `json:"conditionId"`
	Question          any      `json:"question"`
	GroupItemTitle    any      `json:"groupItemTitle"`
	Outcome           any      `json:"outcome"`
	OutcomePrices     any      `json:"outcomePrices"`
	OutcomePricesType string   `json:"outcomePricesType"`
	BestAsk           any      `json:"bestAsk"`
	BestBid           any      `json:"bestBid"`
	Volume            any      `json:"volume"`
	AllKeys           []string `json:"allKeys"`
}

// EventDebug is the raw inspection view of an event.
type EventDebug struct {
	EventTitle   string        `json:"eventTitle"`
	EventSlug    string        `json:"eventSlug"`
	TotalMarkets int           `json:"totalMarkets"`
	Markets      []MarketDebug `json:"markets"`
}
