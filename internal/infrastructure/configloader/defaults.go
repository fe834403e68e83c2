package configloader

var defaultCacheControl = map[string]int{
	"markets":     60,
	"event":       30,
	"search":      120,
	"holders":     30,
	"profile":     30,
	"positions":   30,
	"leaderboard": 60,
	"prices":      60,
	"comments":    60,
	"tags":        3600,
	"proxy":       30,
}

// Known proxy/exchange contracts that show up as holders but are not people.
var defaultBotAddresses = []string{
	"0xa5ef0eba2fa70f6c72bc32bd604fffd11e04c966",
	"0x0000000000000000000000000000000000000000",
}

var defaultTagGroups = map[string][]string{
	"sports": {"sports", "nfl", "nba", "mlb", "nhl", "soccer", "football", "basketball", "baseball", "hockey",
		"tennis", "golf", "mma", "ufc", "boxing", "cricket", "rugby", "f1", "racing", "olympics", "esports",
		"premier-league", "champions-league", "world-cup", "super-bowl", "nascar", "pga", "atp", "wta", "fifa"},
	"politics": {"politics", "world-elections", "us-elections", "elections", "government", "policy",
		"global-elections", "congress", "senate", "president", "trump", "biden", "democrat", "republican",
		"vote", "ballot"},
	"crypto": {"crypto", "bitcoin", "ethereum", "defi", "nft", "web3", "blockchain", "btc", "eth", "solana",
		"sol", "xrp", "altcoin", "token", "binance", "coinbase"},
	"entertainment": {"pop-culture", "entertainment", "movies", "tv", "music", "celebrities", "awards",
		"box-office", "oscars", "grammys", "emmys", "netflix", "streaming", "hollywood", "celebrity"},
	"business": {"business", "finance", "stocks", "economy", "markets", "tech", "companies", "earnings", "ipo",
		"merger", "acquisition", "wall-street", "fed", "interest-rate"},
	"science": {"science", "technology", "space", "health", "ai", "climate", "nasa", "spacex",
		"artificial-intelligence", "medicine", "vaccine", "research"},
}

var defaultExcludedTags = map[string][]string{
	"sports":        {"inflation", "economy", "fed", "interest-rate", "politics", "trump", "biden", "crypto", "bitcoin", "ai"},
	"politics":      {"sports", "nfl", "nba", "entertainment", "crypto"},
	"crypto":        {"sports", "politics", "entertainment"},
	"entertainment": {"sports", "politics", "crypto", "economy"},
	"business":      {"sports", "entertainment"},
	"science":       {"sports", "entertainment", "politics"},
}

// Whole-word keywords that mark an event title as belonging to a category.
var defaultTitleKeywords = map[string][]string{
	"sports": {"nfl", "nba", "mlb", "nhl", "soccer", "football", "basketball", "baseball", "hockey", "tennis",
		"golf", "ufc", "mma", "boxing", "super bowl", "world cup", "championship", "playoffs", "finals",
		"match", "game", "team", "score", "win", "lose"},
	"politics": {"trump", "biden", "president", "election", "vote", "congress", "senate", "republican",
		"democrat", "political", "government", "policy"},
	"crypto": {"bitcoin", "ethereum", "btc", "eth", "crypto", "blockchain", "token", "solana", "xrp",
		"binance", "coinbase"},
	"business": {"inflation", "interest rate", "fed", "federal reserve", "economy", "gdp", "stock", "market",
		"earnings", "ipo", "recession"},
}

var defaultFallbackTags = []TagConfig{
	{ID: "sports", Slug: "sports", Label: "Sports"},
	{ID: "politics", Slug: "politics", Label: "Politics"},
	{ID: "crypto", Slug: "crypto", Label: "Crypto"},
	{ID: "pop-culture", Slug: "pop-culture", Label: "Pop Culture"},
	{ID: "business", Slug: "business", Label: "Business"},
	{ID: "science", Slug: "science", Label: "Science"},
}
