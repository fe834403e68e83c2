package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var willWinPattern = regexp.MustCompile(`(?i)^Will (.+?) win`)

const defaultCategory = "general"

// NormalizeOptions is the single knob set shared by the listing, search and event pipelines.
type NormalizeOptions struct {
	// IncludeZeroVolume keeps outcomes that never traded but still have liquidity.
	IncludeZeroVolume bool
	// StrictTagMatching rejects cards carrying a tag or title keyword blocked for the requested category.
	StrictTagMatching bool
	// DedupeByName keeps only the highest-volume outcome per name within one event.
	DedupeByName bool
	// MaxOutcomes caps the outcomes of a card, <= 0 keeps all.
	MaxOutcomes int
}

// OutcomePrices parses the upstream outcomePrices field, a JSON-encoded string or an array.
func OutcomePrices(v any) ([]float64, bool) {
	var raw []any
	switch val := v.(type) {
	case string:
		if err := json.Unmarshal([]byte(val), &raw); err != nil {
			return nil, false
		}
	case []any:
		raw = val
	default:
		return nil, false
	}
	if len(raw) == 0 {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, p := range raw {
		out[i] = utils.ToFloat(p)
	}
	return out, true
}

// ResolvePrices returns the YES and NO prices of a market on the 0–100 scale:
// outcomePrices first, then bestAsk, then an even split.
func ResolvePrices(m utils.Record) (yes, no int) {
	if prices, ok := OutcomePrices(m["outcomePrices"]); ok {
		yes = utils.ProbabilityToPercent(prices[0])
		no = 100 - yes
		if len(prices) > 1 {
			no = utils.ProbabilityToPercent(prices[1])
		}
		return yes, no
	}
	if ask := m.Float("bestAsk"); ask > 0 {
		yes = utils.ProbabilityToPercent(ask)
		return yes, 100 - yes
	}
	return 50, 50
}

// ResolveOutcomeName picks the display name of a market within its event.
func ResolveOutcomeName(m utils.Record, idx int) string {
	if name := m.Str("groupItemTitle"); name != "" {
		return name
	}
	if q := m.Str("question"); q != "" {
		if match := willWinPattern.FindStringSubmatch(q); match != nil {
			return match[1]
		}
		return q
	}
	if o := m.Str("outcome"); o != "" {
		return o
	}
	return fmt.Sprintf("Option %d", idx+1)
}

// IsDummyOutcome reports whether an outcome is a never-traded placeholder.
func IsDummyOutcome(volume, liquidity float64, yesPrice int) bool {
	if volume == 0 && liquidity == 0 {
		return true
	}
	return volume == 0 && (yesPrice == 0 || yesPrice == 100)
}

// NormalizeOutcome reshapes one raw market of an event.
func NormalizeOutcome(m utils.Record, idx int) entity.Outcome {
	yes, no := ResolvePrices(m)
	volume := m.Float("volume", "volumeNum")
	liquidity := m.Float("liquidity", "liquidityNum")
	return entity.Outcome{
		ID:           m.Str("id"),
		ConditionID:  m.Str("conditionId"),
		Name:         ResolveOutcomeName(m, idx),
		FullQuestion: m.Str("question"),
		YesPrice:     yes,
		NoPrice:      no,
		Volume:       volume,
		Liquidity:    liquidity,
		Image:        m.Str("image", "icon"),
		IsDummy:      IsDummyOutcome(volume, liquidity, yes),
	}
}

// NormalizeOutcomes returns the valid outcomes of an event sorted by volume then price,
// and the number of dummies dropped.
func NormalizeOutcomes(markets []utils.Record, opts NormalizeOptions) ([]entity.Outcome, int) {
	valid := make([]entity.Outcome, 0, len(markets))
	dummies := 0
	for i, m := range markets {
		o := NormalizeOutcome(m, i)
		if o.IsDummy {
			dummies++
			continue
		}
		if !opts.IncludeZeroVolume && o.Volume == 0 {
			continue
		}
		valid = append(valid, o)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Volume != valid[j].Volume {
			return valid[i].Volume > valid[j].Volume
		}
		return valid[i].YesPrice > valid[j].YesPrice
	})

	if opts.DedupeByName {
		valid = dedupeOutcomes(valid)
	}
	return valid, dummies
}

// dedupeOutcomes relies on the volume ordering: the first outcome seen per name wins.
func dedupeOutcomes(outcomes []entity.Outcome) []entity.Outcome {
	seen := make(map[string]struct{}, len(outcomes))
	out := outcomes[:0]
	for _, o := range outcomes {
		key := strings.ToLower(o.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}
	return out
}

// EventTags returns the lowercased tag slugs of an event. Tags may be strings or objects.
func EventTags(event utils.Record) []string {
	raw, _ := event["tags"].([]any)
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s := strings.ToLower(strings.TrimSpace(tagText(t))); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

// ResolveCategory returns the first tag's slug or label, "general" without tags.
func ResolveCategory(event utils.Record) string {
	raw, _ := event["tags"].([]any)
	if len(raw) == 0 {
		return defaultCategory
	}
	if s := tagText(raw[0]); s != "" {
		return s
	}
	return defaultCategory
}

func tagText(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case map[string]any:
		return utils.Record(v).Str("slug", "label")
	}
	return ""
}

// NormalizeEvent builds the event detail view.
func NormalizeEvent(event utils.Record, opts NormalizeOptions) entity.EventDetail {
	outcomes, dummies := NormalizeOutcomes(event.List("markets"), opts)
	return entity.EventDetail{
		ID:           event.Str("id"),
		Slug:         event.Str("slug"),
		Title:        orDefault(event.Str("title"), "Unknown"),
		Description:  event.Str("description"),
		Image:        event.Str("image"),
		Category:     ResolveCategory(event),
		Volume:       event.Float("volume"),
		Liquidity:    event.Float("liquidity"),
		EndDate:      event.Str("endDate"),
		StartDate:    event.Str("startDate"),
		CommentCount: int(event.Int("commentCount")),
		Outcomes:     outcomes,
		DummyCount:   dummies,
	}
}

// BuildMarketCard builds the listing card of an event. titleKeywords are the categories
// detected from the event title; they are merged into the card tags.
func BuildMarketCard(event utils.Record, idx int, titleKeywords []string, opts NormalizeOptions) entity.MarketCard {
	tags := EventTags(event)
	outcomes, _ := NormalizeOutcomes(event.List("markets"), opts)

	category := defaultCategory
	if len(tags) > 0 {
		category = tags[0]
	}

	summaries := make([]entity.OutcomeSummary, 0, len(outcomes))
	for _, o := range outcomes {
		summaries = append(summaries, o.Summary())
	}

	maxOutcomes := opts.MaxOutcomes
	if maxOutcomes <= 0 {
		maxOutcomes = -1
	}

	return entity.MarketCard{
		ID:            orDefault(event.Str("id"), fmt.Sprintf("event-%d", idx)),
		Slug:          event.Str("slug"),
		Title:         orDefault(event.Str("title"), "Unknown"),
		Image:         event.Str("image"),
		Category:      category,
		Tags:          mergeUnique(tags, titleKeywords),
		TitleKeywords: titleKeywords,
		Volume:        event.Float("volume"),
		Liquidity:     event.Float("liquidity"),
		EndDate:       event.Str("endDate"),
		CommentCount:  int(event.Int("commentCount")),
		OutcomesCount: len(summaries),
		Outcomes:      utils.Truncate(summaries, maxOutcomes),
	}
}

// SortCardsByVolume orders cards by descending event volume, stable.
func SortCardsByVolume(cards []entity.MarketCard) {
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Volume > cards[j].Volume })
}

// MatchesQuery reports whether an event matches a lowercase search query on its title, slug,
// description or any market question / group title.
func MatchesQuery(event utils.Record, query string) bool {
	for _, field := range []string{"title", "slug", "description"} {
		if strings.Contains(strings.ToLower(event.Str(field)), query) {
			return true
		}
	}
	for _, m := range event.List("markets") {
		if strings.Contains(strings.ToLower(m.Str("question")), query) ||
			strings.Contains(strings.ToLower(m.Str("groupItemTitle")), query) {
			return true
		}
	}
	return false
}

// DebugEvent exposes the raw fields of the first markets of an event.
func DebugEvent(event utils.Record, maxMarkets int) entity.EventDebug {
	markets := event.List("markets")
	out := entity.EventDebug{
		EventTitle:   event.Str("title"),
		EventSlug:    event.Str("slug"),
		TotalMarkets: len(markets),
		Markets:      make([]entity.MarketDebug, 0, maxMarkets),
	}
	for i, m := range utils.Truncate(markets, maxMarkets) {
		out.Markets = append(out.Markets, entity.MarketDebug{
			Index:             i,
			ID:                m["id"],
			ConditionID:       m["conditionId"],
			Question:          m["question"],
			GroupItemTitle:    m["groupItemTitle"],
			Outcome:           m["outcome"],
			OutcomePrices:     m["outcomePrices"],
			OutcomePricesType: jsonType(m["outcomePrices"]),
			BestAsk:           m["bestAsk"],
			BestBid:           m["bestBid"],
			Volume:            m["volume"],
			AllKeys:           m.Keys(),
		})
	}
	return out
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

func mergeUnique(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
