package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

const (
	anonymousUser   = "Anonymous"
	commentDateFmt  = "1/2/2006"
	neutralPrice    = 50.0
	priceScale      = 100.0
	timestampMillis = 1000
)

// ClobTokenIDs parses the clobTokenIds field of a market, a JSON-encoded string or an array.
func ClobTokenIDs(v any) []string {
	var raw []any
	switch val := v.(type) {
	case string:
		if err := json.Unmarshal([]byte(val), &raw); err != nil {
			return nil
		}
	case []any:
		raw = val
	}
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		if id == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(id)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CurrentPrice is the YES price of a market on the 0–100 scale, 50 when unknown.
func CurrentPrice(m utils.Record) float64 {
	if prices, ok := OutcomePrices(m["outcomePrices"]); ok {
		return prices[0] * priceScale
	}
	return neutralPrice
}

// PricePoints converts raw CLOB {t, p} samples (seconds, 0–1) into sorted points.
func PricePoints(samples []utils.Record) []entity.PricePoint {
	points := make([]entity.PricePoint, 0, len(samples))
	for _, s := range samples {
		points = append(points, entity.PricePoint{
			Timestamp: s.Int("t") * timestampMillis,
			Price:     s.Float("p") * priceScale,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return points
}

// SummarizePrices computes change, change percent, high and low of a sorted series,
// falling back to current when the series is empty. Values are rounded to one decimal.
func SummarizePrices(points []entity.PricePoint, current float64) entity.PriceStats {
	first, last, high, low := current, current, current, current
	if len(points) > 0 {
		first = points[0].Price
		last = points[len(points)-1].Price
		high, low = math.Inf(-1), math.Inf(1)
		for _, p := range points {
			high = math.Max(high, p.Price)
			low = math.Min(low, p.Price)
		}
	}
	change := last - first
	changePercent := 0.0
	if first > 0 {
		changePercent = change / first * 100
	}
	return entity.PriceStats{
		Change:        utils.RoundTo(change, 1),
		ChangePercent: utils.RoundTo(changePercent, 1),
		High:          utils.RoundTo(high, 1),
		Low:           utils.RoundTo(low, 1),
		DataPoints:    len(points),
	}
}

// NormalizeComment maps one raw comment, accepting the field names of every comments route.
func NormalizeComment(c utils.Record, now time.Time) entity.Comment {
	var createdAt any = ""
	if v, ok := c.Value("createdAt", "timestamp"); ok {
		createdAt = v
	}
	timeAgo := ""
	if created, ok := commentTime(c); ok {
		timeAgo = TimeAgo(created, now)
	}

	replies := int(c.Int("replies", "repliesCount"))
	if list, ok := c["replies"].([]any); ok {
		replies = len(list)
	}

	return entity.Comment{
		ID: c.Str("id", "_id"),
		Username: firstOf(
			c.Str("username"),
			c.Obj("user").Str("name"),
			c.Obj("author").Str("name"),
			c.Obj("profile").Str("name", "pseudonym"),
			anonymousUser,
		),
		Text:      c.Str("text", "content", "body", "message"),
		TimeAgo:   timeAgo,
		CreatedAt: createdAt,
		Likes:     int(c.Int("likes", "likesCount", "reactionCount")),
		Replies:   replies,
		UserImage: firstOf(c.Str("userImage"), c.Obj("user").Str("image"), c.Obj("author").Str("image"), c.Obj("profile").Str("profileImage")),
	}
}

// NormalizeComments maps raw comments and drops the ones without text.
func NormalizeComments(raw []utils.Record, now time.Time) []entity.Comment {
	out := make([]entity.Comment, 0, len(raw))
	for _, c := range raw {
		if comment := NormalizeComment(c, now); comment.Text != "" {
			out = append(out, comment)
		}
	}
	return out
}

// commentTime reads createdAt (RFC 3339 or unix milliseconds) or timestamp (unix seconds).
func commentTime(c utils.Record) (time.Time, bool) {
	if v, ok := c.Value("createdAt"); ok {
		if s, isStr := v.(string); isStr {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t, true
			}
			return time.Time{}, false
		}
		if ms := int64(utils.ToFloat(v)); ms > 0 {
			return time.UnixMilli(ms), true
		}
	}
	if ts := c.Int("timestamp"); ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// TimeAgo renders the age of created relative to now: minutes under an hour, hours under
// a day, days under 30 days, then the calendar date.
func TimeAgo(created, now time.Time) string {
	diff := now.Sub(created)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return created.UTC().Format(commentDateFmt)
	}
}

// NormalizeTags maps the gamma tag list, skipping entries without any identifier.
func NormalizeTags(raw []utils.Record) []entity.Tag {
	out := make([]entity.Tag, 0, len(raw))
	for _, t := range raw {
		id := t.Str("id", "slug")
		if id == "" {
			continue
		}
		out = append(out, entity.Tag{
			ID:    id,
			Slug:  t.Str("slug", "id"),
			Label: t.Str("label", "name", "slug"),
		})
	}
	return out
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
