package analytics

import (
	"regexp"
	"sort"
	"strings"

	"polydash/internal/domain/entity"
)

// Catalog maps events onto dashboard categories using configured tag groups,
// per-category exclusions and whole-word title keywords.
type Catalog struct {
	groups     map[string][]string
	excluded   map[string][]string
	keywords   map[string]*regexp.Regexp
	categories []string // keyword categories in a stable order
}

// NewCatalog compiles the category tables.
func NewCatalog(groups, excluded, titleKeywords map[string][]string) *Catalog {
	c := &Catalog{
		groups:   groups,
		excluded: excluded,
		keywords: make(map[string]*regexp.Regexp, len(titleKeywords)),
	}
	for category, words := range titleKeywords {
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
		}
		c.keywords[category] = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
		c.categories = append(c.categories, category)
	}
	sort.Strings(c.categories)
	return c
}

// TitleKeywords returns the categories whose keywords occur in title.
func (c *Catalog) TitleKeywords(title string) []string {
	lower := strings.ToLower(title)
	out := make([]string, 0, 2)
	for _, category := range c.categories {
		if c.keywords[category].MatchString(lower) {
			out = append(out, category)
		}
	}
	return out
}

// TagFilter selects cards for one requested category.
type TagFilter struct {
	allowed []string
	blocked []string
}

// Filter returns the filter for tag, nil when no filtering applies ("" or "all").
// Unknown tags match themselves.
func (c *Catalog) Filter(tag string) *TagFilter {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == "all" {
		return nil
	}
	allowed, ok := c.groups[tag]
	if !ok {
		allowed = []string{tag}
	}
	return &TagFilter{allowed: allowed, blocked: c.excluded[tag]}
}

// Match reports whether card belongs to the filtered category. Tag comparison is a
// substring match in either direction. In strict mode a blocked tag or title keyword rejects the card.
func (f *TagFilter) Match(card entity.MarketCard, strict bool) bool {
	if f == nil {
		return true
	}
	if !anyOverlap(card.Tags, f.allowed) {
		return false
	}
	if !strict {
		return true
	}
	if anyOverlap(card.Tags, f.blocked) {
		return false
	}
	for _, k := range card.TitleKeywords {
		for _, b := range f.blocked {
			if k == b {
				return false
			}
		}
	}
	return true
}

func anyOverlap(tags, patterns []string) bool {
	for _, t := range tags {
		for _, p := range patterns {
			if strings.Contains(t, p) || strings.Contains(p, t) {
				return true
			}
		}
	}
	return false
}
