package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"polydash/internal/domain/entity"
	"polydash/internal/pkg/utils"
)

const anonymousPseudonym = "Anonymous"

// HolderOptions tunes AggregateHolders.
type HolderOptions struct {
	Limit         int // <= 0 keeps every holder
	DustThreshold decimal.Decimal
	BotAddresses  map[string]struct{} // lowercase
	DedupeByName  bool
}

// NewHolderOptions builds options from plain configuration values.
func NewHolderOptions(limit int, dust float64, bots []string, dedupeByName bool) HolderOptions {
	set := make(map[string]struct{}, len(bots))
	for _, b := range bots {
		set[utils.NormalizeWallet(b)] = struct{}{}
	}
	return HolderOptions{
		Limit:         limit,
		DustThreshold: decimal.NewFromFloat(dust),
		BotAddresses:  set,
		DedupeByName:  dedupeByName,
	}
}

// ClassifyName resolves the display name of one raw record: a public real name, else a
// pseudonym other than "Anonymous", else the shortened wallet. Names that are really
// addresses are treated as the shortened wallet.
func ClassifyName(rec entity.HolderRecord, wallet string) entity.DisplayName {
	if rec.DisplayPublic {
		if name := strings.TrimSpace(rec.Name); name != "" && !utils.LooksLikeAddress(name) {
			return entity.DisplayName{Source: entity.NameReal, Text: name}
		}
	}
	if p := strings.TrimSpace(rec.Pseudonym); p != "" && p != anonymousPseudonym && !utils.LooksLikeAddress(p) {
		return entity.DisplayName{Source: entity.NamePseudonym, Text: p}
	}
	return entity.DisplayName{Source: entity.NameShortenedAddress, Text: utils.ShortenWallet(wallet)}
}

type holderGroup struct {
	order     int
	wallet    string
	side      entity.OutcomeSide
	name      entity.DisplayName
	rawName   string
	pseudonym string
	image     string
	bio       string
	amount    decimal.Decimal
}

func (o HolderOptions) isBot(wallet string) bool {
	if _, ok := o.BotAddresses[wallet]; ok {
		return true
	}
	return utils.IsZeroAddress(wallet)
}

// AggregateHolders turns raw per-token holder records into a ranked holder list keyed by
// (wallet, side). Stats cover the whole deduplicated set, the list is cut to opts.Limit.
func AggregateHolders(records []entity.HolderRecord, opts HolderOptions) entity.HolderSnapshot {
	groups := make([]*holderGroup, 0, len(records))
	byKey := make(map[string]*holderGroup, len(records))

	for _, rec := range records {
		wallet := utils.NormalizeWallet(rec.Wallet)
		if wallet == "" || opts.isBot(wallet) {
			continue
		}
		if rec.Amount.LessThan(opts.DustThreshold) {
			continue
		}

		side := entity.SideFromIndex(rec.OutcomeIndex)
		name := ClassifyName(rec, wallet)
		key := wallet + "|" + string(side)

		if g, ok := byKey[key]; ok {
			g.amount = g.amount.Add(rec.Amount)
			if name.Source > g.name.Source {
				g.name = name
			}
			fillEmpty(&g.rawName, rec.Name)
			fillEmpty(&g.pseudonym, rec.Pseudonym)
			fillEmpty(&g.image, rec.ProfileImage)
			fillEmpty(&g.bio, rec.Bio)
			continue
		}

		g := &holderGroup{
			order:     len(groups),
			wallet:    wallet,
			side:      side,
			name:      name,
			rawName:   rec.Name,
			pseudonym: rec.Pseudonym,
			image:     rec.ProfileImage,
			bio:       rec.Bio,
			amount:    rec.Amount,
		}
		byKey[key] = g
		groups = append(groups, g)
	}

	if opts.DedupeByName {
		groups = dedupeByDisplayName(groups)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].amount.Cmp(groups[j].amount); c != 0 {
			return c > 0
		}
		return groups[i].order < groups[j].order
	})

	return entity.HolderSnapshot{
		Stats:   holderStats(groups),
		Holders: rankHolders(groups, opts.Limit),
	}
}

// dedupeByDisplayName collapses groups on the same side that show the same non-address
// name, keeping the larger position (the earlier one on ties).
func dedupeByDisplayName(groups []*holderGroup) []*holderGroup {
	kept := make([]*holderGroup, 0, len(groups))
	byName := make(map[string]int)
	for _, g := range groups {
		if g.name.Source == entity.NameShortenedAddress {
			kept = append(kept, g)
			continue
		}
		nameKey := strings.ToLower(g.name.Text) + "|" + string(g.side)
		if idx, ok := byName[nameKey]; ok {
			if g.amount.GreaterThan(kept[idx].amount) {
				kept[idx] = g
			}
			continue
		}
		byName[nameKey] = len(kept)
		kept = append(kept, g)
	}
	return kept
}

func holderStats(groups []*holderGroup) entity.HolderStats {
	var stats entity.HolderStats
	yesShares, noShares := decimal.Zero, decimal.Zero
	wallets := make(map[string]struct{}, len(groups))

	for _, g := range groups {
		wallets[g.wallet] = struct{}{}
		if g.side == entity.SideYes {
			stats.YesHolders++
			yesShares = yesShares.Add(g.amount)
		} else {
			stats.NoHolders++
			noShares = noShares.Add(g.amount)
		}
	}

	stats.TotalHolders = len(wallets)
	stats.TotalYesShares = yesShares.Round(0).InexactFloat64()
	stats.TotalNoShares = noShares.Round(0).InexactFloat64()
	stats.YesPct = 50
	if total := stats.YesHolders + stats.NoHolders; total > 0 {
		stats.YesPct = utils.WholePercent(stats.YesHolders, total)
	}
	return stats
}

func rankHolders(groups []*holderGroup, limit int) []entity.AggregatedHolder {
	groups = utils.Truncate(groups, limitOrAll(limit))
	out := make([]entity.AggregatedHolder, 0, len(groups))
	for i, g := range groups {
		out = append(out, entity.AggregatedHolder{
			Rank:         i + 1,
			Wallet:       g.wallet,
			DisplayName:  g.name.Text,
			NameSource:   g.name.Source,
			Name:         g.rawName,
			Pseudonym:    g.pseudonym,
			Amount:       g.amount.InexactFloat64(),
			Outcome:      g.side,
			ProfileImage: g.image,
			Bio:          g.bio,
		})
	}
	return out
}

func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func fillEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
