package entity

import "github.com/shopspring/decimal"

// OutcomeSide is one of the two resolutions of a binary market.
type OutcomeSide string

const (
	SideYes OutcomeSide = "YES"
	SideNo  OutcomeSide = "NO"
)

// SideFromIndex maps an upstream outcome index to a side: 0 is YES, anything else NO.
func SideFromIndex(idx int) OutcomeSide {
	if idx == 0 {
		return SideYes
	}
	return SideNo
}

// NameSource says where a holder's display name came from. Higher values win.
type NameSource int

const (
	NameShortenedAddress NameSource = iota
	NamePseudonym
	NameReal
)

// String implements fmt.Stringer.
func (s NameSource) String() string {
	switch s {
	case NameReal:
		return "real_name"
	case NamePseudonym:
		return "pseudonym"
	default:
		return "shortened_address"
	}
}

// MarshalText renders the source as its string form in JSON.
func (s NameSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DisplayName is a resolved holder name together with its classification.
type DisplayName struct {
	Source NameSource
	Text   string
}

// HolderRecord is one raw holder row of one outcome token. Not unique across pages or tokens.
type HolderRecord struct {
	Wallet        string
	Name          string
	Pseudonym     string
	DisplayPublic bool
	Amount        decimal.Decimal
	OutcomeIndex  int
	ProfileImage  string
	Bio           string
}

// AggregatedHolder is the summed position of one wallet on one side of a market.
type AggregatedHolder struct {
	Rank         int         `json:"rank"`
	Wallet       string      `json:"wallet"`
	DisplayName  string      `json:"displayName"`
	NameSource   NameSource  `json:"nameSource"`
	Name         string      `json:"name"`
	Pseudonym    string      `json:"pseudonym"`
	Amount       float64     `json:"amount"`
	Outcome      OutcomeSide `json:"outcome"`
	ProfileImage string      `json:"profileImage"`
	Bio          string      `json:"bio"`
}

// HolderStats summarises the full deduplicated holder set of a market.
type HolderStats struct {
	TotalHolders   int     `json:"totalHolders"`
	YesHolders     int     `json:"yesHolders"`
	NoHolders      int     `json:"noHolders"`
	TotalYesShares float64 `json:"totalYesShares"`
	TotalNoShares  float64 `json:"totalNoShares"`
	YesPct         int     `json:"yesPct"`
}

// HolderSnapshot is the holders view of a single market.
type HolderSnapshot struct {
	Market  string             `json:"market"`
	Stats   HolderStats        `json:"stats"`
	Holders []AggregatedHolder `json:"data"`
}
