package campaign

import (
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/shopspring/decimal"
)

// Campaign is the authoritative donation campaign record. It is owned by
// the content store and read-only to this service; a fresh copy is fetched
// for every financial decision.
type Campaign struct {
	ID          string
	Slug        string
	Title       string
	Description string

	// StartDate is the first day eligible for charging.
	StartDate types.CivilDate
	// EndDate is the last day eligible for charging; nil for open-ended
	// campaigns.
	EndDate *types.CivilDate
	// Ongoing marks a campaign with no fixed termination even when an end
	// date exists in the document. Use IsOngoing, which also treats a
	// missing end date as ongoing.
	Ongoing bool

	// SignupStartDate gates signups independently of the campaign window.
	SignupStartDate *types.CivilDate
	// SignupEndDate closes signups; nil falls back to EndDate.
	SignupEndDate *types.CivilDate

	// Active is the editorial kill switch. When false no signup is
	// permitted regardless of dates.
	Active bool

	// Amounts are daily amounts in major currency units.
	PresetAmounts     []decimal.Decimal
	AllowCustomAmount bool
	MinimumAmount     *decimal.Decimal
	MaximumAmount     *decimal.Decimal
}

// IsOngoing reports whether the campaign has no defined end.
func (c *Campaign) IsOngoing() bool {
	return c.Ongoing || c.EndDate == nil
}

// SignupEnd returns the effective signup cutoff: the explicit signup end
// date when authored, otherwise the campaign end date. Nil means signup
// never closes on a date basis.
func (c *Campaign) SignupEnd() *types.CivilDate {
	if c.SignupEndDate != nil {
		return c.SignupEndDate
	}
	return c.EndDate
}
