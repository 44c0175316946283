package service

import (
	"github.com/noorcentre/donations-api/internal/config"
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	"github.com/noorcentre/donations-api/internal/domain/payment"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/shopspring/decimal"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	// Clock supplies "now"; every date decision flows from it.
	Clock types.Clock

	CampaignRepo campaign.Repository
	Gateway      payment.Gateway
}

var centsPerMajor = decimal.NewFromInt(100)

// toCents converts a major-unit amount to minor units, rounding half away
// from zero once. All amount comparisons happen in minor units so float
// representation error can never break an exact preset match.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerMajor).Round(0).IntPart()
}

// centsToMajor converts minor units back to a major-unit amount for
// display fields.
func centsToMajor(cents int64) float64 {
	major, _ := decimal.NewFromInt(cents).Div(centsPerMajor).Float64()
	return major
}
