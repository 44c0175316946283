package dto

import (
	"math"

	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/noorcentre/donations-api/internal/validator"
)

// DonorInfo is the donor contact block submitted with a checkout request.
// Everything except the email is optional free text and is sanitized
// before it reaches the processor.
type DonorInfo struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Message   string `json:"message,omitempty" validate:"omitempty,max=2000"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

// CreateDonationCheckoutRequest is the single inbound shape for starting a
// donation. Every field is re-validated against the freshly fetched
// campaign; nothing the client sends is trusted for financial decisions.
type CreateDonationCheckoutRequest struct {
	CampaignSlug string            `json:"campaignSlug" validate:"required"`
	DailyAmount  float64           `json:"dailyAmount" validate:"required,gt=0"`
	BillingType  types.BillingType `json:"billingType,omitempty"`
	DonorInfo    DonorInfo         `json:"donorInfo" validate:"required"`
}

// Validate performs the structural gate and normalizes the billing type to
// its daily default.
func (r *CreateDonationCheckoutRequest) Validate() error {
	if r.BillingType == "" {
		r.BillingType = types.BillingTypeDaily
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	// gt=0 rejects NaN but lets +Inf through.
	if math.IsInf(r.DailyAmount, 0) {
		return ierr.NewError("daily amount must be a finite number").
			WithHint("Daily amount must be a finite number").
			Mark(ierr.ErrValidation)
	}
	return r.BillingType.Validate()
}

// BillingInfo echoes the computed billing plan back to the caller so a
// confirmation page can render without re-deriving any of the math.
// Amounts are in major currency units.
type BillingInfo struct {
	StartDate     types.CivilDate  `json:"startDate"`
	EndDate       *types.CivilDate `json:"endDate,omitempty"`
	TotalDays     *int             `json:"totalDays,omitempty"`
	RemainingDays *int             `json:"remainingDays,omitempty"`
	DailyAmount   float64          `json:"dailyAmount"`
	TotalAmount   *float64         `json:"totalAmount,omitempty"`
	IsLateJoin    bool             `json:"isLateJoin"`
	IsOngoing     bool             `json:"isOngoing"`
	TrialEndEpoch *int64           `json:"trialEndEpoch,omitempty"`
	CancelAtEpoch *int64           `json:"cancelAtEpoch,omitempty"`
}

// DonationCheckoutResponse is returned once a checkout session exists.
type DonationCheckoutResponse struct {
	SessionID   string       `json:"sessionId"`
	URL         string       `json:"url"`
	ReferenceID string       `json:"referenceId"`
	BillingInfo *BillingInfo `json:"billingInfo"`
}
