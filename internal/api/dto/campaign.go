package dto

import (
	"github.com/noorcentre/donations-api/internal/types"
)

// CampaignResponse is the page-facing view of a campaign: the authored
// content plus the eligibility classification and a billing preview for a
// signup happening today.
type CampaignResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	StartDate types.CivilDate  `json:"startDate"`
	EndDate   *types.CivilDate `json:"endDate,omitempty"`
	IsOngoing bool             `json:"isOngoing"`

	SignupStartDate *types.CivilDate `json:"signupStartDate,omitempty"`
	// SignupCloses is the effective cutoff, already defaulted to the end
	// date when no explicit signup end was authored.
	SignupCloses *types.CivilDate `json:"signupCloses,omitempty"`

	Status               types.CampaignStatus `json:"status"`
	SignupOpen           bool                 `json:"signupOpen"`
	DaysUntilSignupOpens *int                 `json:"daysUntilSignupOpens,omitempty"`
	DaysUntilStart       *int                 `json:"daysUntilStart,omitempty"`
	DaysRemaining        *int                 `json:"daysRemaining,omitempty"`

	PresetAmounts     []float64 `json:"presetAmounts"`
	AllowCustomAmount bool      `json:"allowCustomAmount"`
	MinimumAmount     *float64  `json:"minimumAmount,omitempty"`
	MaximumAmount     *float64  `json:"maximumAmount,omitempty"`

	// BillingPreview describes the window a signup today would be charged
	// for. Absent when signup is not currently permitted.
	BillingPreview *BillingPreview `json:"billingPreview,omitempty"`
}

// BillingPreview is the date-only skeleton of a would-be billing plan.
type BillingPreview struct {
	BillingStartDate types.CivilDate `json:"billingStartDate"`
	IsLateJoin       bool            `json:"isLateJoin"`
	TotalDays        *int            `json:"totalDays,omitempty"`
	RemainingDays    *int            `json:"remainingDays,omitempty"`
}

// ListCampaignsResponse wraps the active campaign listing.
type ListCampaignsResponse struct {
	Items []*CampaignResponse `json:"items"`
	Total int                 `json:"total"`
}
