package billing

import (
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/samber/lo"
)

// endingSoonWindowDays is the inclusive day count at or below which an
// active campaign is labelled ending_soon.
const endingSoonWindowDays = 3

// Eligibility is the outcome of classifying a campaign against a civil
// "today". Day counts are inclusive of today where present.
type Eligibility struct {
	Status     types.CampaignStatus
	SignupOpen bool

	// DaysUntilSignupOpens is set for signup_not_open.
	DaysUntilSignupOpens *int
	// DaysUntilStart is set for upcoming.
	DaysUntilStart *int
	// DaysRemaining is set for active and ending_soon: today through the
	// end date, inclusive.
	DaysRemaining *int
}

// Classify evaluates the signup gates in strict order; the first matching
// rule wins. It is a pure function of its arguments.
func Classify(c *campaign.Campaign, today types.CivilDate) Eligibility {
	if !c.Active {
		return Eligibility{Status: types.CampaignStatusInactive}
	}

	if c.SignupStartDate != nil && today.Before(*c.SignupStartDate) {
		return Eligibility{
			Status:               types.CampaignStatusSignupNotOpen,
			DaysUntilSignupOpens: lo.ToPtr(types.DaysBetween(today, *c.SignupStartDate)),
		}
	}

	// The signup cutoff falls back to the end date when not authored. A
	// passed cutoff that only derives from the end date means the campaign
	// itself is over, which the ended rule below reports.
	if c.SignupEndDate != nil && c.SignupEndDate.Before(today) {
		return Eligibility{Status: types.CampaignStatusSignupClosed}
	}

	if c.EndDate != nil && today.After(*c.EndDate) {
		return Eligibility{Status: types.CampaignStatusEnded}
	}

	if today.Before(c.StartDate) {
		return Eligibility{
			Status:         types.CampaignStatusUpcoming,
			SignupOpen:     true,
			DaysUntilStart: lo.ToPtr(types.DaysBetween(today, c.StartDate)),
		}
	}

	if c.IsOngoing() {
		return Eligibility{Status: types.CampaignStatusOngoing, SignupOpen: true}
	}

	remaining := types.DaysBetween(today, *c.EndDate) + 1
	status := types.CampaignStatusActive
	if remaining <= endingSoonWindowDays {
		status = types.CampaignStatusEndingSoon
	}
	return Eligibility{
		Status:        status,
		SignupOpen:    true,
		DaysRemaining: lo.ToPtr(remaining),
	}
}

// Plan is the billing-window skeleton for a signup happening today.
// Amounts are attached by the donation service.
type Plan struct {
	Ongoing          bool
	LateJoin         bool
	BillingStartDate types.CivilDate

	// TotalDays and RemainingDays are inclusive day counts. Both are nil
	// for ongoing campaigns: an open-ended campaign has no finite totals,
	// which is distinct from zero.
	TotalDays     *int
	RemainingDays *int
}

// ComputePlan derives the billing window for a signup on the given day.
// A signup after the campaign start bills from tomorrow, never today: a
// partially elapsed day is never charged and the processor's trial
// mechanism needs a future instant.
//
// Callers must treat RemainingDays < 1 as the campaign having effectively
// ended for new signups, even when Classify still permits signup (a
// signup on the final day pushes billing past the end date).
func ComputePlan(c *campaign.Campaign, today types.CivilDate) Plan {
	plan := Plan{Ongoing: c.IsOngoing()}

	if today.Before(c.StartDate) {
		plan.BillingStartDate = c.StartDate
	} else {
		plan.BillingStartDate = today.AddDays(1)
		plan.LateJoin = true
	}

	if !plan.Ongoing {
		total := types.DaysBetween(c.StartDate, *c.EndDate) + 1
		remaining := types.DaysBetween(plan.BillingStartDate, *c.EndDate) + 1
		if remaining < 0 {
			remaining = 0
		}
		plan.TotalDays = lo.ToPtr(total)
		plan.RemainingDays = lo.ToPtr(remaining)
	}

	return plan
}
