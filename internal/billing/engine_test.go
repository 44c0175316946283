package billing

import (
	"testing"

	"github.com/noorcentre/donations-api/internal/domain/campaign"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) types.CivilDate {
	return types.MustCivilDate(s)
}

func datePtr(s string) *types.CivilDate {
	return lo.ToPtr(types.MustCivilDate(s))
}

// fixedCampaign runs 2025-03-10 through 2025-03-20 inclusive: 11 days.
func fixedCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:        "campaign-fixed",
		Slug:      "ramadan-appeal",
		Title:     "Ramadan Appeal",
		Active:    true,
		StartDate: date("2025-03-10"),
		EndDate:   datePtr("2025-03-20"),
	}
}

func ongoingCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:        "campaign-ongoing",
		Slug:      "general-fund",
		Title:     "General Fund",
		Active:    true,
		StartDate: date("2025-01-01"),
	}
}

func TestClassifyInactive(t *testing.T) {
	c := fixedCampaign()
	c.Active = false

	e := Classify(c, date("2025-03-15"))
	assert.Equal(t, types.CampaignStatusInactive, e.Status)
	assert.False(t, e.SignupOpen)
}

func TestClassifySignupNotOpen(t *testing.T) {
	c := fixedCampaign()
	c.SignupStartDate = datePtr("2025-03-05")

	e := Classify(c, date("2025-03-01"))
	assert.Equal(t, types.CampaignStatusSignupNotOpen, e.Status)
	assert.False(t, e.SignupOpen)
	require.NotNil(t, e.DaysUntilSignupOpens)
	assert.Equal(t, 4, *e.DaysUntilSignupOpens)

	// The day signup opens it is no longer closed.
	e = Classify(c, date("2025-03-05"))
	assert.NotEqual(t, types.CampaignStatusSignupNotOpen, e.Status)
	assert.True(t, e.SignupOpen)
}

func TestClassifySignupClosed(t *testing.T) {
	c := fixedCampaign()
	c.SignupEndDate = datePtr("2025-03-12")

	// On the cutoff day signup is still open.
	e := Classify(c, date("2025-03-12"))
	assert.Equal(t, types.CampaignStatusActive, e.Status)
	assert.True(t, e.SignupOpen)

	e = Classify(c, date("2025-03-13"))
	assert.Equal(t, types.CampaignStatusSignupClosed, e.Status)
	assert.False(t, e.SignupOpen)
}

func TestClassifyEnded(t *testing.T) {
	c := fixedCampaign()

	// On the end date the campaign is still running.
	e := Classify(c, date("2025-03-20"))
	assert.NotEqual(t, types.CampaignStatusEnded, e.Status)

	// Past the end date with no authored signup cutoff the status is
	// ended, not signup_closed.
	e = Classify(c, date("2025-03-21"))
	assert.Equal(t, types.CampaignStatusEnded, e.Status)
	assert.False(t, e.SignupOpen)
}

func TestClassifyExplicitCutoffAtEndDate(t *testing.T) {
	// An explicit cutoff equal to the end date still reports
	// signup_closed once both have passed.
	c := fixedCampaign()
	c.SignupEndDate = datePtr("2025-03-20")

	e := Classify(c, date("2025-03-21"))
	assert.Equal(t, types.CampaignStatusSignupClosed, e.Status)
}

func TestClassifyUpcoming(t *testing.T) {
	c := fixedCampaign()

	e := Classify(c, date("2025-03-01"))
	assert.Equal(t, types.CampaignStatusUpcoming, e.Status)
	assert.True(t, e.SignupOpen)
	require.NotNil(t, e.DaysUntilStart)
	assert.Equal(t, 9, *e.DaysUntilStart)
}

func TestClassifyOngoing(t *testing.T) {
	e := Classify(ongoingCampaign(), date("2025-03-15"))
	assert.Equal(t, types.CampaignStatusOngoing, e.Status)
	assert.True(t, e.SignupOpen)
	assert.Nil(t, e.DaysRemaining)

	// An explicit end date with the ongoing flag set still counts as
	// ongoing.
	c := fixedCampaign()
	c.Ongoing = true
	e = Classify(c, date("2025-03-15"))
	assert.Equal(t, types.CampaignStatusOngoing, e.Status)
}

func TestClassifyActiveAndEndingSoon(t *testing.T) {
	c := fixedCampaign()

	e := Classify(c, date("2025-03-15"))
	assert.Equal(t, types.CampaignStatusActive, e.Status)
	assert.True(t, e.SignupOpen)
	require.NotNil(t, e.DaysRemaining)
	assert.Equal(t, 6, *e.DaysRemaining)

	// Three days remaining, inclusive of today, flips the label.
	e = Classify(c, date("2025-03-18"))
	assert.Equal(t, types.CampaignStatusEndingSoon, e.Status)
	assert.Equal(t, 3, lo.FromPtr(e.DaysRemaining))

	// Final day.
	e = Classify(c, date("2025-03-20"))
	assert.Equal(t, types.CampaignStatusEndingSoon, e.Status)
	assert.Equal(t, 1, lo.FromPtr(e.DaysRemaining))
}

func TestClassifyRuleOrder(t *testing.T) {
	// Inactive wins over everything else.
	c := fixedCampaign()
	c.Active = false
	c.SignupStartDate = datePtr("2025-04-01")
	assert.Equal(t, types.CampaignStatusInactive, Classify(c, date("2025-03-01")).Status)

	// A not-yet-open signup window wins over the campaign being over.
	c = fixedCampaign()
	c.SignupStartDate = datePtr("2025-04-01")
	assert.Equal(t, types.CampaignStatusSignupNotOpen, Classify(c, date("2025-03-25")).Status)

	// A passed explicit cutoff wins over the ended check.
	c = fixedCampaign()
	c.SignupEndDate = datePtr("2025-03-12")
	assert.Equal(t, types.CampaignStatusSignupClosed, Classify(c, date("2025-03-25")).Status)
}

func TestComputePlanBeforeStart(t *testing.T) {
	c := fixedCampaign()

	plan := ComputePlan(c, date("2025-03-01"))
	assert.False(t, plan.Ongoing)
	assert.False(t, plan.LateJoin)
	assert.Equal(t, date("2025-03-10"), plan.BillingStartDate)
	assert.Equal(t, 11, lo.FromPtr(plan.TotalDays))
	assert.Equal(t, 11, lo.FromPtr(plan.RemainingDays))
}

func TestComputePlanLateJoin(t *testing.T) {
	c := fixedCampaign()

	// A mid-campaign signup bills from tomorrow, never today.
	plan := ComputePlan(c, date("2025-03-15"))
	assert.True(t, plan.LateJoin)
	assert.Equal(t, date("2025-03-16"), plan.BillingStartDate)
	assert.Equal(t, 11, lo.FromPtr(plan.TotalDays))
	assert.Equal(t, 5, lo.FromPtr(plan.RemainingDays))
}

func TestComputePlanOnStartDate(t *testing.T) {
	c := fixedCampaign()

	// Signing up on the start date itself is already a late join: the
	// start day is partially elapsed.
	plan := ComputePlan(c, date("2025-03-10"))
	assert.True(t, plan.LateJoin)
	assert.Equal(t, date("2025-03-11"), plan.BillingStartDate)
	assert.Equal(t, 10, lo.FromPtr(plan.RemainingDays))
}

func TestComputePlanFinalDay(t *testing.T) {
	c := fixedCampaign()

	// A signup on the final day would bill from the day after the end
	// date: nothing left to charge.
	plan := ComputePlan(c, date("2025-03-20"))
	assert.Equal(t, date("2025-03-21"), plan.BillingStartDate)
	assert.Equal(t, 0, lo.FromPtr(plan.RemainingDays))

	// Second-to-last day leaves exactly the end date.
	plan = ComputePlan(c, date("2025-03-19"))
	assert.Equal(t, date("2025-03-20"), plan.BillingStartDate)
	assert.Equal(t, 1, lo.FromPtr(plan.RemainingDays))
}

func TestComputePlanClampsNegativeRemaining(t *testing.T) {
	c := fixedCampaign()

	plan := ComputePlan(c, date("2025-03-25"))
	assert.Equal(t, 0, lo.FromPtr(plan.RemainingDays))
}

func TestComputePlanOngoing(t *testing.T) {
	plan := ComputePlan(ongoingCampaign(), date("2025-03-15"))
	assert.True(t, plan.Ongoing)
	assert.True(t, plan.LateJoin)
	assert.Equal(t, date("2025-03-16"), plan.BillingStartDate)
	assert.Nil(t, plan.TotalDays)
	assert.Nil(t, plan.RemainingDays)
}
