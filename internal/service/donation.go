package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noorcentre/donations-api/internal/api/dto"
	"github.com/noorcentre/donations-api/internal/billing"
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	"github.com/noorcentre/donations-api/internal/domain/payment"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// trialLeadDays is the processor's minimum lead time for a delayed first
// charge: trial_end must be at least 48 hours out. Billing starts closer
// than that charge immediately.
const trialLeadDays = 2

// DonationService turns an untrusted donation request into a checkout
// session, re-validating everything against the authoritative campaign.
type DonationService interface {
	CreateCheckout(ctx context.Context, req *dto.CreateDonationCheckoutRequest) (*dto.DonationCheckoutResponse, error)
}

type donationService struct {
	ServiceParams
	loc *time.Location
}

func NewDonationService(params ServiceParams) (DonationService, error) {
	loc, err := params.Config.Donation.Location()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid donation timezone %s", params.Config.Donation.Timezone).
			Mark(ierr.ErrValidation)
	}
	return &donationService{ServiceParams: params, loc: loc}, nil
}

// CreateCheckout runs the gate sequence. Each gate short-circuits with a
// specific error; the processor is only called once every gate has passed.
func (s *donationService) CreateCheckout(ctx context.Context, req *dto.CreateDonationCheckoutRequest) (*dto.DonationCheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The campaign is always re-fetched: client state is never trusted
	// for financial decisions.
	camp, err := s.CampaignRepo.GetBySlug(ctx, req.CampaignSlug)
	if err != nil {
		return nil, err
	}

	today := types.TodayIn(s.Clock(), s.loc)

	eligibility := billing.Classify(camp, today)
	if !eligibility.SignupOpen {
		return nil, eligibilityError(camp, eligibility)
	}

	dailyCents, err := validateAmount(camp, req.DailyAmount)
	if err != nil {
		return nil, err
	}

	plan := billing.ComputePlan(camp, today)
	if !plan.Ongoing && lo.FromPtr(plan.RemainingDays) < 1 {
		// Finer than the classification gate: a signup on the final day
		// pushes billing past the end date.
		return nil, ierr.NewErrorf("campaign %s has no chargeable days left", camp.Slug).
			WithHint("This campaign has ended for new signups").
			Mark(ierr.ErrCampaignEnded)
	}

	if req.BillingType == types.BillingTypeUpfront && plan.Ongoing {
		// An open-ended campaign has no finite total to prepay.
		return nil, ierr.NewErrorf("campaign %s is ongoing and cannot be paid upfront", camp.Slug).
			WithHint("Upfront payment is not available for ongoing campaigns").
			Mark(ierr.ErrUpfrontNotAvailable)
	}

	referenceID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DONATION)
	gatewayReq, billingInfo := s.buildCheckoutRequest(camp, plan, today, req, dailyCents, referenceID)

	ctx, cancel := context.WithTimeout(ctx, s.Config.Stripe.Timeout())
	defer cancel()

	// Session creation is not idempotent-safe to retry blindly, so a
	// failure surfaces immediately as an upstream error.
	result, err := s.Gateway.CreateCheckoutSession(ctx, gatewayReq)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created donation checkout",
		"campaign", camp.Slug,
		"session_id", result.SessionID,
		"reference_id", referenceID,
		"billing_type", req.BillingType,
		"late_join", plan.LateJoin,
		"ongoing", plan.Ongoing,
	)

	return &dto.DonationCheckoutResponse{
		SessionID:   result.SessionID,
		URL:         result.URL,
		ReferenceID: referenceID,
		BillingInfo: billingInfo,
	}, nil
}

// eligibilityError maps a failed classification onto its error kind.
func eligibilityError(c *campaign.Campaign, e billing.Eligibility) error {
	switch e.Status {
	case types.CampaignStatusInactive:
		return ierr.NewErrorf("campaign %s is inactive", c.Slug).
			WithHint("This campaign is not currently accepting donations").
			Mark(ierr.ErrCampaignInactive)
	case types.CampaignStatusSignupNotOpen:
		return ierr.NewErrorf("signup for campaign %s has not opened", c.Slug).
			WithHint("Signup for this campaign has not opened yet").
			WithReportableDetails(map[string]any{
				"days_until_open": lo.FromPtr(e.DaysUntilSignupOpens),
			}).
			Mark(ierr.ErrSignupNotOpen)
	case types.CampaignStatusSignupClosed:
		return ierr.NewErrorf("signup for campaign %s has closed", c.Slug).
			WithHint("Signup for this campaign has closed").
			Mark(ierr.ErrSignupClosed)
	case types.CampaignStatusEnded:
		return ierr.NewErrorf("campaign %s has ended", c.Slug).
			WithHint("This campaign has ended").
			Mark(ierr.ErrCampaignEnded)
	default:
		return ierr.NewErrorf("campaign %s does not permit signup in status %s", c.Slug, e.Status).
			WithHint("This campaign is not currently accepting donations").
			Mark(ierr.ErrValidation)
	}
}

// validateAmount checks the requested daily amount against the campaign's
// bounds and presets, comparing in minor units throughout. It returns the
// amount in cents.
func validateAmount(c *campaign.Campaign, amount float64) (int64, error) {
	cents := toCents(decimal.NewFromFloat(amount))

	if c.MinimumAmount != nil && cents < toCents(*c.MinimumAmount) {
		return 0, amountOutOfRangeError(c, amount)
	}
	if c.MaximumAmount != nil && cents > toCents(*c.MaximumAmount) {
		return 0, amountOutOfRangeError(c, amount)
	}

	if !c.AllowCustomAmount {
		matches := lo.SomeBy(c.PresetAmounts, func(preset decimal.Decimal) bool {
			return toCents(preset) == cents
		})
		if !matches {
			presets := lo.Map(c.PresetAmounts, func(preset decimal.Decimal, _ int) string {
				return preset.String()
			})
			return 0, ierr.NewErrorf("amount %v does not match a preset for campaign %s", amount, c.Slug).
				WithHint("This campaign only accepts its preset amounts").
				WithReportableDetails(map[string]any{
					"preset_amounts": strings.Join(presets, ","),
				}).
				Mark(ierr.ErrAmountNotPreset)
		}
	}

	return cents, nil
}

func amountOutOfRangeError(c *campaign.Campaign, amount float64) error {
	details := map[string]any{}
	if c.MinimumAmount != nil {
		details["minimum_amount"] = c.MinimumAmount.String()
	}
	if c.MaximumAmount != nil {
		details["maximum_amount"] = c.MaximumAmount.String()
	}
	return ierr.NewErrorf("amount %v is out of range for campaign %s", amount, c.Slug).
		WithHint("The daily amount is outside the allowed range for this campaign").
		WithReportableDetails(details).
		Mark(ierr.ErrAmountOutOfRange)
}

// buildCheckoutRequest assembles the processor request and the mirrored
// billing info for the caller. All gates have already passed.
func (s *donationService) buildCheckoutRequest(
	c *campaign.Campaign,
	plan billing.Plan,
	today types.CivilDate,
	req *dto.CreateDonationCheckoutRequest,
	dailyCents int64,
	referenceID string,
) (*payment.CheckoutSessionRequest, *dto.BillingInfo) {
	info := &dto.BillingInfo{
		StartDate:     plan.BillingStartDate,
		EndDate:       c.EndDate,
		TotalDays:     plan.TotalDays,
		RemainingDays: plan.RemainingDays,
		DailyAmount:   centsToMajor(dailyCents),
		IsLateJoin:    plan.LateJoin,
		IsOngoing:     plan.Ongoing,
	}

	gatewayReq := &payment.CheckoutSessionRequest{
		Currency:          s.Config.Stripe.Currency,
		Quantity:          1,
		Metadata:          s.buildMetadata(c, plan, req, referenceID),
		CustomerEmail:     req.DonorInfo.Email,
		ClientReferenceID: referenceID,
		SuccessURL:        expandURLTemplate(s.Config.Stripe.SuccessURL, c.Slug),
		CancelURL:         expandURLTemplate(s.Config.Stripe.CancelURL, c.Slug),
	}

	switch req.BillingType {
	case types.BillingTypeUpfront:
		remaining := int64(lo.FromPtr(plan.RemainingDays))
		// Total is derived from the already-rounded per-day cents so
		// fractional cents can never compound across days.
		totalCents := dailyCents * remaining
		gatewayReq.Mode = payment.CheckoutModePayment
		gatewayReq.UnitAmountCents = totalCents
		gatewayReq.ProductName = fmt.Sprintf("%s: one-time donation", c.Title)
		gatewayReq.ProductDescription = fmt.Sprintf("Covers the remaining %d days of the campaign", remaining)
		info.TotalAmount = lo.ToPtr(centsToMajor(totalCents))
	default:
		gatewayReq.Mode = payment.CheckoutModeSubscription
		gatewayReq.RecurringDaily = true
		gatewayReq.UnitAmountCents = dailyCents
		gatewayReq.ProductName = fmt.Sprintf("%s: daily donation", c.Title)

		if types.DaysBetween(today, plan.BillingStartDate) > trialLeadDays {
			trialEnd := plan.BillingStartDate.MidnightIn(s.loc).Unix()
			gatewayReq.TrialEndEpoch = lo.ToPtr(trialEnd)
			info.TrialEndEpoch = gatewayReq.TrialEndEpoch
		}
		if !plan.Ongoing {
			cancelAt := c.EndDate.EndOfDayIn(s.loc).Unix()
			gatewayReq.CancelAtEpoch = lo.ToPtr(cancelAt)
			info.CancelAtEpoch = gatewayReq.CancelAtEpoch
		}
	}

	return gatewayReq, info
}

// buildMetadata attaches the sanitized, non-secret reconciliation payload
// to the processor request.
func (s *donationService) buildMetadata(
	c *campaign.Campaign,
	plan billing.Plan,
	req *dto.CreateDonationCheckoutRequest,
	referenceID string,
) types.Metadata {
	md := types.Metadata{
		"donation_reference": referenceID,
		"campaign_id":        types.SanitizeMetadataValue(c.ID),
		"campaign_slug":      types.SanitizeMetadataValue(c.Slug),
		"campaign_title":     types.SanitizeMetadataValue(c.Title),
		"billing_type":       string(req.BillingType),
		"daily_amount":       strconv.FormatFloat(req.DailyAmount, 'f', -1, 64),
		"billing_start_date": plan.BillingStartDate.String(),
		"late_join":          strconv.FormatBool(plan.LateJoin),
		"ongoing":            strconv.FormatBool(plan.Ongoing),
		"anonymous":          strconv.FormatBool(req.DonorInfo.Anonymous),
	}
	if plan.TotalDays != nil {
		md["total_days"] = strconv.Itoa(*plan.TotalDays)
	}
	if plan.RemainingDays != nil {
		md["remaining_days"] = strconv.Itoa(*plan.RemainingDays)
	}
	setIfPresent(md, "donor_first_name", req.DonorInfo.FirstName)
	setIfPresent(md, "donor_last_name", req.DonorInfo.LastName)
	setIfPresent(md, "donor_phone", req.DonorInfo.Phone)
	setIfPresent(md, "donor_message", req.DonorInfo.Message)
	return md
}

func setIfPresent(md types.Metadata, key, value string) {
	if sanitized := types.SanitizeMetadataValue(value); sanitized != "" {
		md[key] = sanitized
	}
}

func expandURLTemplate(template, slug string) string {
	return strings.ReplaceAll(template, "{slug}", slug)
}
