package service

import (
	"context"
	"time"

	"github.com/noorcentre/donations-api/internal/api/dto"
	"github.com/noorcentre/donations-api/internal/billing"
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CampaignService serves the page-facing campaign reads: the authored
// content plus today's eligibility classification and billing preview.
type CampaignService interface {
	GetCampaign(ctx context.Context, slug string) (*dto.CampaignResponse, error)
	ListCampaigns(ctx context.Context) (*dto.ListCampaignsResponse, error)
}

type campaignService struct {
	ServiceParams
	loc *time.Location
}

func NewCampaignService(params ServiceParams) (CampaignService, error) {
	loc, err := params.Config.Donation.Location()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid donation timezone %s", params.Config.Donation.Timezone).
			Mark(ierr.ErrValidation)
	}
	return &campaignService{ServiceParams: params, loc: loc}, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, slug string) (*dto.CampaignResponse, error) {
	camp, err := s.CampaignRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	today := types.TodayIn(s.Clock(), s.loc)
	return s.toResponse(camp, today), nil
}

func (s *campaignService) ListCampaigns(ctx context.Context) (*dto.ListCampaignsResponse, error) {
	campaigns, err := s.CampaignRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	today := types.TodayIn(s.Clock(), s.loc)
	items := lo.Map(campaigns, func(c *campaign.Campaign, _ int) *dto.CampaignResponse {
		return s.toResponse(c, today)
	})

	return &dto.ListCampaignsResponse{Items: items, Total: len(items)}, nil
}

func (s *campaignService) toResponse(c *campaign.Campaign, today types.CivilDate) *dto.CampaignResponse {
	eligibility := billing.Classify(c, today)

	resp := &dto.CampaignResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,

		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		IsOngoing:       c.IsOngoing(),
		SignupStartDate: c.SignupStartDate,
		SignupCloses:    c.SignupEnd(),

		Status:               eligibility.Status,
		SignupOpen:           eligibility.SignupOpen,
		DaysUntilSignupOpens: eligibility.DaysUntilSignupOpens,
		DaysUntilStart:       eligibility.DaysUntilStart,
		DaysRemaining:        eligibility.DaysRemaining,

		PresetAmounts: lo.Map(c.PresetAmounts, func(amount decimal.Decimal, _ int) float64 {
			major, _ := amount.Float64()
			return major
		}),
		AllowCustomAmount: c.AllowCustomAmount,
	}
	if c.MinimumAmount != nil {
		major, _ := c.MinimumAmount.Float64()
		resp.MinimumAmount = lo.ToPtr(major)
	}
	if c.MaximumAmount != nil {
		major, _ := c.MaximumAmount.Float64()
		resp.MaximumAmount = lo.ToPtr(major)
	}

	if eligibility.SignupOpen {
		plan := billing.ComputePlan(c, today)
		resp.BillingPreview = &dto.BillingPreview{
			BillingStartDate: plan.BillingStartDate,
			IsLateJoin:       plan.LateJoin,
			TotalDays:        plan.TotalDays,
			RemainingDays:    plan.RemainingDays,
		}
	}

	return resp
}
