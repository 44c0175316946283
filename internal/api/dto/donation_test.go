package dto

import (
	"math"
	"testing"

	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *CreateDonationCheckoutRequest {
	return &CreateDonationCheckoutRequest{
		CampaignSlug: "ramadan-appeal",
		DailyAmount:  10,
		DonorInfo:    DonorInfo{Email: "donor@example.org"},
	}
}

func TestCreateDonationCheckoutRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())
	// Billing type defaults to daily.
	assert.Equal(t, types.BillingTypeDaily, req.BillingType)

	req = validRequest()
	req.BillingType = types.BillingTypeUpfront
	require.NoError(t, req.Validate())
	assert.Equal(t, types.BillingTypeUpfront, req.BillingType)
}

func TestCreateDonationCheckoutRequestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateDonationCheckoutRequest)
	}{
		{"missing slug", func(r *CreateDonationCheckoutRequest) { r.CampaignSlug = "" }},
		{"zero amount", func(r *CreateDonationCheckoutRequest) { r.DailyAmount = 0 }},
		{"negative amount", func(r *CreateDonationCheckoutRequest) { r.DailyAmount = -5 }},
		{"infinite amount", func(r *CreateDonationCheckoutRequest) { r.DailyAmount = math.Inf(1) }},
		{"nan amount", func(r *CreateDonationCheckoutRequest) { r.DailyAmount = math.NaN() }},
		{"missing email", func(r *CreateDonationCheckoutRequest) { r.DonorInfo.Email = "" }},
		{"malformed email", func(r *CreateDonationCheckoutRequest) { r.DonorInfo.Email = "nope" }},
		{"unknown billing type", func(r *CreateDonationCheckoutRequest) { r.BillingType = "weekly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}
