package types

import (
	ierr "github.com/noorcentre/donations-api/internal/errors"
)

// BillingType selects how a donation is charged: a recurring daily
// subscription or a single upfront charge covering the remaining days.
type BillingType string

const (
	BillingTypeDaily   BillingType = "daily"
	BillingTypeUpfront BillingType = "upfront"
)

func (b BillingType) Validate() error {
	switch b {
	case BillingTypeDaily, BillingTypeUpfront:
		return nil
	}
	return ierr.NewErrorf("invalid billing type: %s", b).
		WithHint("Billing type must be either daily or upfront").
		Mark(ierr.ErrValidation)
}
