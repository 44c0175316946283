package payment

import (
	"context"

	"github.com/noorcentre/donations-api/internal/types"
)

// CheckoutMode selects a one-time charge or a recurring subscription.
type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"
	CheckoutModeSubscription CheckoutMode = "subscription"
)

// CheckoutSessionRequest is the processor-agnostic description of a hosted
// checkout session. Amounts are in minor currency units.
type CheckoutSessionRequest struct {
	Mode               CheckoutMode
	Currency           string
	UnitAmountCents    int64
	Quantity           int64
	ProductName        string
	ProductDescription string

	// RecurringDaily prices the line item as one charge per day. Only
	// meaningful in subscription mode.
	RecurringDaily bool
	// TrialEndEpoch delays the first charge to the given instant. The
	// processor requires it to be at least 48 hours out.
	TrialEndEpoch *int64
	// CancelAtEpoch is the instant the subscription must terminate.
	CancelAtEpoch *int64

	Metadata          types.Metadata
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
}

// CheckoutSessionResult is what the caller needs to redirect the donor.
type CheckoutSessionResult struct {
	SessionID string
	URL       string
}

// Gateway creates hosted checkout sessions with the payment processor.
// Failures are marked as upstream errors; session creation is never
// retried here because it is not idempotent without a client-supplied
// idempotency key.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSessionResult, error)
}
