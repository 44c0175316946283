package stripe

import (
	"context"
	"strconv"

	"github.com/noorcentre/donations-api/internal/domain/payment"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/samber/lo"
	"github.com/stripe/stripe-go/v82"
)

// CreateCheckoutSession implements payment.Gateway. Stripe's own error
// shapes are never surfaced to callers; failures come back marked as
// upstream errors.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutSessionRequest) (*payment.CheckoutSessionResult, error) {
	params := buildSessionParams(req)

	session, err := c.api.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		c.logger.Errorw("failed to create checkout session",
			"error", err,
			"mode", req.Mode,
			"client_reference_id", req.ClientReferenceID)
		return nil, ierr.WithError(err).
			WithHint("Unable to create a checkout session with the payment provider").
			Mark(ierr.ErrIntegration)
	}

	c.logger.Infow("created checkout session",
		"session_id", session.ID,
		"mode", req.Mode,
		"client_reference_id", req.ClientReferenceID)

	return &payment.CheckoutSessionResult{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func buildSessionParams(req *payment.CheckoutSessionRequest) *stripe.CheckoutSessionCreateParams {
	priceData := &stripe.CheckoutSessionCreateLineItemPriceDataParams{
		Currency:   stripe.String(req.Currency),
		UnitAmount: stripe.Int64(req.UnitAmountCents),
		ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
			Name: stripe.String(req.ProductName),
		},
	}
	if req.ProductDescription != "" {
		priceData.ProductData.Description = stripe.String(req.ProductDescription)
	}
	if req.RecurringDaily {
		priceData.Recurring = &stripe.CheckoutSessionCreateLineItemPriceDataRecurringParams{
			Interval:      stripe.String("day"),
			IntervalCount: stripe.Int64(1),
		}
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode: stripe.String(string(req.Mode)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripe.Int64(quantity),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   req.Metadata,
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if req.ClientReferenceID != "" {
		params.ClientReferenceID = stripe.String(req.ClientReferenceID)
	}

	switch req.Mode {
	case payment.CheckoutModeSubscription:
		subscriptionData := &stripe.CheckoutSessionCreateSubscriptionDataParams{
			Metadata: lo.Assign(map[string]string{}, map[string]string(req.Metadata)),
		}
		if req.TrialEndEpoch != nil {
			subscriptionData.TrialEnd = stripe.Int64(*req.TrialEndEpoch)
		}
		if req.CancelAtEpoch != nil {
			// Checkout sessions cannot set cancel_at on the subscription
			// they create; the value travels in subscription metadata and
			// the completion webhook applies it.
			subscriptionData.AddMetadata("cancel_at_epoch", strconv.FormatInt(*req.CancelAtEpoch, 10))
		}
		params.SubscriptionData = subscriptionData
	case payment.CheckoutModePayment:
		params.PaymentIntentData = &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			Metadata: req.Metadata,
		}
	}

	return params
}
