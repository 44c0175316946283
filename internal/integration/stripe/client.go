package stripe

import (
	"github.com/noorcentre/donations-api/internal/config"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client wraps the Stripe SDK client for checkout session creation.
type Client struct {
	cfg    *config.Configuration
	logger *logger.Logger
	api    *stripe.Client
}

// NewClient creates a new Stripe client from the configured secret key.
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		api:    stripe.NewClient(cfg.Stripe.SecretKey, nil),
	}
}
