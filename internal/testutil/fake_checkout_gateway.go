package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/noorcentre/donations-api/internal/domain/payment"
)

// FakeCheckoutGateway records checkout session requests and returns canned
// results, implementing payment.Gateway.
type FakeCheckoutGateway struct {
	mu       sync.Mutex
	requests []*payment.CheckoutSessionRequest

	// Err, when set, is returned instead of a session.
	Err error
}

func NewFakeCheckoutGateway() *FakeCheckoutGateway {
	return &FakeCheckoutGateway{}
}

func (g *FakeCheckoutGateway) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutSessionRequest) (*payment.CheckoutSessionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}

	g.requests = append(g.requests, req)
	sessionID := fmt.Sprintf("cs_test_%03d", len(g.requests))
	return &payment.CheckoutSessionResult{
		SessionID: sessionID,
		URL:       "https://checkout.example.com/pay/" + sessionID,
	}, nil
}

// Requests returns the recorded requests in order.
func (g *FakeCheckoutGateway) Requests() []*payment.CheckoutSessionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*payment.CheckoutSessionRequest, len(g.requests))
	copy(out, g.requests)
	return out
}

// LastRequest returns the most recent request, or nil when none were made.
func (g *FakeCheckoutGateway) LastRequest() *payment.CheckoutSessionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		return nil
	}
	return g.requests[len(g.requests)-1]
}

func (g *FakeCheckoutGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = nil
	g.Err = nil
}
