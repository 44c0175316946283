package testutil

import (
	"context"
	"sync"

	"github.com/noorcentre/donations-api/internal/domain/campaign"
	ierr "github.com/noorcentre/donations-api/internal/errors"
)

// InMemoryCampaignStore is an in-memory implementation of campaign.Repository
type InMemoryCampaignStore struct {
	mu        sync.RWMutex
	campaigns map[string]*campaign.Campaign
}

func NewInMemoryCampaignStore() *InMemoryCampaignStore {
	return &InMemoryCampaignStore{
		campaigns: make(map[string]*campaign.Campaign),
	}
}

// Add registers a campaign under its slug, replacing any previous entry.
func (s *InMemoryCampaignStore) Add(c *campaign.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.Slug] = c
}

func (s *InMemoryCampaignStore) GetBySlug(ctx context.Context, slug string) (*campaign.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[slug]
	if !ok {
		return nil, ierr.NewErrorf("campaign %s not found", slug).
			WithHint("Campaign not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCampaignStore) ListActive(ctx context.Context) ([]*campaign.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*campaign.Campaign
	for _, c := range s.campaigns {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryCampaignStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = make(map[string]*campaign.Campaign)
}
