package testutil

import (
	"context"
	"time"

	"github.com/noorcentre/donations-api/internal/config"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/noorcentre/donations-api/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the repository interfaces for testing
type Stores struct {
	CampaignRepo *InMemoryCampaignStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	gateway *FakeCheckoutGateway
	logger  *logger.Logger
	config  *config.Configuration
	now     time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.stores = Stores{CampaignRepo: NewInMemoryCampaignStore()}
	s.gateway = NewFakeCheckoutGateway()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.CampaignRepo.Clear()
	s.gateway.Clear()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetGateway() *FakeCheckoutGateway {
	return s.gateway
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// SetNow pins the suite clock to a fixed instant.
func (s *BaseServiceTestSuite) SetNow(now time.Time) {
	s.now = now
}

// GetNow returns the pinned instant.
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetClock returns a types.Clock reading the pinned instant at call time.
func (s *BaseServiceTestSuite) GetClock() types.Clock {
	return func() time.Time {
		return s.now
	}
}
