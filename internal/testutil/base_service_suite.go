package testutil

import (
	"context"
	"time"

	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/domain/discountfunction"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/eventbus/publisher"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/hanahub/ab-discount-app/internal/repository/memory"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/hanahub/ab-discount-app/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	VariantDiscountRepo variantdiscount.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	pubSub    *InMemoryPubSub
	publisher publisher.EventPublisher
	db        *MockPostgresClient
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelInfo

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		VariantDiscountRepo: memory.NewVariantDiscountRepository(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.pubSub = NewInMemoryPubSub()
	s.publisher = publisher.NewPublisher(s.pubSub, s.config, s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.VariantDiscountRepo.(*memory.VariantDiscountRepository).Clear()
	s.pubSub.ClearMessages()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the event publisher backed by GetPubSub
func (s *BaseServiceTestSuite) GetPublisher() publisher.EventPublisher {
	return s.publisher
}

// GetPubSub returns the pubsub that records published events
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetDecoder returns a decoder without an error sink
func (s *BaseServiceTestSuite) GetDecoder() *variantdiscount.Decoder {
	return variantdiscount.NewDecoder(s.logger, nil)
}

// GetEvaluator returns an evaluator without the target-product rule
func (s *BaseServiceTestSuite) GetEvaluator() *discountfunction.Evaluator {
	return discountfunction.NewEvaluator()
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
