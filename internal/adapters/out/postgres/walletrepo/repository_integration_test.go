package walletrepo_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/adapters/out/postgres/walletrepo"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/wallet"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// WalletRepositoryIntegrationTestSuite provides integration tests for
// WalletRepository using PostgreSQL containers, covering the append-only
// transaction trail and balance conservation across round trips.
type WalletRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *walletrepo.GormWalletRepository
	tracker    *MockAggregateTracker
}

func (suite *WalletRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&walletrepo.WalletDTO{}, &walletrepo.TransactionDTO{}))
}

func (suite *WalletRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transactions, wallets").Error)
	suite.tracker = new(MockAggregateTracker)
	suite.repository = walletrepo.NewGormWalletRepository(suite.db, suite.tracker)
}

func (suite *WalletRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WalletRepositoryIntegrationTestSuite) TestAdd_And_GetByOwner_RoundTrip() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()

	owned, err := wallet.NewWallet(kernel.NewUUID(), ownerID)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", owned.ID(), owned).Once()
	suite.Require().NoError(suite.repository.Add(ctx, owned))

	retrieved, err := suite.repository.GetByOwner(ctx, ownerID)

	suite.Require().NoError(err)
	suite.Equal(owned.ID(), retrieved.ID())
	suite.Equal(ownerID, retrieved.OwnerID())
	suite.True(retrieved.Balance().IsZero())
	suite.Empty(retrieved.Transactions())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WalletRepositoryIntegrationTestSuite) TestGetByOwner_NonExistentOwner_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByOwner(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *WalletRepositoryIntegrationTestSuite) TestUpdate_AppendsLedgerWithoutRewriting() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()

	owned, err := wallet.NewWallet(kernel.NewUUID(), ownerID)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", owned.ID(), owned).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, owned))

	firstRef := kernel.NewUUID().String()
	suite.creditWallet(owned, "18000", "delivery settlement", firstRef)
	suite.Require().NoError(suite.repository.Update(ctx, owned))

	// Reload and credit again; the first row must survive untouched
	reloaded, err := suite.repository.GetByOwner(ctx, ownerID)
	suite.Require().NoError(err)
	secondRef := kernel.NewUUID().String()
	suite.creditWallet(reloaded, "2000", "delivery payout", secondRef)
	suite.tracker.On("TrackAggregate", reloaded.ID(), reloaded).Once()
	suite.Require().NoError(suite.repository.Update(ctx, reloaded))

	final, err := suite.repository.GetByOwner(ctx, ownerID)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("20000").Equal(final.Balance()),
		"balance: %s", final.Balance())
	suite.Require().Len(final.Transactions(), 2)
	suite.True(final.IsBalanced())

	references := make(map[string]string, 2)
	for _, tx := range final.Transactions() {
		references[tx.Reference()] = tx.Description()
	}
	suite.Equal("delivery settlement", references[firstRef])
	suite.Equal("delivery payout", references[secondRef])
}

func (suite *WalletRepositoryIntegrationTestSuite) TestUpdate_ReplayedTransactions_NotDuplicated() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()

	owned, err := wallet.NewWallet(kernel.NewUUID(), ownerID)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", owned.ID(), owned).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, owned))

	suite.creditWallet(owned, "5000", "delivery settlement", kernel.NewUUID().String())
	suite.Require().NoError(suite.repository.Update(ctx, owned))

	// Saving the same aggregate again must not mint a second ledger row
	suite.Require().NoError(suite.repository.Update(ctx, owned))

	var count int64
	suite.Require().NoError(suite.db.Model(&walletrepo.TransactionDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WalletRepositoryIntegrationTestSuite) creditWallet(owned *wallet.Wallet, amount, description, reference string) {
	money, err := kernel.NewMoney(decimal.RequireFromString(amount), "IRR")
	suite.Require().NoError(err)
	_, err = owned.Credit(money, description, reference, time.Now())
	suite.Require().NoError(err)
}

func TestWalletRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WalletRepositoryIntegrationTestSuite))
}
