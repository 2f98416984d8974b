package shortfallrepo_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/adapters/out/postgres/shortfallrepo"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"

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

// ShortfallRepositoryIntegrationTestSuite provides integration tests for
// ShortfallRepository using PostgreSQL containers, covering FIFO ordering of
// the outstanding set, deducted-record visibility, and the row locking that
// serializes concurrent settlements of one customer.
type ShortfallRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shortfallrepo.GormShortfallRepository
	tracker    *MockAggregateTracker
}

func (suite *ShortfallRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&shortfallrepo.ShortfallDTO{}))
}

func (suite *ShortfallRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shortfalls").Error)
	suite.tracker = new(MockAggregateTracker)
	suite.repository = shortfallrepo.NewGormShortfallRepository(suite.db, suite.tracker)
}

func (suite *ShortfallRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShortfallRepositoryIntegrationTestSuite) TestAdd_ValidShortfall_Success() {
	ctx := context.Background()

	record := suite.createShortfall(kernel.NewUUID(), time.Now())
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)

	suite.Require().NoError(err)
	var count int64
	suite.Require().NoError(suite.db.Model(&shortfallrepo.ShortfallDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShortfallRepositoryIntegrationTestSuite) TestGetOutstandingForCustomer_OldestFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Second)

	// Insert newest first so the ordering comes from created_at, not insertion
	newest := suite.createShortfall(customerID, now)
	middle := suite.createShortfall(customerID, now.Add(-1*time.Hour))
	oldest := suite.createShortfall(customerID, now.Add(-2*time.Hour))
	other := suite.createShortfall(kernel.NewUUID(), now.Add(-3*time.Hour))

	for _, record := range []*shortfall.Shortfall{newest, middle, oldest, other} {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
		suite.Require().NoError(suite.repository.Add(ctx, record))
	}

	outstanding, err := suite.repository.GetOutstandingForCustomer(ctx, customerID)

	suite.Require().NoError(err)
	suite.Require().Len(outstanding, 3)
	suite.Equal(oldest.ID(), outstanding[0].ID())
	suite.Equal(middle.ID(), outstanding[1].ID())
	suite.Equal(newest.ID(), outstanding[2].ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShortfallRepositoryIntegrationTestSuite) TestUpdate_ClosedRecord_LeavesOutstandingSet() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	open := suite.createShortfall(customerID, time.Now().Add(-1*time.Hour))
	kept := suite.createShortfall(customerID, time.Now())
	suite.tracker.On("TrackAggregate", open.ID(), open).Twice()
	suite.tracker.On("TrackAggregate", kept.ID(), kept).Once()
	suite.Require().NoError(suite.repository.Add(ctx, open))
	suite.Require().NoError(suite.repository.Add(ctx, kept))

	deductingDelivery := kernel.NewUUID()
	suite.Require().NoError(open.Close(deductingDelivery, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, open))

	outstanding, err := suite.repository.GetOutstandingForCustomer(ctx, customerID)

	suite.Require().NoError(err)
	suite.Require().Len(outstanding, 1)
	suite.Equal(kept.ID(), outstanding[0].ID())

	// The closed record keeps its deduction trail
	var dto shortfallrepo.ShortfallDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", open.ID().Bytes()).Error)
	suite.True(dto.IsDeducted)
	suite.Require().NotNil(dto.DeductedFrom)
	suite.Equal(deductingDelivery.Bytes(), *dto.DeductedFrom)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShortfallRepositoryIntegrationTestSuite) TestGetOutstandingForCustomer_SerializesConcurrentSettlements() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	first := suite.createShortfall(customerID, time.Now().Add(-2*time.Hour))
	second := suite.createShortfall(customerID, time.Now().Add(-1*time.Hour))
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	// First settlement locks the outstanding set
	firstTx := suite.db.Begin()
	suite.Require().NoError(firstTx.Error)
	firstRepo := shortfallrepo.NewGormShortfallRepository(firstTx, suite.tracker)
	locked, err := firstRepo.GetOutstandingForCustomer(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().Len(locked, 2)

	// Second settlement starts concurrently; its FOR UPDATE select must wait
	// for the first transaction and then see no open records left
	type sweep struct {
		rows []*shortfall.Shortfall
		err  error
	}
	secondDone := make(chan sweep, 1)
	go func() {
		secondTx := suite.db.Begin()
		if secondTx.Error != nil {
			secondDone <- sweep{err: secondTx.Error}
			return
		}
		secondRepo := shortfallrepo.NewGormShortfallRepository(secondTx, suite.tracker)
		rows, rowsErr := secondRepo.GetOutstandingForCustomer(ctx, customerID)
		secondTx.Commit()
		secondDone <- sweep{rows: rows, err: rowsErr}
	}()

	deductingDelivery := kernel.NewUUID()
	for _, open := range locked {
		suite.Require().NoError(open.Close(deductingDelivery, time.Now()))
		suite.Require().NoError(firstRepo.Update(ctx, open))
	}
	suite.Require().NoError(firstTx.Commit().Error)

	select {
	case result := <-secondDone:
		suite.Require().NoError(result.err)
		suite.Empty(result.rows)
	case <-time.After(10 * time.Second):
		suite.FailNow("second settlement never acquired the row locks")
	}
}

// createShortfall restores an open 3kg-delivered-of-5kg-minimum record so the
// created_at timestamp is under test control.
func (suite *ShortfallRepositoryIntegrationTestSuite) createShortfall(customerID kernel.UUID, createdAt time.Time) *shortfall.Shortfall {
	minimum, err := kernel.NewWeightFromString("5.00")
	suite.Require().NoError(err)
	delivered, err := kernel.NewWeightFromString("3.00")
	suite.Require().NoError(err)

	deliveryID := kernel.NewUUID()
	record, err := shortfall.RestoreShortfall(
		kernel.NewUUID(), customerID, &deliveryID,
		"5-10", minimum, delivered,
		delivered.Value().Sub(minimum.Value()),
		false, nil, nil, createdAt,
	)
	suite.Require().NoError(err)
	return record
}

func TestShortfallRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShortfallRepositoryIntegrationTestSuite))
}
