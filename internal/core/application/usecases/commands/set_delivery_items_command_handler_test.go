package commands_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemsDeliveryRepository struct{ mock.Mock }

func (m *MockItemsDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockItemsDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockItemsDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockItemsDeliveryRepository) GetDueForReminder(ctx context.Context, from time.Time, to time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockItemsDeliveryRepository) CountConfirmedForCustomer(ctx context.Context, customerID kernel.UUID, excluding kernel.UUID) (int, error) {
	args := m.Called(ctx, customerID, excluding)
	return args.Int(0), args.Error(1)
}

type MockItemsUoW struct{ mock.Mock }

func (m *MockItemsUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemsUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemsUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemsUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockItemsUoWFactory struct{ mock.Mock }

func (m *MockItemsUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockCategoryCatalog struct{ mock.Mock }

func (m *MockCategoryCatalog) Exists(ctx context.Context, categoryID kernel.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func TestSetDeliveryItemsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreTestDelivery(t, delivery.StatusInProgress)

	plastic := kernel.NewUUID()
	paper := kernel.NewUUID()
	inputs := []commands.ItemInput{
		{CategoryID: plastic, Weight: settlementWeight(t, "12.50")},
		{CategoryID: paper, Weight: settlementWeight(t, "8.00")},
	}

	cmd, err := commands.NewSetDeliveryItemsCommand(aggregate.ID(), inputs)
	require.NoError(t, err)

	catalog := new(MockCategoryCatalog)
	catalog.On("Exists", ctx, plastic).Return(true, nil).Once()
	catalog.On("Exists", ctx, paper).Return(true, nil).Once()

	deliveryRepo := new(MockItemsDeliveryRepository)
	uow := new(MockItemsUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockItemsUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetDeliveryItemsCommandHandler(factory, catalog)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, aggregate.Items(), 2)
	assert.True(t, settlementWeight(t, "20.50").IsEqual(aggregate.TotalWeight()))
	catalog.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetDeliveryItemsCommandHandler_Handle_UnknownCategoryRejectsBatch(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreTestDelivery(t, delivery.StatusInProgress)

	known := kernel.NewUUID()
	unknown := kernel.NewUUID()
	inputs := []commands.ItemInput{
		{CategoryID: known, Weight: settlementWeight(t, "5.00")},
		{CategoryID: unknown, Weight: settlementWeight(t, "2.00")},
	}

	cmd, err := commands.NewSetDeliveryItemsCommand(aggregate.ID(), inputs)
	require.NoError(t, err)

	catalog := new(MockCategoryCatalog)
	catalog.On("Exists", ctx, known).Return(true, nil).Once()
	catalog.On("Exists", ctx, unknown).Return(false, nil).Once()

	factory := new(MockItemsUoWFactory)

	handler := commands.NewSetDeliveryItemsCommandHandler(factory, catalog)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUnknownCategory)
	assert.Empty(t, aggregate.Items())
	factory.AssertNotCalled(t, "Create")
}

func TestNewSetDeliveryItemsCommand_RequiresItems(t *testing.T) {
	_, err := commands.NewSetDeliveryItemsCommand(kernel.NewUUID(), nil)

	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}
