package commands_test

import (
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCreateDeliveryCommand(orderID, driverID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	orderProvider := new(MockOrderProvider)
	orderProvider.On("GetOrder", ctx, orderID).
		Return(ports.OrderInfo{ID: orderID, CustomerID: customerID}, nil).Once()

	var created *delivery.Delivery
	deliveryRepo := new(MockConfirmDeliveryRepository)
	uow := new(MockConfirmUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*delivery.Delivery)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateDeliveryCommandHandler(factory, orderProvider)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, delivery.StatusAssigned, created.Status())
	assert.Equal(t, delivery.ConfirmationPending, created.ConfirmationStatus())
	assert.True(t, customerID.IsEqual(created.CustomerID()))
	orderProvider.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateDeliveryCommand(orderID, kernel.NewUUID(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	orderProvider := new(MockOrderProvider)
	orderProvider.On("GetOrder", ctx, orderID).
		Return(ports.OrderInfo{}, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	factory := new(MockConfirmUoWFactory)

	handler := commands.NewCreateDeliveryCommandHandler(factory, orderProvider)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}
