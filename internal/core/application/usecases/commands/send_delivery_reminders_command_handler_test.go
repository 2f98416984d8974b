package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) SendReminder(ctx context.Context, customerID kernel.UUID, deliveryID kernel.UUID) error {
	args := m.Called(ctx, customerID, deliveryID)
	return args.Error(0)
}

func dueDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	aggregate, err := delivery.RestoreDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		delivery.StatusAssigned, delivery.ConfirmationPending,
		nil, kernel.ZeroWeight(),
		nil, nil, nil, nil, nil,
		time.Now().Add(time.Hour), false,
	)
	require.NoError(t, err)
	return aggregate
}

func TestSendDeliveryRemindersCommandHandler_Handle_MarksReminded(t *testing.T) {
	ctx := t.Context()
	first := dueDelivery(t)
	second := dueDelivery(t)

	from := time.Now()
	to := from.Add(2 * time.Hour)
	cmd, err := commands.NewSendDeliveryRemindersCommand(from, to)
	require.NoError(t, err)

	sink := new(MockNotificationSink)
	sink.On("SendReminder", ctx, first.CustomerID(), first.ID()).Return(nil).Once()
	sink.On("SendReminder", ctx, second.CustomerID(), second.ID()).Return(nil).Once()

	deliveryRepo := new(MockConfirmDeliveryRepository)
	uow := new(MockConfirmUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetDueForReminder", ctx, from, to).
			Return([]*delivery.Delivery{first, second}, nil).Once(),
		deliveryRepo.On("Update", ctx, first).Return(nil).Once(),
		deliveryRepo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendDeliveryRemindersCommandHandler(factory, sink, slog.Default())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, first.ReminderSent())
	assert.True(t, second.ReminderSent())
	sink.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSendDeliveryRemindersCommandHandler_Handle_SkipsFailedNotification(t *testing.T) {
	ctx := t.Context()
	failing := dueDelivery(t)
	working := dueDelivery(t)

	from := time.Now()
	to := from.Add(2 * time.Hour)
	cmd, err := commands.NewSendDeliveryRemindersCommand(from, to)
	require.NoError(t, err)

	sink := new(MockNotificationSink)
	sink.On("SendReminder", ctx, failing.CustomerID(), failing.ID()).
		Return(errors.New("sms gateway down")).Once()
	sink.On("SendReminder", ctx, working.CustomerID(), working.ID()).Return(nil).Once()

	deliveryRepo := new(MockConfirmDeliveryRepository)
	uow := new(MockConfirmUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetDueForReminder", ctx, from, to).
			Return([]*delivery.Delivery{failing, working}, nil).Once(),
		deliveryRepo.On("Update", ctx, working).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConfirmUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendDeliveryRemindersCommandHandler(factory, sink, slog.Default())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// the failed delivery keeps its flag clear so the next sweep retries it
	assert.False(t, failing.ReminderSent())
	assert.True(t, working.ReminderSent())
}

func TestNewSendDeliveryRemindersCommand_RejectsEmptyWindow(t *testing.T) {
	now := time.Now()

	_, err := commands.NewSendDeliveryRemindersCommand(now, now)

	require.ErrorIs(t, err, commands.ErrReminderWindowIsInvalid)
}
