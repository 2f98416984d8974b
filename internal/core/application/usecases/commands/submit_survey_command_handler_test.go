package commands_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSurveyRepository struct{ mock.Mock }

func (m *MockSurveyRepository) Add(ctx context.Context, s *survey.Survey) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurveyRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*survey.Survey, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*survey.Survey), args.Error(1)
}

func (m *MockSurveyRepository) GetActiveQuestions(ctx context.Context) ([]*survey.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*survey.Question), args.Error(1)
}

type MockSurveyUoW struct{ mock.Mock }

func (m *MockSurveyUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSurveyUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSurveyUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSurveyUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockSurveyUoW) SurveyRepository() ports.SurveyRepository {
	args := m.Called()
	return args.Get(0).(ports.SurveyRepository)
}

type MockSurveyUoWFactory struct{ mock.Mock }

func (m *MockSurveyUoWFactory) Create() commands.SurveyUoW {
	args := m.Called()
	return args.Get(0).(commands.SurveyUoW)
}

func confirmedDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	confirmedAt := time.Now().Add(-time.Hour)
	aggregate, err := delivery.RestoreDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		delivery.StatusCompleted, delivery.ConfirmationConfirmed,
		nil, kernel.ZeroWeight(),
		nil, nil, nil, nil, &confirmedAt,
		time.Now().Add(-2*time.Hour), true,
	)
	require.NoError(t, err)
	return aggregate
}

func activeQuestion(t *testing.T, text string, position int) *survey.Question {
	t.Helper()
	q, err := survey.NewQuestion(text, position)
	require.NoError(t, err)
	return q
}

func TestSubmitSurveyCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedDelivery(t)
	q1 := activeQuestion(t, "How was the pickup?", 1)
	q2 := activeQuestion(t, "Was the driver on time?", 2)

	cmd, err := commands.NewSubmitSurveyCommand(aggregate.ID(), aggregate.CustomerID(),
		[]commands.AnswerInput{
			{QuestionID: q1.ID(), Text: "great"},
			{QuestionID: q2.ID(), Text: "yes"},
		})
	require.NoError(t, err)

	deliveryRepo := new(MockConfirmDeliveryRepository)
	surveyRepo := new(MockSurveyRepository)
	uow := new(MockSurveyUoW)
	notFound := errs.NewObjectNotFoundError("survey", aggregate.ID().String())

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("SurveyRepository").Return(surveyRepo).Once(),
		surveyRepo.On("GetByDelivery", ctx, aggregate.ID()).Return(nil, notFound).Once(),
		surveyRepo.On("GetActiveQuestions", ctx).Return([]*survey.Question{q1, q2}, nil).Once(),
		surveyRepo.On("Add", ctx, mock.AnythingOfType("*survey.Survey")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSurveyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitSurveyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	surveyRepo.AssertExpectations(t)
}

func TestSubmitSurveyCommandHandler_Handle_AlreadySubmitted(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedDelivery(t)
	q1 := activeQuestion(t, "How was the pickup?", 1)

	existing, err := survey.NewSurvey(aggregate.ID(), aggregate.CustomerID(),
		[]survey.Answer{mustAnswer(t, q1.ID(), "fine")}, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewSubmitSurveyCommand(aggregate.ID(), aggregate.CustomerID(),
		[]commands.AnswerInput{{QuestionID: q1.ID(), Text: "again"}})
	require.NoError(t, err)

	deliveryRepo := new(MockConfirmDeliveryRepository)
	surveyRepo := new(MockSurveyRepository)
	uow := new(MockSurveyUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("SurveyRepository").Return(surveyRepo).Once(),
		surveyRepo.On("GetByDelivery", ctx, aggregate.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSurveyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitSurveyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrSurveyAlreadySubmitted)
	surveyRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSubmitSurveyCommandHandler_Handle_UnconfirmedDelivery(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreTestDelivery(t, delivery.StatusCompleted)

	cmd, err := commands.NewSubmitSurveyCommand(aggregate.ID(), aggregate.CustomerID(),
		[]commands.AnswerInput{{QuestionID: kernel.NewUUID(), Text: "ok"}})
	require.NoError(t, err)

	deliveryRepo := new(MockConfirmDeliveryRepository)
	uow := new(MockSurveyUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSurveyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitSurveyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidStateTransition)
}

func TestSubmitSurveyCommandHandler_Handle_InactiveQuestion(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedDelivery(t)
	q1 := activeQuestion(t, "How was the pickup?", 1)
	retired := activeQuestion(t, "Old question", 9)

	cmd, err := commands.NewSubmitSurveyCommand(aggregate.ID(), aggregate.CustomerID(),
		[]commands.AnswerInput{{QuestionID: retired.ID(), Text: "stale"}})
	require.NoError(t, err)

	deliveryRepo := new(MockConfirmDeliveryRepository)
	surveyRepo := new(MockSurveyRepository)
	uow := new(MockSurveyUoW)
	notFound := errs.NewObjectNotFoundError("survey", aggregate.ID().String())

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("SurveyRepository").Return(surveyRepo).Once(),
		surveyRepo.On("GetByDelivery", ctx, aggregate.ID()).Return(nil, notFound).Once(),
		surveyRepo.On("GetActiveQuestions", ctx).Return([]*survey.Question{q1}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSurveyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitSurveyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUnknownQuestion)
	surveyRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func mustAnswer(t *testing.T, questionID kernel.UUID, text string) survey.Answer {
	t.Helper()
	a, err := survey.NewAnswer(questionID, text)
	require.NoError(t, err)
	return a
}
