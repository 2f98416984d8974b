package commands

import (
	"context"
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"
	"settlement/internal/pkg/errs"
)

var (
	// ErrSurveyAlreadySubmitted is returned when the delivery already has a
	// survey. One survey per delivery.
	ErrSurveyAlreadySubmitted = errors.New("survey was already submitted for this delivery")

	// ErrUnknownQuestion is returned when an answer targets a question that
	// does not exist or is no longer active.
	ErrUnknownQuestion = errors.New("answer references an unknown or inactive question")
)

// SubmitSurveyCommandHandler records the customer's questionnaire for a
// confirmed delivery. Answers are accepted only for currently active
// questions.
type SubmitSurveyCommandHandler struct {
	uowFactory SurveyUoWFactory
}

// NewSubmitSurveyCommandHandler creates a handler for survey submission.
func NewSubmitSurveyCommandHandler(uowFactory SurveyUoWFactory) SubmitSurveyCommandHandler {
	return SubmitSurveyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the submission. The delivery must be Completed and
// Confirmed, belong to the submitting customer, and not have a survey yet.
func (h *SubmitSurveyCommandHandler) Handle(ctx context.Context, cmd SubmitSurveyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("delivery", cmd.DeliveryID().String())
	}
	if err = aggregate.EnsureSurveyable(); err != nil {
		return err
	}

	surveyRepo := uow.SurveyRepository()
	if _, err = surveyRepo.GetByDelivery(ctx, cmd.DeliveryID()); err == nil {
		return ErrSurveyAlreadySubmitted
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	questions, err := surveyRepo.GetActiveQuestions(ctx)
	if err != nil {
		return err
	}

	active := make(map[kernel.UUID]struct{}, len(questions))
	for _, q := range questions {
		active[q.ID()] = struct{}{}
	}

	answers := make([]survey.Answer, 0, len(cmd.Answers()))
	for _, input := range cmd.Answers() {
		if _, ok := active[input.QuestionID]; !ok {
			return ErrUnknownQuestion
		}

		answer, err := survey.NewAnswer(input.QuestionID, input.Text)
		if err != nil {
			return err
		}
		answers = append(answers, answer)
	}

	record, err := survey.NewSurvey(cmd.DeliveryID(), cmd.CustomerID(), answers, time.Now())
	if err != nil {
		return err
	}

	if err = surveyRepo.Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
