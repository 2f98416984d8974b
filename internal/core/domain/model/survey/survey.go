// Package survey is the post-delivery questionnaire aggregate. A customer may
// submit at most one survey per delivery, and only answers to currently active
// questions are accepted.
package survey

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrSurveyIsNotConstructed is returned when Survey is used without constructor.
	ErrSurveyIsNotConstructed = errors.New("survey is not constructed")

	// ErrNoAnswers is returned when a survey is submitted without any answers.
	ErrNoAnswers = errors.New("survey must contain at least one answer")

	// ErrDuplicateQuestion is returned when two answers target the same question.
	ErrDuplicateQuestion = errors.New("survey contains multiple answers for the same question")
)

// Answer is one free-text response keyed to a question.
type Answer struct {
	questionID kernel.UUID
	text       string
}

// NewAnswer creates an answer. The text may not be empty.
func NewAnswer(questionID kernel.UUID, text string) (Answer, error) {
	if err := questionID.Validate(); err != nil {
		return Answer{}, errs.NewValueIsInvalidErrorWithCause("questionID", err)
	}
	if text == "" {
		return Answer{}, errs.NewValueIsRequiredError("text")
	}

	return Answer{questionID: questionID, text: text}, nil
}

// QuestionID returns the answered question's identifier.
func (a Answer) QuestionID() kernel.UUID { return a.questionID }

// Text returns the response text.
func (a Answer) Text() string { return a.text }

// Survey is one customer's completed questionnaire for a single delivery.
type Survey struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	customerID kernel.UUID
	answers    []Answer
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewSurvey creates a survey for a delivery. Answers must be non-empty and
// must not answer the same question twice.
func NewSurvey(deliveryID kernel.UUID, customerID kernel.UUID,
	answers []Answer, now time.Time) (*Survey, error) {
	return RestoreSurvey(kernel.NewUUID(), deliveryID, customerID, answers, now)
}

// RestoreSurvey restores a survey from persistence.
func RestoreSurvey(id kernel.UUID, deliveryID kernel.UUID, customerID kernel.UUID,
	answers []Answer, createdAt time.Time) (*Survey, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		customerID.Validate(),
		validateAnswers(answers),
	); err != nil {
		return nil, err
	}

	return &Survey{
		id:         id,
		deliveryID: deliveryID,
		customerID: customerID,
		answers:    answers,
		createdAt:  createdAt,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func validateAnswers(answers []Answer) error {
	if len(answers) == 0 {
		return ErrNoAnswers
	}

	seen := make(map[kernel.UUID]struct{}, len(answers))
	for _, a := range answers {
		if a.text == "" {
			return errs.NewValueIsRequiredError("answer text")
		}
		if _, ok := seen[a.questionID]; ok {
			return ErrDuplicateQuestion
		}
		seen[a.questionID] = struct{}{}
	}

	return nil
}

// ID returns the survey identifier.
func (s *Survey) ID() kernel.UUID { return s.id }

// DeliveryID returns the delivery this survey belongs to.
func (s *Survey) DeliveryID() kernel.UUID { return s.deliveryID }

// CustomerID returns the submitting customer.
func (s *Survey) CustomerID() kernel.UUID { return s.customerID }

// Answers returns the submitted answers.
func (s *Survey) Answers() []Answer { return s.answers }

// CreatedAt returns the submission time.
func (s *Survey) CreatedAt() time.Time { return s.createdAt }

// Validate checks that the survey was created through a constructor.
func (s *Survey) Validate() error {
	return s.guard.Validate(ErrSurveyIsNotConstructed)
}
