package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrSubmitSurveyCommandIsNotConstructed = errors.New(
		"SubmitSurveyCommand must be created via NewSubmitSurveyCommand constructor",
	)
	ErrAnswersAreRequired = errors.New("at least one answer is required")
)

// AnswerInput is one free-text response in a survey submission.
type AnswerInput struct {
	QuestionID kernel.UUID
	Text       string
}

// SubmitSurveyCommand represents the customer answering the post-delivery
// questionnaire for a confirmed pickup.
type SubmitSurveyCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	customerID kernel.UUID
	answers    []AnswerInput

	guard guard.ConstructorGuard
}

// NewSubmitSurveyCommand creates a survey submission command.
func NewSubmitSurveyCommand(deliveryID kernel.UUID, customerID kernel.UUID,
	answers []AnswerInput) (SubmitSurveyCommand, error) {
	command := SubmitSurveyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setCustomerID(customerID),
		command.setAnswers(answers),
	); err != nil {
		return SubmitSurveyCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitSurveyCommand) Validate() error {
	return c.guard.Validate(ErrSubmitSurveyCommandIsNotConstructed)
}

// DeliveryID returns the surveyed delivery.
func (c SubmitSurveyCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CustomerID returns the submitting customer.
func (c SubmitSurveyCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Answers returns the submitted responses.
func (c SubmitSurveyCommand) Answers() []AnswerInput {
	return c.answers
}

func (c *SubmitSurveyCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *SubmitSurveyCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *SubmitSurveyCommand) setAnswers(answers []AnswerInput) error {
	if len(answers) == 0 {
		return ErrAnswersAreRequired
	}

	for _, answer := range answers {
		if err := answer.QuestionID.Validate(); err != nil {
			return err
		}
	}

	c.answers = answers
	return nil
}
