package survey

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

// ErrQuestionIsNotConstructed is returned when Question is used without constructor.
var ErrQuestionIsNotConstructed = errors.New("question is not constructed")

// Question is one questionnaire item. Inactive questions remain in storage for
// historical surveys but no longer accept answers.
type Question struct {
	id       kernel.UUID
	text     string
	position int
	isActive bool

	guard guard.ConstructorGuard
}

// NewQuestion creates an active question at the given display position.
func NewQuestion(text string, position int) (*Question, error) {
	return RestoreQuestion(kernel.NewUUID(), text, position, true)
}

// RestoreQuestion restores a question from persistence.
func RestoreQuestion(id kernel.UUID, text string, position int, isActive bool) (*Question, error) {
	if err := errors.Join(
		id.Validate(),
		validateQuestionText(text),
	); err != nil {
		return nil, err
	}

	return &Question{
		id:       id,
		text:     text,
		position: position,
		isActive: isActive,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func validateQuestionText(text string) error {
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	return nil
}

// ID returns the question identifier.
func (q *Question) ID() kernel.UUID { return q.id }

// Text returns the question text.
func (q *Question) Text() string { return q.text }

// Position returns the display order of the question.
func (q *Question) Position() int { return q.position }

// IsActive reports whether the question currently accepts answers.
func (q *Question) IsActive() bool { return q.isActive }

// Deactivate retires the question from new surveys.
func (q *Question) Deactivate() { q.isActive = false }

// Validate checks that the question was created through a constructor.
func (q *Question) Validate() error {
	return q.guard.Validate(ErrQuestionIsNotConstructed)
}
