package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"
)

// SurveyRepository defines the persistence contract for post-delivery surveys
// and their question catalog.
type SurveyRepository interface {
	// Add persists a new survey.
	Add(ctx context.Context, aggregate *survey.Survey) error

	// GetByDelivery retrieves the survey submitted for a delivery.
	// Returns errs.ObjectNotFoundError when none exists.
	GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*survey.Survey, error)

	// GetActiveQuestions retrieves the questions currently open for answers,
	// ordered by display position.
	GetActiveQuestions(ctx context.Context) ([]*survey.Question, error)
}
