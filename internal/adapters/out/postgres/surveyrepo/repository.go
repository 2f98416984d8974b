package surveyrepo

import (
	"context"
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSurveyRepository implements SurveyRepository using GORM.
type GormSurveyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSurveyRepository creates a new GORM survey repository.
func NewGormSurveyRepository(db *gorm.DB, tracker aggregateTracker) *GormSurveyRepository {
	return &GormSurveyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a submitted survey to the database.
func (r *GormSurveyRepository) Add(ctx context.Context, aggregate *survey.Survey) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByDelivery retrieves the survey submitted for a delivery.
func (r *GormSurveyRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*survey.Survey, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto SurveyDTO
	if err := r.db.WithContext(ctx).Preload("Answers").First(&dto, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("survey", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveQuestions retrieves the questions currently open for answering,
// ordered by their display position.
func (r *GormSurveyRepository) GetActiveQuestions(ctx context.Context) ([]*survey.Question, error) {
	var dtos []QuestionDTO
	if err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("position ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	questions := make([]*survey.Question, 0, len(dtos))
	for _, dto := range dtos {
		q, err := questionToDomain(dto)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}
