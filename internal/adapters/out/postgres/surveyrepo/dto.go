// Package surveyrepo provides data transfer objects and mapping functions for survey persistence.
package surveyrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"

	"github.com/google/uuid"
)

// SurveyDTO represents the database structure for persisting submitted surveys.
// The unique index on delivery ID enforces one survey per delivery.
type SurveyDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time         `gorm:"type:timestamptz;not null"`
	Answers    []SurveyAnswerDTO `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for survey entities.
// Overrides GORM's default naming convention to use "surveys" instead of "survey_dtos".
func (SurveyDTO) TableName() string {
	return "surveys"
}

// SurveyAnswerDTO represents one answered question within a survey.
// A question can be answered at most once per survey.
type SurveyAnswerDTO struct {
	SurveyID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text       string    `gorm:"type:text;not null"`
}

// TableName specifies the database table name for survey answers.
// Overrides GORM's default naming convention to use "survey_answers" instead of "survey_answer_dtos".
func (SurveyAnswerDTO) TableName() string {
	return "survey_answers"
}

// QuestionDTO represents the database structure for persisting survey questions.
type QuestionDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	Position int       `gorm:"type:int;not null"`
	IsActive bool      `gorm:"not null;default:true;index"`
}

// TableName specifies the database table name for survey questions.
// Overrides GORM's default naming convention to use "survey_questions" instead of "question_dtos".
func (QuestionDTO) TableName() string {
	return "survey_questions"
}

// fromDomain converts a survey domain aggregate to its database representation.
func fromDomain(aggregate *survey.Survey) SurveyDTO {
	surveyID := aggregate.ID().Bytes()
	answers := make([]SurveyAnswerDTO, 0, len(aggregate.Answers()))

	for _, answer := range aggregate.Answers() {
		answers = append(answers, SurveyAnswerDTO{
			SurveyID:   surveyID,
			QuestionID: answer.QuestionID().Bytes(),
			Text:       answer.Text(),
		})
	}

	return SurveyDTO{
		ID:         surveyID,
		DeliveryID: aggregate.DeliveryID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		CreatedAt:  aggregate.CreatedAt(),
		Answers:    answers,
	}
}

// toDomain converts a database DTO to a survey domain aggregate.
func toDomain(dto SurveyDTO) (*survey.Survey, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	answers := make([]survey.Answer, 0, len(dto.Answers))
	for _, answerDto := range dto.Answers {
		questionID, answerErr := kernel.UUIDFromBytes(answerDto.QuestionID[:])
		if answerErr != nil {
			return nil, answerErr
		}

		answer, answerErr := survey.NewAnswer(questionID, answerDto.Text)
		if answerErr != nil {
			return nil, answerErr
		}
		answers = append(answers, answer)
	}

	return survey.RestoreSurvey(id, deliveryID, customerID, answers, dto.CreatedAt)
}

// questionToDomain converts a question DTO to domain entity.
func questionToDomain(dto QuestionDTO) (*survey.Question, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return survey.RestoreQuestion(id, dto.Text, dto.Position, dto.IsActive)
}
