package survey_test

import (
	"testing"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUUID(t *testing.T) kernel.UUID {
	t.Helper()
	return kernel.NewUUID()
}

func newAnswer(t *testing.T, text string) survey.Answer {
	t.Helper()
	a, err := survey.NewAnswer(newUUID(t), text)
	require.NoError(t, err)
	return a
}

func TestNewSurvey(t *testing.T) {
	t.Run("should create survey with answers", func(t *testing.T) {
		deliveryID := newUUID(t)
		customerID := newUUID(t)
		answers := []survey.Answer{newAnswer(t, "great"), newAnswer(t, "on time")}
		now := time.Now()

		s, err := survey.NewSurvey(deliveryID, customerID, answers, now)

		require.NoError(t, err)
		assert.NoError(t, s.Validate())
		assert.True(t, deliveryID.IsEqual(s.DeliveryID()))
		assert.True(t, customerID.IsEqual(s.CustomerID()))
		assert.Len(t, s.Answers(), 2)
		assert.Equal(t, now, s.CreatedAt())
	})

	t.Run("should reject empty answer set", func(t *testing.T) {
		_, err := survey.NewSurvey(newUUID(t), newUUID(t), nil, time.Now())

		require.ErrorIs(t, err, survey.ErrNoAnswers)
	})

	t.Run("should reject duplicate question answers", func(t *testing.T) {
		questionID := newUUID(t)
		first, err := survey.NewAnswer(questionID, "yes")
		require.NoError(t, err)
		second, err := survey.NewAnswer(questionID, "no")
		require.NoError(t, err)

		_, err = survey.NewSurvey(newUUID(t), newUUID(t),
			[]survey.Answer{first, second}, time.Now())

		require.ErrorIs(t, err, survey.ErrDuplicateQuestion)
	})
}

func TestNewAnswer(t *testing.T) {
	t.Run("should reject empty text", func(t *testing.T) {
		_, err := survey.NewAnswer(newUUID(t), "")

		require.Error(t, err)
	})
}

func TestQuestion(t *testing.T) {
	t.Run("should create active question", func(t *testing.T) {
		q, err := survey.NewQuestion("How was the delivery?", 1)

		require.NoError(t, err)
		assert.NoError(t, q.Validate())
		assert.True(t, q.IsActive())
		assert.Equal(t, 1, q.Position())
	})

	t.Run("should reject empty text", func(t *testing.T) {
		_, err := survey.NewQuestion("", 1)

		require.Error(t, err)
	})

	t.Run("should deactivate", func(t *testing.T) {
		q, err := survey.NewQuestion("Any issues?", 2)
		require.NoError(t, err)

		q.Deactivate()

		assert.False(t, q.IsActive())
	})
}
