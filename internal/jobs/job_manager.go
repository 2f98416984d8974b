package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"settlement/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryReminderJob *DeliveryReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sendRemindersHandler commands.SendDeliveryRemindersCommandHandler,
	reminderSchedule string,
	reminderWindow time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryReminderJob: NewDeliveryReminderJob(sendRemindersHandler, reminderSchedule, reminderWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryReminderJob.Stop()
}
