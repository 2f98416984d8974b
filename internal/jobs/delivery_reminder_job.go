package jobs

import (
	"context"
	"log/slog"
	"time"

	"settlement/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryReminderJob periodically sweeps upcoming deliveries and sends
// pickup reminders to their customers. Each sweep covers deliveries scheduled
// between now and now plus the configured lookahead window; the reminder flag
// on the delivery keeps the sweep at-most-once per delivery across runs.
type DeliveryReminderJob struct {
	handler  commands.SendDeliveryRemindersCommandHandler
	schedule string
	window   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryReminderJob creates a job that runs on the given cron schedule
// (with seconds field) and reminds deliveries due within the window.
func NewDeliveryReminderJob(
	handler commands.SendDeliveryRemindersCommandHandler,
	schedule string,
	window time.Duration,
	logger *slog.Logger,
) *DeliveryReminderJob {
	return &DeliveryReminderJob{
		handler:  handler,
		schedule: schedule,
		window:   window,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delivery_reminder_job"),
	}
}

// Start begins the reminder sweep on its configured schedule.
func (j *DeliveryReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		now := time.Now()

		cmd, cmdErr := commands.NewSendDeliveryRemindersCommand(now, now.Add(j.window))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Delivery reminder job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Delivery reminder sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery reminder job started",
		"schedule", j.schedule, "window", j.window.String())
	return nil
}

// Stop stops the reminder job.
func (j *DeliveryReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery reminder job stopped")
}
