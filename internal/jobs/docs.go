// Package jobs provides scheduled background tasks for the settlement system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery settlement service.
//
// # Available Jobs
//
// 1. DeliveryReminderJob - Sweeps upcoming deliveries on a configurable
// schedule and sends pickup reminders to customers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sendRemindersHandler, "0 */15 * * * *", 24*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reminder job uses a six-field cron expression with seconds, for example
// "0 */15 * * * *" to sweep every fifteen minutes. The reminder flag persisted
// on each delivery keeps notifications at-most-once even when sweep windows
// overlap.
//
// # Error Handling
//
// - A failed notification for one delivery is logged and skipped; the
// delivery stays unflagged and is retried on the next sweep
// - Failed job starts will stop any already running jobs
package jobs
