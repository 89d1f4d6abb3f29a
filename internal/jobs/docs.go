// Package jobs provides scheduled background tasks for the booking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the booking service.
//
// # Available Jobs
//
// 1. JobExpiryJob - Runs every minute to time out pending bookings whose
// acceptance window has closed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireJobsHandler, logger)
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
// The expiry job uses the cron expression "0 * * * * *" so the sweep runs
// at the top of every minute. The expiry window is measured in hours, so a
// minute of slack is well within tolerance.
//
// # Error Handling
//
// The expiry sweep skips individual bookings that fail to transition and
// logs a summary count when anything was expired. A failed sweep is logged
// and retried on the next tick.
package jobs
