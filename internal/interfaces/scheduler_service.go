package interfaces

// SchedulerService runs the portfolio scan on a cron schedule.
type SchedulerService interface {
	// Start registers task under the given cron expression and begins the
	// scheduler. A scheduler can only be started once.
	Start(cronExpr string, task func()) error

	// Stop halts the scheduler and waits for an in-flight task to finish
	Stop()

	// IsRunning reports whether the scheduler is active
	IsRunning() bool
}
