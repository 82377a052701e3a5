package interfaces

// SchedulerInterface drives the background jobs of the usage pipeline.
// Restore runs once before Init; Persist runs once more after Stop.
type SchedulerInterface interface {
	// Init starts the persist, aggregate and limiter sweep jobs.
	Init()
	Stop()
	Restore() error
	Persist() error
}
