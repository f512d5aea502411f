package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueImport schedules a vocabulary file import and returns the job ID.
	EnqueueImport(path string) (string, error)
}
