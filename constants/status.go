package constants

// JobStatus is the canonical status for a document normalization job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued     JobStatus = "QUEUED"     // waiting for processing
	JobStatusRunning    JobStatus = "RUNNING"    // in progress
	JobStatusAnalyzed   JobStatus = "ANALYZED"   // stage 1 completed (block graph received)
	JobStatusNormalized JobStatus = "NORMALIZED" // stage 2 completed (record assembled)
	JobStatusFailed     JobStatus = "FAILED"     // terminal failure
)
