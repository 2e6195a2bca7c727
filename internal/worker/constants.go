package worker

import "time"

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = time.Minute

// Log messages
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobSkipped = "Worker queue full, job skipped"
	LogMsgWorkerPoolStop   = "Worker pool stopped"
)

// Log fields
const (
	LogFieldJob   = "job"
	LogFieldError = "error"
)
