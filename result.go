package cloudzcrypt

import "time"

// Status is an immutable progress snapshot. One is emitted before the batch
// starts and one after every file completes, in processing order.
type Status struct {
	ProcessedFiles int
	TotalFiles     int
	ProcessedBytes int64
	TotalBytes     int64
	Elapsed        time.Duration
}

// Result is the final outcome of one batch invocation
type Result struct {
	Status

	// Success is true when every enumerated file was processed and no
	// errors were recorded.
	Success bool

	// Errors is the ordered list of human-readable error messages collected
	// during the batch.
	Errors []string
}

// HasErrors reports whether any error was recorded
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// IsHardFailure reports whether the batch accomplished nothing at all:
// errors were recorded and not a single file was processed. A batch that
// processed at least one file is a partial success whose error list the
// caller must surface.
func (r *Result) IsHardFailure() bool {
	return len(r.Errors) > 0 && r.ProcessedFiles == 0
}

// ProgressFunc receives progress snapshots. Delivery is best-effort: a
// panicking sink never fails the batch.
type ProgressFunc func(Status)
