package domain

import (
	"time"
)

// JobID is a unique identifier for a resolve job.
type JobID string

// String returns the string representation of the JobID.
func (id JobID) String() string {
	return string(id)
}

// JobStatus represents the current state of a resolve job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// ResolveJob is a queued asynchronous resolution of one share URL.
type ResolveJob struct {
	ID         JobID
	ShareURL   string
	Status     JobStatus
	Result     *MediaResult // set when Status is completed
	Attempts   int
	MaxRetries int
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewResolveJob creates a queued job for a share URL.
func NewResolveJob(id JobID, shareURL string, maxRetries int) *ResolveJob {
	now := time.Now()
	return &ResolveJob{
		ID:         id,
		ShareURL:   shareURL,
		Status:     JobStatusQueued,
		MaxRetries: maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CanRetry returns true if the job has attempts left.
func (j *ResolveJob) CanRetry() bool {
	return j.Attempts < j.MaxRetries
}

// MarkProcessing updates the job status to processing.
func (j *ResolveJob) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now()
}

// MarkCompleted records the result and marks the job completed.
func (j *ResolveJob) MarkCompleted(result *MediaResult) {
	j.Status = JobStatusCompleted
	j.Result = result
	j.UpdatedAt = time.Now()
}

// MarkFailed counts the attempt and moves the job to retrying or failed.
func (j *ResolveJob) MarkFailed(errMsg string) {
	j.Attempts++
	j.LastError = errMsg
	j.UpdatedAt = time.Now()

	if j.CanRetry() {
		j.Status = JobStatusRetrying
	} else {
		j.Status = JobStatusFailed
	}
}
