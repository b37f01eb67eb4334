package repository

import (
	"context"

	"github.com/iconidentify/xresolve/internal/domain"
)

// JobRepository manages the async resolve-job queue.
type JobRepository interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *domain.ResolveJob) error

	// Dequeue retrieves the next pending job (FIFO).
	// Returns domain.ErrNoJobs when the queue is empty.
	Dequeue(ctx context.Context) (*domain.ResolveJob, error)

	// Update modifies job state. A retrying job re-enters the queue.
	Update(ctx context.Context, job *domain.ResolveJob) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id domain.JobID) (*domain.ResolveJob, error)

	// Stats returns queue statistics.
	Stats(ctx context.Context) (*QueueStats, error)
}

// HistoryRepository persists the resolution audit log.
type HistoryRepository interface {
	// Record appends one resolution to the log.
	Record(ctx context.Context, res *domain.Resolution) error

	// Recent returns up to limit resolutions, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Resolution, error)

	// Close releases the underlying store.
	Close() error
}

// QueueStats contains job queue statistics.
type QueueStats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Retrying   int `json:"retrying"`
}
