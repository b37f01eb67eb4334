package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/xresolve/internal/domain"
	"github.com/iconidentify/xresolve/internal/repository"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockResolverService is a test implementation of ResolverService.
type mockResolverService struct {
	result     *domain.MediaResult
	resolveErr error

	job       *domain.ResolveJob
	submitErr error
	getJobErr error

	history    []*domain.Resolution
	historyErr error

	export    []byte
	exportErr error

	lastURL    string
	lastPostID string
}

func (m *mockResolverService) Resolve(ctx context.Context, shareURL string) (*domain.MediaResult, error) {
	m.lastURL = shareURL
	return m.result, m.resolveErr
}

func (m *mockResolverService) ResolveID(ctx context.Context, postID string) (*domain.MediaResult, error) {
	m.lastPostID = postID
	return m.result, m.resolveErr
}

func (m *mockResolverService) Submit(ctx context.Context, shareURL string) (*domain.ResolveJob, error) {
	m.lastURL = shareURL
	return m.job, m.submitErr
}

func (m *mockResolverService) GetJob(ctx context.Context, id domain.JobID) (*domain.ResolveJob, error) {
	if m.getJobErr != nil {
		return nil, m.getJobErr
	}
	return m.job, nil
}

func (m *mockResolverService) History(ctx context.Context, limit int) ([]*domain.Resolution, error) {
	return m.history, m.historyErr
}

func (m *mockResolverService) ExportHistory(ctx context.Context, limit int, password string) ([]byte, error) {
	return m.export, m.exportErr
}

// mockJobRepository is a test implementation of repository.JobRepository.
type mockJobRepository struct {
	stats    *repository.QueueStats
	statsErr error
	jobs     map[domain.JobID]*domain.ResolveJob
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{
		stats: &repository.QueueStats{},
		jobs:  make(map[domain.JobID]*domain.ResolveJob),
	}
}

func (m *mockJobRepository) Enqueue(ctx context.Context, job *domain.ResolveJob) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepository) Dequeue(ctx context.Context) (*domain.ResolveJob, error) {
	for _, job := range m.jobs {
		if job.Status == domain.JobStatusQueued {
			return job, nil
		}
	}
	return nil, domain.ErrNoJobs
}

func (m *mockJobRepository) Get(ctx context.Context, id domain.JobID) (*domain.ResolveJob, error) {
	if job, ok := m.jobs[id]; ok {
		return job, nil
	}
	return nil, domain.ErrJobNotFound
}

func (m *mockJobRepository) Update(ctx context.Context, job *domain.ResolveJob) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepository) Stats(ctx context.Context) (*repository.QueueStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}
