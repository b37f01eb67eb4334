package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/xresolve/internal/config"
	"github.com/iconidentify/xresolve/internal/domain"
	"github.com/iconidentify/xresolve/internal/repository"
	"github.com/iconidentify/xresolve/pkg/crypto"
	"github.com/iconidentify/xresolve/pkg/twitter"
)

// PostResolver turns share URLs and post IDs into media results.
// *twitter.Client is the production implementation.
type PostResolver interface {
	ResolveURL(ctx context.Context, shareURL string) (*domain.MediaResult, error)
	ResolveID(ctx context.Context, postID string) (*domain.MediaResult, error)
}

// ResolverService orchestrates resolution, the async job queue, and the
// resolution history log.
type ResolverService struct {
	resolver PostResolver
	jobs     repository.JobRepository
	history  repository.HistoryRepository
	cfg      config.WorkerConfig
	logger   *slog.Logger
}

// NewResolverService creates a new resolver service.
func NewResolverService(
	resolver PostResolver,
	jobs repository.JobRepository,
	history repository.HistoryRepository,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) *ResolverService {
	return &ResolverService{
		resolver: resolver,
		jobs:     jobs,
		history:  history,
		cfg:      cfg,
		logger:   logger,
	}
}

// Resolve resolves a share URL synchronously and records the outcome in the
// history log.
func (s *ResolverService) Resolve(ctx context.Context, shareURL string) (*domain.MediaResult, error) {
	s.logger.Info("resolve request received", "url", shareURL)

	result, err := s.resolver.ResolveURL(ctx, shareURL)
	if err != nil {
		return nil, err
	}

	s.recordResolution(ctx, shareURL, result)

	s.logger.Info("post resolved",
		"post_id", result.PostID,
		"kind", result.Kind(),
		"author", result.Author.DisplayName,
	)

	return result, nil
}

// ResolveID resolves a post by its numeric ID.
func (s *ResolverService) ResolveID(ctx context.Context, postID string) (*domain.MediaResult, error) {
	result, err := s.resolver.ResolveID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.recordResolution(ctx, "", result)

	return result, nil
}

// Submit queues a share URL for asynchronous resolution.
// Short links pass through unvalidated; their post ID is only knowable after
// expansion, which happens in the worker.
func (s *ResolverService) Submit(ctx context.Context, shareURL string) (*domain.ResolveJob, error) {
	if !strings.Contains(shareURL, "t.co/") {
		if _, err := twitter.ExtractPostID(shareURL); err != nil {
			return nil, err
		}
	}

	job := domain.NewResolveJob(domain.JobID(uuid.NewString()), shareURL, s.cfg.MaxRetries)

	if err := s.jobs.Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Info("resolve job queued", "job_id", job.ID, "url", shareURL)

	return job, nil
}

// GetJob retrieves a queued job by ID.
func (s *ResolverService) GetJob(ctx context.Context, id domain.JobID) (*domain.ResolveJob, error) {
	return s.jobs.Get(ctx, id)
}

// ProcessJob resolves a queued job's share URL. Called by the worker pool.
func (s *ResolverService) ProcessJob(ctx context.Context, job *domain.ResolveJob) (*domain.MediaResult, error) {
	return s.Resolve(ctx, job.ShareURL)
}

// History returns the most recent resolutions, newest first.
func (s *ResolverService) History(ctx context.Context, limit int) ([]*domain.Resolution, error) {
	return s.history.Recent(ctx, limit)
}

// ExportHistory returns the recent history as a password-encrypted JSON blob.
func (s *ResolverService) ExportHistory(ctx context.Context, limit int, password string) ([]byte, error) {
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}

	encrypted, err := crypto.Encrypt(data, password)
	if err != nil {
		return nil, fmt.Errorf("encrypt history: %w", err)
	}

	s.logger.Info("history exported", "entries", len(entries), "bytes", len(encrypted))

	return encrypted, nil
}

// Stats returns job queue statistics.
func (s *ResolverService) Stats(ctx context.Context) (*repository.QueueStats, error) {
	return s.jobs.Stats(ctx)
}

// recordResolution appends to the history log. Best effort: a logging failure
// never fails the resolution itself.
func (s *ResolverService) recordResolution(ctx context.Context, sourceURL string, result *domain.MediaResult) {
	mediaURL := result.VideoURL
	if mediaURL == "" && len(result.Images) > 0 {
		mediaURL = result.Images[0].URL
	}

	res := &domain.Resolution{
		ID:         uuid.NewString(),
		PostID:     result.PostID,
		SourceURL:  sourceURL,
		Kind:       result.Kind(),
		MediaURL:   mediaURL,
		ImageCount: len(result.Images),
		Author:     result.Author.DisplayName,
		ResolvedAt: time.Now().UTC(),
	}

	if err := s.history.Record(ctx, res); err != nil {
		s.logger.Warn("failed to record resolution", "post_id", result.PostID, "error", err)
	}
}
