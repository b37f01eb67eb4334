package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/iconidentify/xresolve/internal/domain"
)

func TestJobRepository_FIFO(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	first := domain.NewResolveJob("a", "https://x.com/u/status/1", 3)
	second := domain.NewResolveJob("b", "https://x.com/u/status/2", 3)

	if err := repo.Enqueue(ctx, first); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := repo.Enqueue(ctx, second); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	got, err := repo.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got.ID != "a" {
		t.Errorf("first dequeue = %s, want a", got.ID)
	}

	got, err = repo.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got.ID != "b" {
		t.Errorf("second dequeue = %s, want b", got.ID)
	}

	if _, err := repo.Dequeue(ctx); !errors.Is(err, domain.ErrNoJobs) {
		t.Errorf("empty dequeue error = %v, want ErrNoJobs", err)
	}
}

func TestJobRepository_RetryRequeues(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	job := domain.NewResolveJob("a", "https://x.com/u/status/1", 3)
	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	dequeued, err := repo.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}

	dequeued.MarkFailed("upstream hiccup")
	if err := repo.Update(ctx, dequeued); err != nil {
		t.Fatalf("Update: %v", err)
	}

	requeued, err := repo.Dequeue(ctx)
	if err != nil {
		t.Fatalf("retrying job should be dequeueable again: %v", err)
	}
	if requeued.ID != "a" || requeued.Status != domain.JobStatusRetrying {
		t.Errorf("requeued job = %s/%s, want a/retrying", requeued.ID, requeued.Status)
	}
}

func TestJobRepository_GetAndUpdate(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Get missing error = %v, want ErrJobNotFound", err)
	}

	job := domain.NewResolveJob("a", "https://x.com/u/status/1", 3)
	if err := repo.Update(ctx, job); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Update before Enqueue error = %v, want ErrJobNotFound", err)
	}

	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	job.MarkCompleted(&domain.MediaResult{PostID: "1", VideoURL: "v.mp4"})
	if err := repo.Update(ctx, job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.JobStatusCompleted || got.Result == nil {
		t.Errorf("job = %s result=%v, want completed with result", got.Status, got.Result)
	}
}

func TestJobRepository_Stats(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	queued := domain.NewResolveJob("q", "u1", 3)
	completed := domain.NewResolveJob("c", "u2", 3)
	failed := domain.NewResolveJob("f", "u3", 1)

	for _, j := range []*domain.ResolveJob{queued, completed, failed} {
		if err := repo.Enqueue(ctx, j); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	completed.MarkCompleted(&domain.MediaResult{})
	failed.MarkFailed("boom")
	for _, j := range []*domain.ResolveJob{completed, failed} {
		if err := repo.Update(ctx, j); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Queued != 1 || stats.Completed != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 queued, 1 completed, 1 failed", stats)
	}
}
