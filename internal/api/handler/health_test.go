package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iconidentify/xresolve/internal/repository"
)

func TestHealth_Live(t *testing.T) {
	h := NewHealthHandler(newMockJobRepository())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.Live(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Timestamp == "" {
		t.Error("Timestamp should be set")
	}
}

func TestHealth_Ready(t *testing.T) {
	repo := newMockJobRepository()
	repo.stats = &repository.QueueStats{Queued: 2, Completed: 5}
	h := NewHealthHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	h.Ready(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Queue == nil || resp.Queue.Queued != 2 || resp.Queue.Completed != 5 {
		t.Errorf("Queue = %+v, want queued=2 completed=5", resp.Queue)
	}
}

func TestHealth_Ready_RepositoryDown(t *testing.T) {
	repo := newMockJobRepository()
	repo.statsErr = errors.New("store unavailable")
	h := NewHealthHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	h.Ready(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestHealth_Stats(t *testing.T) {
	repo := newMockJobRepository()
	repo.stats = &repository.QueueStats{Queued: 1, Failed: 3}
	h := NewHealthHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp SystemStats
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NumCPU <= 0 {
		t.Errorf("NumCPU = %d, want > 0", resp.NumCPU)
	}
	if resp.NumGoroutines <= 0 {
		t.Errorf("NumGoroutines = %d, want > 0", resp.NumGoroutines)
	}
	if resp.Queue == nil || resp.Queue.Failed != 3 {
		t.Errorf("Queue = %+v, want failed=3", resp.Queue)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "minutes", d: 30 * time.Minute, want: "30m"},
		{name: "hours", d: 3*time.Hour + 15*time.Minute, want: "3h 15m"},
		{name: "days", d: 50 * time.Hour, want: "2d 2h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatUptime(tt.d); got != tt.want {
				t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
