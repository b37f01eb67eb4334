package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/xresolve/internal/domain"
)

// ResolverService is the service surface the HTTP layer depends on.
type ResolverService interface {
	Resolve(ctx context.Context, shareURL string) (*domain.MediaResult, error)
	ResolveID(ctx context.Context, postID string) (*domain.MediaResult, error)
	Submit(ctx context.Context, shareURL string) (*domain.ResolveJob, error)
	GetJob(ctx context.Context, id domain.JobID) (*domain.ResolveJob, error)
	History(ctx context.Context, limit int) ([]*domain.Resolution, error)
	ExportHistory(ctx context.Context, limit int, password string) ([]byte, error)
}

// ResolveHandler handles media resolution HTTP requests.
type ResolveHandler struct {
	svc    ResolverService
	logger *slog.Logger
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(svc ResolverService, logger *slog.Logger) *ResolveHandler {
	return &ResolveHandler{
		svc:    svc,
		logger: logger,
	}
}

// ResolveRequest is the JSON request body for resolution.
type ResolveRequest struct {
	URL string `json:"url"`
}

// MediaResponse is a resolved post in API responses.
type MediaResponse struct {
	PostID   string        `json:"post_id"`
	Kind     string        `json:"kind"`
	VideoURL string        `json:"video_url,omitempty"`
	CoverURL string        `json:"cover_url,omitempty"`
	Images   []string      `json:"images,omitempty"`
	Title    string        `json:"title"`
	Author   domain.Author `json:"author"`
}

// JobResponse is the JSON response after job submission.
type JobResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JobStatusResponse describes the current state of a resolve job.
type JobStatusResponse struct {
	JobID     string         `json:"job_id"`
	URL       string         `json:"url"`
	Status    string         `json:"status"`
	Attempts  int            `json:"attempts"`
	LastError string         `json:"last_error,omitempty"`
	Result    *MediaResponse `json:"result,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// HistoryResponse contains recent resolutions.
type HistoryResponse struct {
	Entries []*domain.Resolution `json:"entries"`
	Count   int                  `json:"count"`
}

// Resolve handles POST /api/v1/resolve - synchronous resolution.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := h.svc.Resolve(r.Context(), req.URL)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, buildMediaResponse(result))
}

// GetPost handles GET /api/v1/posts/{postID} - resolution by numeric ID.
func (h *ResolveHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if !isNumericID(postID) {
		h.writeError(w, http.StatusBadRequest, "post ID must be numeric")
		return
	}

	result, err := h.svc.ResolveID(r.Context(), postID)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, buildMediaResponse(result))
}

// SubmitJob handles POST /api/v1/jobs - asynchronous resolution.
func (h *ResolveHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	job, err := h.svc.Submit(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPostURL) {
			h.writeError(w, http.StatusBadRequest, "invalid post URL - must be a valid x.com or twitter.com URL")
			return
		}
		h.logger.Error("submit failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to queue resolution")
		return
	}

	h.writeJSON(w, http.StatusAccepted, JobResponse{
		JobID:   string(job.ID),
		Status:  string(job.Status),
		Message: "resolution queued",
	})
}

// GetJob handles GET /api/v1/jobs/{jobID}.
func (h *ResolveHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		h.writeError(w, http.StatusBadRequest, "missing job ID")
		return
	}

	job, err := h.svc.GetJob(r.Context(), domain.JobID(jobID))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			h.writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("get job failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	resp := JobStatusResponse{
		JobID:     string(job.ID),
		URL:       job.ShareURL,
		Status:    string(job.Status),
		Attempts:  job.Attempts,
		LastError: job.LastError,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if job.Result != nil {
		mr := buildMediaResponse(job.Result)
		resp.Result = &mr
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/v1/history.
func (h *ResolveHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)

	entries, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("history failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if entries == nil {
		entries = []*domain.Resolution{}
	}

	h.writeJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

// ExportHistory handles GET /api/v1/history/export - password-encrypted dump.
func (h *ResolveHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	password := r.URL.Query().Get("password")
	if password == "" {
		h.writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	limit := parseLimit(r, 1000)

	blob, err := h.svc.ExportHistory(r.Context(), limit, password)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to export history")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="xresolve-history.enc"`)
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// writeResolveError maps resolution errors to HTTP status codes.
func (h *ResolveHandler) writeResolveError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrInvalidPostURL):
		h.writeError(w, http.StatusBadRequest, "invalid post URL - must be a valid x.com or twitter.com URL")
	case errors.Is(err, domain.ErrNoMediaFound):
		h.writeError(w, http.StatusUnprocessableEntity, domain.ErrNoMediaFound.Error())
	case errors.As(err, &upstream):
		if upstream.StatusCode == http.StatusNotFound {
			h.writeError(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Error("upstream error", "status", upstream.StatusCode)
		h.writeError(w, http.StatusBadGateway, "syndication API unavailable")
	default:
		h.logger.Error("resolve failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to resolve post")
	}
}

func buildMediaResponse(result *domain.MediaResult) MediaResponse {
	images := make([]string, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, img.URL)
	}
	if len(images) == 0 {
		images = nil
	}

	return MediaResponse{
		PostID:   result.PostID.String(),
		Kind:     string(result.Kind()),
		VideoURL: result.VideoURL,
		CoverURL: result.CoverURL,
		Images:   images,
		Title:    result.Title,
		Author:   result.Author,
	}
}

func parseLimit(r *http.Request, def int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
			return parsed
		}
	}
	return def
}

func isNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (h *ResolveHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ResolveHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
