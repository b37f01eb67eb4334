package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrInvalidPostURL is returned when a URL matches no known post shape.
	// Callers wrap it with the offending URL.
	ErrInvalidPostURL = errors.New("invalid post URL")

	// ErrNoMediaFound is returned when a post contains neither a video nor
	// any images.
	ErrNoMediaFound = errors.New("no video or images found in this post")

	// ErrJobNotFound is returned when a resolve job cannot be found.
	ErrJobNotFound = errors.New("job not found")

	// ErrNoJobs is returned when there are no jobs to process.
	ErrNoJobs = errors.New("no jobs available")
)

// UpstreamError reports a non-success status from the syndication API.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("syndication API returned status %d", e.StatusCode)
}
