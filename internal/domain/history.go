package domain

import "time"

// Resolution is one entry in the resolution audit log. It records what a
// resolution produced, not the media itself; the log is never consulted to
// answer a later resolution.
type Resolution struct {
	ID         string    `json:"id"`
	PostID     PostID    `json:"post_id"`
	SourceURL  string    `json:"source_url,omitempty"`
	Kind       MediaKind `json:"kind"`
	MediaURL   string    `json:"media_url"`
	ImageCount int       `json:"image_count"`
	Author     string    `json:"author,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}
