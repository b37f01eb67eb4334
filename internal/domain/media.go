package domain

// PostID is the numeric identifier of a post on X.com.
type PostID string

// String returns the string representation of the PostID.
func (id PostID) String() string {
	return string(id)
}

// MediaKind classifies what a resolved post contains.
type MediaKind string

const (
	MediaKindVideo   MediaKind = "video"
	MediaKindGallery MediaKind = "gallery"
)

// Author is the post author as reported by the syndication API.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Image is a single gallery image.
type Image struct {
	URL string `json:"url"`
}

// MediaResult is the normalized output of one resolution. On success exactly
// one of VideoURL or Images is non-empty; a post is either a video post or a
// photo gallery, never both.
type MediaResult struct {
	PostID   PostID  `json:"post_id"`
	VideoURL string  `json:"video_url,omitempty"`
	CoverURL string  `json:"cover_url,omitempty"`
	Images   []Image `json:"images,omitempty"`
	Title    string  `json:"title"`
	Author   Author  `json:"author"`
}

// HasVideo returns true if the result carries a video URL.
func (r *MediaResult) HasVideo() bool {
	return r.VideoURL != ""
}

// HasImages returns true if the result carries gallery images.
func (r *MediaResult) HasImages() bool {
	return len(r.Images) > 0
}

// Kind reports whether the result is a video post or a gallery.
func (r *MediaResult) Kind() MediaKind {
	if r.HasVideo() {
		return MediaKindVideo
	}
	return MediaKindGallery
}
