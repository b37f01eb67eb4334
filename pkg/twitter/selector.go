package twitter

import (
	"github.com/iconidentify/xresolve/internal/domain"
)

// selection is the media picked from one response document.
type selection struct {
	videoURL string
	coverURL string
	images   []domain.Image
}

// selectMedia classifies the post's attachments and picks its representative
// media. Strategies run in strict priority order and the first one that
// yields media wins; a post is never both a video and a gallery.
func selectMedia(doc *syndicationResponse) (selection, error) {
	strategies := []func(*syndicationResponse) (selection, bool){
		selectFromMediaDetails,
		selectFromCardVideo,
		selectPhotos,
	}

	for _, pick := range strategies {
		if sel, ok := pick(doc); ok {
			return sel, nil
		}
	}

	return selection{}, domain.ErrNoMediaFound
}

// selectFromMediaDetails picks the video from the first video or
// animated_gif entry of mediaDetails. Only that first entry is considered;
// a post carries at most one video.
func selectFromMediaDetails(doc *syndicationResponse) (selection, bool) {
	for _, media := range doc.MediaDetails {
		if media.Type != "video" && media.Type != "animated_gif" {
			continue
		}

		sel := selection{
			coverURL: media.MediaURLHTTPS,
			videoURL: bestMP4Variant(media.VideoInfo.Variants),
		}
		return sel, sel.videoURL != ""
	}

	return selection{}, false
}

// selectFromCardVideo reads the top-level video field, a different document
// location used by some response shapes, with its cover taken from the
// poster attribute.
func selectFromCardVideo(doc *syndicationResponse) (selection, bool) {
	if doc.Video == nil {
		return selection{}, false
	}

	sel := selection{
		coverURL: doc.Video.Poster,
		videoURL: bestMP4Variant(doc.Video.Variants),
	}
	return sel, sel.videoURL != ""
}

// selectPhotos collects every photo entry in document order. The first image
// doubles as the cover.
func selectPhotos(doc *syndicationResponse) (selection, bool) {
	var sel selection
	for _, media := range doc.MediaDetails {
		if media.Type != "photo" || media.MediaURLHTTPS == "" {
			continue
		}
		sel.images = append(sel.images, domain.Image{URL: media.MediaURLHTTPS})
	}

	if len(sel.images) == 0 {
		return selection{}, false
	}

	sel.coverURL = sel.images[0].URL
	return sel, true
}

// bestMP4Variant picks the highest-bitrate video/mp4 variant. The first MP4
// seen is always the initial candidate, even at bitrate 0; a later variant
// replaces it only with a strictly greater bitrate. This matches the embed
// widget's selection order.
func bestMP4Variant(variants []videoVariant) string {
	var (
		best    string
		maxRate int
	)

	for _, v := range variants {
		if v.ContentType != "video/mp4" {
			continue
		}
		if v.Bitrate > maxRate || best == "" {
			maxRate = v.Bitrate
			best = v.URL
		}
	}

	return best
}
