package twitter

// syndicationResponse is the subset of the tweet-result document the
// resolver reads. The payload shape varies between response versions, so
// optional sections are pointers: nil means the field was absent.
type syndicationResponse struct {
	Text string `json:"text"`
	User struct {
		ID              string `json:"id_str"`
		Name            string `json:"name"`
		ScreenName      string `json:"screen_name"`
		ProfileImageURL string `json:"profile_image_url_https"`
	} `json:"user"`
	MediaDetails []mediaDetail `json:"mediaDetails"`
	Video        *cardVideo    `json:"video"`
}

// mediaDetail is one attachment: a photo, a video or an animated GIF.
type mediaDetail struct {
	Type          string `json:"type"`
	MediaURLHTTPS string `json:"media_url_https"`
	VideoInfo     struct {
		Variants []videoVariant `json:"variants"`
	} `json:"video_info"`
}

// cardVideo is the top-level video field some response shapes carry instead
// of (or alongside) mediaDetails.
type cardVideo struct {
	Poster   string         `json:"poster"`
	Variants []videoVariant `json:"variants"`
}

type videoVariant struct {
	ContentType string `json:"content_type"`
	Bitrate     int    `json:"bitrate"`
	URL         string `json:"url"`
}
