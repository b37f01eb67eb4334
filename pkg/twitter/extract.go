package twitter

import (
	"fmt"
	"regexp"

	"github.com/iconidentify/xresolve/internal/domain"
)

// postIDPattern matches the known share URL shapes:
//
//	https://x.com/user/status/1234567890
//	https://twitter.com/user/status/1234567890
//	https://mobile.twitter.com/user/statuses/1234567890
var postIDPattern = regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/[^/]+/status(?:es)?/(\d+)`)

// ExtractPostID extracts the numeric post ID from a share URL. It returns
// domain.ErrInvalidPostURL wrapped with the offending URL when the URL
// matches no known shape.
func ExtractPostID(shareURL string) (string, error) {
	m := postIDPattern.FindStringSubmatch(shareURL)
	if m == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidPostURL, shareURL)
	}
	return m[1], nil
}
