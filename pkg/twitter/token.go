package twitter

import (
	"math"
	"strconv"
	"strings"
)

// SyndicationToken derives the token query parameter the syndication API
// requires for a post ID. The embed widget computes (id/1e15)*pi, renders it
// with the default Number-to-string conversion and strips every '0' and '.'.
// The API validates the string server side, so the formatting has to
// reproduce the same shortest round-trip decimal; FormatFloat with 'g' and
// precision -1 emits exactly those digits.
func SyndicationToken(postID string) string {
	id, _ := strconv.ParseFloat(postID, 64)
	token := strconv.FormatFloat(id/1e15*math.Pi, 'g', -1, 64)
	token = strings.ReplaceAll(token, "0", "")
	return strings.ReplaceAll(token, ".", "")
}
