// Package twitter resolves X.com posts into normalized media descriptors
// using the public syndication API.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iconidentify/xresolve/internal/config"
	"github.com/iconidentify/xresolve/internal/domain"
)

// shortLinkHost marks t.co share links, which must be expanded before the
// post ID can be extracted.
const shortLinkHost = "t.co/"

// syndicationReferer authorizes the derived token; the API rejects requests
// without an embedding-platform origin.
const syndicationReferer = "https://platform.twitter.com/"

// Client resolves posts from X.com.
type Client struct {
	httpClient *http.Client
	// redirectClient never follows redirects; it exists to read the
	// Location header of t.co responses.
	redirectClient *http.Client
	baseURL        string
	userAgent      string
}

// NewClient creates a new syndication API client.
func NewClient(cfg config.ResolverConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		redirectClient: &http.Client{
			Timeout: cfg.ShortLinkTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:   strings.TrimRight(cfg.SyndicationURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// ResolveURL resolves a share URL into a media result. Short links are
// expanded first; the post ID is then extracted from the (possibly
// rewritten) URL.
func (c *Client) ResolveURL(ctx context.Context, shareURL string) (*domain.MediaResult, error) {
	if strings.Contains(shareURL, shortLinkHost) {
		shareURL = c.resolveShortLink(ctx, shareURL)
	}

	postID, err := ExtractPostID(shareURL)
	if err != nil {
		return nil, err
	}

	return c.ResolveID(ctx, postID)
}

// ResolveID fetches a post by its numeric ID and selects its best media.
func (c *Client) ResolveID(ctx context.Context, postID string) (*domain.MediaResult, error) {
	token := SyndicationToken(postID)
	reqURL := fmt.Sprintf("%s/tweet-result?id=%s&token=%s",
		c.baseURL, url.QueryEscape(postID), url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", syndicationReferer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode}
	}

	var doc syndicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	sel, err := selectMedia(&doc)
	if err != nil {
		return nil, err
	}

	return buildResult(domain.PostID(postID), &doc, sel), nil
}

// resolveShortLink expands a t.co link by reading the Location header of a
// single non-following GET. Best effort: any failure returns the input URL.
func (c *Client) resolveShortLink(ctx context.Context, shortURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return shortURL
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.redirectClient.Do(req)
	if err != nil {
		return shortURL
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusMovedPermanently || resp.StatusCode == http.StatusFound {
		if location := resp.Header.Get("Location"); location != "" {
			return location
		}
	}

	return shortURL
}

// buildResult assembles the normalized result from the response document and
// the media selection.
func buildResult(postID domain.PostID, doc *syndicationResponse, sel selection) *domain.MediaResult {
	displayName := doc.User.Name
	if displayName == "" {
		displayName = doc.User.ScreenName
	}

	return &domain.MediaResult{
		PostID:   postID,
		VideoURL: sel.videoURL,
		CoverURL: sel.coverURL,
		Images:   sel.images,
		Title:    doc.Text,
		Author: domain.Author{
			ID:          doc.User.ID,
			DisplayName: displayName,
			AvatarURL:   doc.User.ProfileImageURL,
		},
	}
}
