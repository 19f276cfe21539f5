package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/adam-cott/nba7/internal/news"
)

const defaultRedditBase = "https://www.reddit.com"

// RedditSource searches r/nba for posts matching a query and returns their
// top-level texts as comments.
type RedditSource struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewRedditSource(timeout time.Duration) *RedditSource {
	return &RedditSource{
		client:    &http.Client{Timeout: timeout},
		baseURL:   defaultRedditBase,
		userAgent: "nba7/1.0",
	}
}

// NewRedditSourceWithBase is used by tests to point at a stub server.
func NewRedditSourceWithBase(base string, timeout time.Duration) *RedditSource {
	s := NewRedditSource(timeout)
	s.baseURL = base
	return s
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Author     string  `json:"author"`
				Score      int     `json:"score"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search queries r/nba. Quota and auth rejections (429, 401, 403) are
// classified here and returned as an empty result; the caller falls back to
// headline analysis on its own.
func (s *RedditSource) Search(ctx context.Context, query string) ([]news.Comment, error) {
	if query == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/r/nba/search.json?%s", s.baseURL, url.Values{
		"q":           {query},
		"restrict_sr": {"1"},
		"sort":        {"relevance"},
		"limit":       {"25"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		// Quota or auth trouble: degrade to empty, not an error.
		return nil, nil
	default:
		return nil, fmt.Errorf("reddit search: HTTP %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit search: decoding response: %w", err)
	}

	out := make([]news.Comment, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		text := child.Data.Title
		if child.Data.Selftext != "" {
			text += " " + child.Data.Selftext
		}
		out = append(out, news.Comment{
			Author:    child.Data.Author,
			Text:      text,
			Score:     child.Data.Score,
			CreatedAt: time.Unix(int64(child.Data.CreatedUTC), 0).UTC(),
		})
	}
	return out, nil
}
