// Package reddit implements a small client for Reddit's public listing
// search. Only post titles are consumed.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"textlens/internal/config"
)

// Post is a single search result.
type Post struct {
	Title string `json:"title"`
}

// Client represents a Reddit API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a new Reddit API client.
func New(cfg *config.RedditConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// listing mirrors the relevant part of Reddit's listing response.
type listing struct {
	Data struct {
		Children []listingChild `json:"children"`
	} `json:"data"`
}

type listingChild struct {
	Data struct {
		Title string `json:"title"`
	} `json:"data"`
}

// Search returns up to limit posts matching the query, in the order the API
// delivered them. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reddit search failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("error decoding search response: %w", err)
	}

	posts := lo.Map(l.Data.Children, func(child listingChild, _ int) Post {
		return Post{Title: child.Data.Title}
	})

	// the API treats limit as a hint, enforce it here
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
