package opensubtitles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.opensubtitles.com/api/v1"
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps the OpenSubtitles REST API. Every API call goes through the
// rate limiter; there is no retry layer, a failed call surfaces immediately.
type Client struct {
	apiKey     string
	userAgent  string
	userToken  string
	baseURL    string
	httpClient *http.Client
	limiter    *Limiter
}

// Option customizes the OpenSubtitles client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserToken attaches an authenticated user's bearer token, raising the
// daily download quota.
func WithUserToken(token string) Option {
	return func(c *Client) {
		c.userToken = strings.TrimSpace(token)
	}
}

// WithMinInterval sets the minimum spacing between API calls.
func WithMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.limiter = NewLimiter(interval)
	}
}

// NewClient constructs an OpenSubtitles API client.
func NewClient(apiKey, userAgent string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("opensubtitles: api key required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("opensubtitles: user agent required")
	}
	client := &Client{
		apiKey:     apiKey,
		userAgent:  userAgent,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    NewLimiter(time.Second),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchRequest names a subtitle query: free-text release name plus the
// wanted language tags (lowercase BCP 47 style, e.g. "pt-br").
type SearchRequest struct {
	Query     string
	Languages []string
}

// Subtitle is one search hit, flattened to the fields the fetch workflow
// needs. FileID is what Download takes.
type Subtitle struct {
	ID            string `json:"id"`
	Language      string `json:"language"`
	Release       string `json:"release"`
	DownloadCount int    `json:"download_count"`
	FileID        int64  `json:"file_id"`
	FileName      string `json:"file_name"`
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
	Data       []struct {
		ID         string `json:"id"`
		Attributes struct {
			Language      string `json:"language"`
			DownloadCount int    `json:"download_count"`
			Release       string `json:"release"`
			Files         []struct {
				FileID   int64  `json:"file_id"`
				FileName string `json:"file_name"`
			} `json:"files"`
		} `json:"attributes"`
	} `json:"data"`
}

// Search queries the subtitles endpoint, ordered by download count so the
// first hit is the community favorite. Hits without a downloadable file are
// dropped.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Subtitle, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New("opensubtitles search: query required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(c.baseURL, "/subtitles")
	if err != nil {
		return nil, fmt.Errorf("opensubtitles search: build url: %w", err)
	}
	values := url.Values{}
	values.Set("query", query)
	if len(req.Languages) > 0 {
		values.Set("languages", strings.ToLower(strings.Join(req.Languages, ",")))
	}
	values.Set("order_by", "download_count")
	values.Set("order_direction", "desc")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles search: request: %w", err)
	}
	c.applyHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles search: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles search: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensubtitles search: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("opensubtitles search: decode response: %w", err)
	}

	subtitles := make([]Subtitle, 0, len(decoded.Data))
	for _, hit := range decoded.Data {
		if len(hit.Attributes.Files) == 0 {
			continue
		}
		subtitles = append(subtitles, Subtitle{
			ID:            hit.ID,
			Language:      hit.Attributes.Language,
			Release:       hit.Attributes.Release,
			DownloadCount: hit.Attributes.DownloadCount,
			FileID:        hit.Attributes.Files[0].FileID,
			FileName:      hit.Attributes.Files[0].FileName,
		})
	}
	return subtitles, nil
}

type downloadRequest struct {
	FileID int64 `json:"file_id"`
}

type downloadResponse struct {
	Link      string `json:"link"`
	FileName  string `json:"file_name"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// Download resolves a file ID to a temporary link and fetches the subtitle
// body. The link fetch is unauthenticated; only the link request counts
// against the API quota.
func (c *Client) Download(ctx context.Context, fileID int64) ([]byte, error) {
	if fileID <= 0 {
		return nil, fmt.Errorf("opensubtitles download: invalid file id %d", fileID)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(c.baseURL, "/download")
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: build url: %w", err)
	}
	encoded, err := json.Marshal(downloadRequest{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: request: %w", err)
	}
	c.applyHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensubtitles download: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var decoded downloadResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("opensubtitles download: decode response: %w", err)
	}
	if strings.TrimSpace(decoded.Link) == "" {
		return nil, fmt.Errorf("opensubtitles download: no link in response: %s", strings.TrimSpace(decoded.Message))
	}

	linkReq, err := http.NewRequestWithContext(ctx, http.MethodGet, decoded.Link, nil)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: link request: %w", err)
	}
	linkResp, err := c.httpClient.Do(linkReq)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: link fetch failed: %w", err)
	}
	defer linkResp.Body.Close()
	content, err := io.ReadAll(linkResp.Body)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles download: read subtitle: %w", err)
	}
	if linkResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensubtitles download: link http %d", linkResp.StatusCode)
	}
	return content, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.userToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.userToken)
	}
}
