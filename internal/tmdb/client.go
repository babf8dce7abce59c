package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultImageBaseURL = "https://image.tmdb.org/t/p"
const defaultCacheTTL = 24 * time.Hour

// Image size variants used by the fetch stages.
const (
	SizeProfile  = "w500"
	SizeOriginal = "original"
)

// ErrNotFound is returned when a person or company doesn't exist in TMDB.
var ErrNotFound = errors.New("not found")

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	cache        *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithImageBaseURL sets a custom image base URL (for testing).
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithCacheTTL sets the search cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchPerson searches people by name and returns the ranked candidates.
// An empty result set is not an error.
func (c *Client) SearchPerson(ctx context.Context, name string) ([]Person, error) {
	key := "person:" + name
	if cached, ok := c.cache.get(key); ok {
		return cached.([]Person), nil
	}

	u := fmt.Sprintf("%s/3/search/person?api_key=%s&include_adult=false&query=%s",
		c.baseURL, c.apiKey, url.QueryEscape(name))
	var result struct {
		Results []Person `json:"results"`
	}
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("search person %q: %w", name, err)
	}

	c.cache.set(key, result.Results)
	return result.Results, nil
}

// GetPerson fetches person details by TMDB id.
func (c *Client) GetPerson(ctx context.Context, id int64) (*Person, error) {
	u := fmt.Sprintf("%s/3/person/%d?api_key=%s", c.baseURL, id, c.apiKey)
	var p Person
	if err := c.getJSON(ctx, u, &p); err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return &p, nil
}

// SearchCompany searches companies (studios) by name and returns the ranked
// candidates.
func (c *Client) SearchCompany(ctx context.Context, name string) ([]Company, error) {
	key := "company:" + name
	if cached, ok := c.cache.get(key); ok {
		return cached.([]Company), nil
	}

	u := fmt.Sprintf("%s/3/search/company?api_key=%s&query=%s",
		c.baseURL, c.apiKey, url.QueryEscape(name))
	var result struct {
		Results []Company `json:"results"`
	}
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("search company %q: %w", name, err)
	}

	c.cache.set(key, result.Results)
	return result.Results, nil
}

// DownloadImage fetches the image at imagePath in the given size variant and
// writes it to dest, creating parent directories. The write goes through a
// temp file and rename so a failed download never leaves a partial image.
// Downloads are idempotent: an existing dest is kept untouched.
func (c *Client) DownloadImage(ctx context.Context, imagePath, size, dest string) error {
	if imagePath == "" {
		return fmt.Errorf("download image: %w", ErrNotFound)
	}
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	u := c.imageBaseURL + "/" + size + imagePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("image %s: %w", imagePath, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB image error: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("download image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move image into place: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
