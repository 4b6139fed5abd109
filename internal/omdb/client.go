// Package omdb is a small client for the OMDb movie API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"moviecompare/internal/config"
	"moviecompare/internal/domain"
)

// ErrNoResults is returned by Details when OMDb has no record for the ID.
var ErrNoResults = errors.New("omdb: no results")

// APIError is an error reported by OMDb in a successful HTTP response
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "omdb: " + e.Message
}

// StatusError is returned for non-200 HTTP responses
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb: unexpected status %s", e.Status)
}

// Messages OMDb uses when a query simply matches nothing.
var emptyResultMessages = map[string]bool{
	"Movie not found!":   true,
	"Too many results.":  true,
	"Incorrect IMDb ID.": true,
}

// Client defines the lookups the application needs
type Client interface {
	Search(ctx context.Context, term string) ([]domain.Movie, error)
	Details(ctx context.Context, imdbID string) (domain.MovieDetail, error)
}

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	envelope
	Search []domain.Movie `json:"Search"`
}

type detailResponse struct {
	envelope
	domain.MovieDetail
}

// HTTPClient talks to OMDb over HTTP
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a client from the API configuration
func NewHTTPClient(cfg config.APIConfig) *HTTPClient {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search returns the titles matching term. Blank terms and queries OMDb
// cannot answer with a list yield an empty result.
func (c *HTTPClient) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	var resp searchResponse
	if err := c.get(ctx, url.Values{"s": {term}}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		if errors.Is(err, ErrNoResults) {
			log.Debug("omdb: search without results", "term", term)
			return nil, nil
		}
		return nil, err
	}
	return resp.Search, nil
}

// Details returns the full record of a title.
func (c *HTTPClient) Details(ctx context.Context, imdbID string) (domain.MovieDetail, error) {
	var resp detailResponse
	if err := c.get(ctx, url.Values{"i": {imdbID}}, &resp); err != nil {
		return domain.MovieDetail{}, err
	}
	if err := resp.check(); err != nil {
		return domain.MovieDetail{}, err
	}
	return resp.MovieDetail, nil
}

func (e envelope) check() error {
	if e.Response != "False" && e.Error == "" {
		return nil
	}
	if emptyResultMessages[e.Error] {
		return fmt.Errorf("%w: %s", ErrNoResults, e.Error)
	}
	if e.Error == "" {
		return &APIError{Message: "request failed"}
	}
	return &APIError{Message: e.Error}
}

func (c *HTTPClient) get(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request: %w", err)
	}
	defer res.Body.Close()
	log.Debug("omdb: response", "params", params.Encode(), "status", res.StatusCode, "took", time.Since(start))

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return &StatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}
	return nil
}
