package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const tmdbBaseURL = "https://api.themoviedb.org"

var (
	// ErrMoviesNotConfigured means no TMDB access token was supplied; this
	// is a server configuration error, not a client one.
	ErrMoviesNotConfigured = errors.New("movie search is not configured")
	ErrMoviesUpstream      = errors.New("movie upstream request failed")
	// ErrNoMoviesFound distinguishes an empty result set from an upstream
	// failure.
	ErrNoMoviesFound = errors.New("no movies found")
)

// MovieClient calls the TMDB search API with bearer authentication.
type MovieClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewMovieClient creates a movie search client. An empty baseURL selects the
// public TMDB endpoint; an empty accessToken leaves the client unconfigured.
func NewMovieClient(baseURL, accessToken string) *MovieClient {
	if baseURL == "" {
		baseURL = tmdbBaseURL
	}
	return &MovieClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Search runs one movie search. Results are passed through verbatim.
func (c *MovieClient) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	if c.accessToken == "" {
		return nil, ErrMoviesNotConfigured
	}

	params := url.Values{}
	params.Set("query", query)

	endpoint := c.baseURL + "/3/search/movie?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build movie request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoviesUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrMoviesUpstream, resp.StatusCode)
	}

	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoviesUpstream, err)
	}

	if len(payload.Results) == 0 {
		return nil, ErrNoMoviesFound
	}

	return payload.Results, nil
}
