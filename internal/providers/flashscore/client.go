package flashscore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/retry"
)

// Client fetches football data from the flashscore feed. Responses come
// back as raw JSON; shape normalization lives with the sports data service.
type Client struct {
	baseURL    string
	apiKey     string
	country    string
	league     string
	httpClient *http.Client
}

// NewClient creates a flashscore client for one competition.
// country and league are the provider's path segments,
// e.g. "spain:176" and "laliga:QVmLl54o".
func NewClient(baseURL, apiKey, country, league string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		country: country,
		league:  league,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Live fetches the worldwide live matches feed.
func (c *Client) Live(ctx context.Context) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/api/flashscore/football/live", c.baseURL))
}

// Standings fetches the competition table for a season.
func (c *Client) Standings(ctx context.Context, season string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/flashscore/football/%s/%s/%s/standings", c.baseURL, c.country, c.league, season)
	return c.get(ctx, url)
}

// Fixtures fetches the competition calendar for a season.
// The feed paginates but a single page covers the visible horizon.
func (c *Client) Fixtures(ctx context.Context, season string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/flashscore/football/%s/%s/%s/fixtures?page=1", c.baseURL, c.country, c.league, season)
	return c.get(ctx, url)
}

// get performs an authenticated GET and returns the raw body.
// Non-2xx responses become *retry.StatusError so the retry policy can
// classify them.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
