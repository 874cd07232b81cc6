package sportsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/retry"
)

// Client fetches team and player data from TheSportsDB. The public
// endpoints used here take no API key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a TheSportsDB client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SearchTeams fetches teams matching name across all sports.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]byte, error) {
	u := fmt.Sprintf("%s/searchteams.php?t=%s", c.baseURL, url.QueryEscape(name))
	return c.get(ctx, u)
}

// LookupAllPlayers fetches the full squad for a team id.
func (c *Client) LookupAllPlayers(ctx context.Context, teamID string) ([]byte, error) {
	u := fmt.Sprintf("%s/lookup_all_players.php?id=%s", c.baseURL, url.QueryEscape(teamID))
	return c.get(ctx, u)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

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
