package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the football-data.org v4 API root.
const DefaultBaseURL = "https://api.football-data.org/v4"

const dateLayout = "2006-01-02"

// Team is one side of a fixture.
type Team struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

// Match is a fixture as reported by the API.
type Match struct {
	ID       int64     `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	HomeTeam Team      `json:"homeTeam"`
	AwayTeam Team      `json:"awayTeam"`
}

// Scheduled reports whether the fixture has yet to kick off.
func (m Match) Scheduled() bool {
	return m.Status == "SCHEDULED" || m.Status == "TIMED"
}

type matchesResponse struct {
	Matches []Match `json:"matches"`
}

// Client talks to the football-data.org API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a football-data.org client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CompetitionMatches lists a competition's fixtures between two dates, inclusive.
func (c *Client) CompetitionMatches(ctx context.Context, competition string, from, to time.Time) ([]Match, error) {
	params := url.Values{
		"dateFrom": []string{from.UTC().Format(dateLayout)},
		"dateTo":   []string{to.UTC().Format(dateLayout)},
	}

	var resp matchesResponse
	endpoint := "competitions/" + url.PathEscape(competition) + "/matches"
	if err := c.doRequest(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// doRequest performs an authenticated GET and decodes the JSON body
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	apiURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("football-data api error: %s - %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
