package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/aatrey56/fpl-analysis/internal/resilience"
)

// DefaultBaseURL is the public FPL API root.
const DefaultBaseURL = "https://fantasy.premierleague.com/api"

// Client fetches FPL API endpoints with client-side rate limiting and
// retry on transient failures.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Limiter   *rate.Limiter
	Retry     resilience.RetryConfig
}

// NewClient returns a client with polite defaults: 5 requests per second
// and a 20 second request timeout.
func NewClient() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		BaseURL:   DefaultBaseURL,
		UserAgent: "fpl-analysis/1.0",
		Limiter:   rate.NewLimiter(rate.Limit(5), 1),
		Retry:     resilience.DefaultRetryConfig(),
	}
}

// getJSON fetches urlPath and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, urlPath string, out any) error {
	return resilience.Do(ctx, c.Retry, func(ctx context.Context) error {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
		if err != nil {
			return eris.Wrapf(err, "collect: request %s", urlPath)
		}
		req.Header.Set("User-Agent", c.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return eris.Wrapf(err, "collect: GET %s", urlPath)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, resp.Body)
			return &resilience.StatusError{URL: urlPath, StatusCode: resp.StatusCode}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return eris.Wrapf(err, "collect: decode %s", urlPath)
		}
		return nil
	})
}

// BootstrapStatic fetches the season-wide reference data.
func (c *Client) BootstrapStatic(ctx context.Context) (Bootstrap, error) {
	var b Bootstrap
	err := c.getJSON(ctx, "/bootstrap-static/", &b)
	return b, err
}

// Fixtures fetches the full fixture list.
func (c *Client) Fixtures(ctx context.Context) ([]Fixture, error) {
	var f []Fixture
	err := c.getJSON(ctx, "/fixtures/", &f)
	return f, err
}

// ElementSummaryByID fetches one player's gameweek history.
func (c *Client) ElementSummaryByID(ctx context.Context, elementID int) (ElementSummary, error) {
	var s ElementSummary
	err := c.getJSON(ctx, fmt.Sprintf("/element-summary/%d/", elementID), &s)
	return s, err
}
