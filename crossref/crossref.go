// Package crossref implements DOI lookup against the CrossRef REST
// API (https://api.crossref.org).
package crossref

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/joaochenriques/BIBparsley/transform"
)

// ErrNotFound reports that no DOI matched the queried title.
var ErrNotFound = errors.New("doi not found")

// exactRows is how many ranked candidates an exact-match lookup scans.
const exactRows = 10

// Client queries the CrossRef works endpoint. It implements
// transform.Resolver.
type Client struct {
	cfg    *Config
	client *http.Client
}

var _ transform.Resolver = (*Client)(nil)

// NewClient creates a rate-limited CrossRef client. A rate limit
// below 1 request per second is raised to 1; a zero-rate limiter
// would fail every Wait and block all lookups.
func NewClient(cfg *Config) *Client {
	rps := cfg.RateLimit
	if rps < 1 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: requests.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				if err := limiter.Wait(req.Context()); err != nil {
					return nil, err
				}
				return http.DefaultTransport.RoundTrip(req)
			}),
		},
	}
}

// Fuzzy returns the DOI of the single most relevant match for a title.
func (c *Client) Fuzzy(ctx context.Context, title string) (string, error) {
	body, err := c.works(ctx, title, 1)
	if err != nil {
		return "", err
	}

	doi := gjson.Get(body, "message.items.0.DOI").String()
	if doi == "" {
		return "", ErrNotFound
	}
	return doi, nil
}

// Exact scans the top-ranked candidates for a case-insensitive exact
// title match and returns its DOI.
func (c *Client) Exact(ctx context.Context, title string) (string, error) {
	body, err := c.works(ctx, title, exactRows)
	if err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(title))
	doi := ""
	gjson.Get(body, "message.items").ForEach(func(_, item gjson.Result) bool {
		found := strings.ToLower(strings.TrimSpace(item.Get("title.0").String()))
		if found == want {
			doi = item.Get("DOI").String()
			return false
		}
		return true
	})

	if doi == "" {
		return "", ErrNotFound
	}
	return doi, nil
}

// works runs a title query against /works and returns the raw JSON
// response body.
func (c *Client) works(ctx context.Context, title string, rows int) (string, error) {
	var body string
	rb := requests.
		URL(c.cfg.BaseURL).
		Path("/works").
		Client(c.client).
		Param("query.title", title).
		ParamInt("rows", rows).
		Accept("application/json").
		ToString(&body)
	if c.cfg.Mailto != "" {
		rb = rb.Param("mailto", c.cfg.Mailto)
	}

	if err := rb.Fetch(ctx); err != nil {
		return "", err
	}
	return body, nil
}
