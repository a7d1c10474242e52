package jikan

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const Name = "Jikan"

type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient paces requests to requestsPerSecond. Jikan rejects bursts above
// roughly three per second with a 429.
func NewClient(baseURL string, requestsPerSecond float64, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Search(ctx context.Context, req providers.Request) ([]*models.SearchResult, error) {
	req = req.Normalized()
	if providers.IsShortQuery(req.Query) {
		return []*models.SearchResult{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &providers.Error{Provider: Name, Err: errors.Wrap(err, "rate limiter")}
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("limit", strconv.Itoa(req.Limit))
	params.Set("sfw", "true")

	var resp searchResponse
	if err := providers.FetchJSON(ctx, c.client, Name, c.baseURL+"/anime?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	raw := providers.DedupeBy(resp.Data, func(a Anime) (int, bool) {
		return a.MalID, a.MalID > 0
	})
	results := make([]*models.SearchResult, 0, len(raw))
	for _, a := range raw {
		if r, ok := MapAnime(a); ok {
			results = append(results, r)
		}
	}
	return providers.Cap(results, req.Limit), nil
}
