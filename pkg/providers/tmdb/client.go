package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
	"github.com/golang-jwt/jwt/v5"
)

const Name = "TMDb"

type Client struct {
	baseURL            string
	mapper             Mapper
	preferredCountries []string
	client             *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithPreferredCountries ranks TV series produced in these ISO 3166-1
// countries ahead of the rest.
func WithPreferredCountries(countries []string) Option {
	return func(c *Client) { c.preferredCountries = countries }
}

func NewClient(baseURL, imageBaseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		mapper:  Mapper{ImageBaseURL: imageBaseURL},
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Movies searches /search/movie.
func (c *Client) Movies() providers.Searcher {
	return providers.SearcherFunc(c.SearchMovies)
}

// TV searches /search/tv for K-Dramas.
func (c *Client) TV() providers.Searcher {
	return providers.SearcherFunc(c.SearchTV)
}

func (c *Client) SearchMovies(ctx context.Context, req providers.Request) ([]*models.SearchResult, error) {
	req = req.Normalized()
	if providers.IsShortQuery(req.Query) {
		return []*models.SearchResult{}, nil
	}

	var resp searchResponse[MovieResult]
	if err := c.fetch(ctx, "/search/movie", req, &resp); err != nil {
		return nil, err
	}

	raw := dedupeByID(resp.Results, func(r MovieResult) int { return r.ID })
	results := make([]*models.SearchResult, 0, len(raw))
	for _, r := range raw {
		if res, ok := c.mapper.MapMovie(r); ok {
			results = append(results, res)
		}
	}
	return providers.Cap(results, req.Limit), nil
}

func (c *Client) SearchTV(ctx context.Context, req providers.Request) ([]*models.SearchResult, error) {
	req = req.Normalized()
	if providers.IsShortQuery(req.Query) {
		return []*models.SearchResult{}, nil
	}

	var resp searchResponse[TVResult]
	if err := c.fetch(ctx, "/search/tv", req, &resp); err != nil {
		return nil, err
	}

	raw := dedupeByID(resp.Results, func(r TVResult) int { return r.ID })
	raw = RankByOrigin(raw, c.preferredCountries)
	results := make([]*models.SearchResult, 0, len(raw))
	for _, r := range raw {
		if res, ok := c.mapper.MapTV(r); ok {
			results = append(results, res)
		}
	}
	return providers.Cap(results, req.Limit), nil
}

func (c *Client) fetch(ctx context.Context, path string, req providers.Request, dst interface{}) error {
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		return providers.MissingAPIKey(Name)
	}

	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", "1")

	header := http.Header{}
	if isReadAccessToken(key) {
		header.Set("Authorization", "Bearer "+key)
	} else {
		params.Set("api_key", key)
	}

	return providers.FetchJSON(ctx, c.client, Name, c.baseURL+path+"?"+params.Encode(), header, dst)
}

// isReadAccessToken reports whether key is a v4 read access token, which is a
// JWT, rather than a v3 API key. The token is only inspected, never verified.
func isReadAccessToken(key string) bool {
	_, _, err := jwt.NewParser().ParseUnverified(key, jwt.MapClaims{})
	return err == nil
}
