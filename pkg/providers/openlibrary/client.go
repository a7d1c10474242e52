package openlibrary

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const Name = "Open Library"

type Client struct {
	baseURL string
	client  *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up books by free text. Short queries return no results without
// a request.
func (c *Client) Search(ctx context.Context, req providers.Request) ([]*models.SearchResult, error) {
	req = req.Normalized()
	if providers.IsShortQuery(req.Query) {
		return []*models.SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("limit", strconv.Itoa(req.Limit))
	params.Set("fields", searchFields)

	var resp searchResponse
	if err := providers.FetchJSON(ctx, c.client, Name, c.baseURL+"/search.json?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	return providers.Cap(mapDocs(resp.Docs), req.Limit), nil
}

// Description fetches the long description of a work. A work without one
// returns nil and no error.
func (c *Client) Description(ctx context.Context, workID string) (*string, error) {
	workID = WorkID(workID)
	if workID == "" || strings.ContainsAny(workID, "/?#") {
		return nil, errors.Errorf("invalid work id %q", workID)
	}

	var w work
	if err := providers.FetchJSON(ctx, c.client, Name, c.baseURL+"/works/"+url.PathEscape(workID)+".json", nil, &w); err != nil {
		return nil, err
	}

	desc := providers.OptionalText(text(w.Description))
	if desc == nil {
		logger.FromContext(ctx).Debug("work has no description", logger.Data{"work_id": workID})
	}
	return desc, nil
}
