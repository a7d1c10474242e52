package models

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// SearchResult is a provider record normalized into the shape of the
// LibraryItem it would become. It is never persisted as-is: accepting it
// creates a LibraryItem with its own id, timestamps and status.
type SearchResult struct {
	Title    string
	CoverURL *string
	Overview *string
	Details  Details
}

func (r *SearchResult) MediaType() MediaType {
	if r.Details == nil {
		return ""
	}
	return r.Details.MediaType()
}

type searchResultWire struct {
	MediaType MediaType `json:"media_type"`
	Title     string    `json:"title"`
	CoverURL  *string   `json:"cover_url"`
	Overview  *string   `json:"overview,omitempty"`
	detailsWire
}

func (r *SearchResult) MarshalJSON() ([]byte, error) {
	dw, err := encodeDetails(r.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(searchResultWire{
		MediaType:   r.MediaType(),
		Title:       r.Title,
		CoverURL:    r.CoverURL,
		Overview:    r.Overview,
		detailsWire: dw,
	})
}

func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var w searchResultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.WithStack(err)
	}
	details, err := decodeDetails(w.MediaType, w.detailsWire)
	if err != nil {
		return err
	}
	*r = SearchResult{
		Title:    w.Title,
		CoverURL: w.CoverURL,
		Overview: w.Overview,
		Details:  details,
	}
	return nil
}
