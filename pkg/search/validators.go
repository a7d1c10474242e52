package search

import (
	"github.com/bookverse/bookverse/pkg/models"
)

const SessionHeader = "X-Search-Session"

type SearchQuery struct {
	Query string `query:"q" json:"q" mod:"trim" validate:"max=200"`
	Limit int    `query:"limit" json:"limit,omitempty" validate:"min=0,max=25"`
}

type SearchResponse struct {
	MediaType models.MediaType       `json:"media_type"`
	Query     string                 `json:"query"`
	Results   []*models.SearchResult `json:"results"`
}

type DescriptionResponse struct {
	WorkID      string  `json:"work_id"`
	Description *string `json:"description"`
}
