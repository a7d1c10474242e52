package library

import (
	"github.com/bookverse/bookverse/pkg/models"
)

type ListItemsQuery struct {
	Status    string `query:"status" json:"status,omitempty" validate:"statusfilter"`
	Sort      string `query:"sort" json:"sort,omitempty" default:"createdAt-desc" validate:"sortspec"`
	MediaType string `query:"media_type" json:"media_type,omitempty" validate:"mediatype"`
	Search    string `query:"search" json:"search,omitempty" mod:"trim" validate:"max=200"`
}

// ItemPayload is the flat create/update body. Only the variant fields of the
// chosen media type may be set.
type ItemPayload struct {
	MediaType   string  `json:"media_type" validate:"required,mediatype"`
	Title       string  `json:"title" mod:"trim" validate:"required,max=500"`
	Status      string  `json:"status" mod:"trim" validate:"omitempty,statusfilter,ne=All"`
	Rating      *int    `json:"rating" validate:"omitempty,min=0,max=5"`
	Notes       *string `json:"notes" validate:"omitempty,max=10000"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	CoverURL    *string `json:"cover_url" mod:"trim" validate:"omitempty,url"`

	Authors       []string `json:"authors" validate:"omitempty,max=50,dive,max=200"`
	Subtitle      *string  `json:"subtitle" validate:"omitempty,max=500"`
	OpenLibraryID *string  `json:"open_library_id" validate:"omitempty,max=50"`
	ISBN          []string `json:"isbn" validate:"omitempty,max=50,dive,max=20"`
	PublishYear   *int     `json:"publish_year" validate:"omitempty,min=0,max=9999"`
	Pages         *int     `json:"pages" validate:"omitempty,min=0"`

	TMDBID          *int    `json:"tmdb_id" validate:"omitempty,min=1"`
	JikanMalID      *int    `json:"jikan_mal_id" validate:"omitempty,min=1"`
	Episodes        *int    `json:"episodes" validate:"omitempty,min=0"`
	ReleaseYear     *int    `json:"release_year" validate:"omitempty,min=0,max=9999"`
	FavoriteEpisode *string `json:"favorite_episode" validate:"omitempty,max=500"`
}

type AcceptResultPayload struct {
	Result *models.SearchResult `json:"result" validate:"required"`
	Status string               `json:"status" mod:"trim" validate:"omitempty,statusfilter,ne=All"`
}

// MutationResponse carries the affected item and, when the change couldn't be
// saved, a warning the UI should show.
type MutationResponse struct {
	Item    *models.LibraryItem `json:"item,omitempty"`
	Warning string              `json:"warning,omitempty"`
}

type ListItemsResponse struct {
	Items []*models.LibraryItem `json:"items"`
	Total int                   `json:"total"`
}
