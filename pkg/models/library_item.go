package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// LibraryItem is one book, movie, anime or drama in the collection. The media
// type is carried by Details and can't change once the item exists.
type LibraryItem struct {
	ID          string
	Title       string
	Status      string
	Rating      *int
	Notes       *string
	Description *string
	CoverURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Details     Details
}

// MediaType returns the media type of the item's variant, or "" when the item
// has no details attached.
func (i *LibraryItem) MediaType() MediaType {
	if i.Details == nil {
		return ""
	}
	return i.Details.MediaType()
}

// DisplayCoverURL returns the cover to render, falling back to the media
// type's placeholder.
func (i *LibraryItem) DisplayCoverURL() string {
	if i.CoverURL != nil && *i.CoverURL != "" {
		return *i.CoverURL
	}
	return DefaultCoverURL(i.MediaType())
}

// Clone returns a deep copy of the item.
func (i *LibraryItem) Clone() *LibraryItem {
	return &LibraryItem{
		ID:          i.ID,
		Title:       i.Title,
		Status:      i.Status,
		Rating:      cloneInt(i.Rating),
		Notes:       cloneString(i.Notes),
		Description: cloneString(i.Description),
		CoverURL:    cloneString(i.CoverURL),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		Details:     CloneDetails(i.Details),
	}
}

// Authors returns the authors of a book, or nil for any other media type.
func (i *LibraryItem) Authors() []string {
	if b, ok := i.Details.(*BookDetails); ok {
		return b.Authors
	}
	return nil
}

type itemWire struct {
	ID              string    `json:"id"`
	MediaType       MediaType `json:"media_type"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	Rating          *int      `json:"rating"`
	Notes           *string   `json:"notes"`
	Description     *string   `json:"description"`
	CoverURL        *string   `json:"cover_url"`
	DisplayCoverURL string    `json:"display_cover_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	detailsWire
}

// detailsWire is the flat JSON shape of every variant's fields. It only exists
// at the encoding boundary; everything else works with the Details union.
type detailsWire struct {
	Authors         *[]string `json:"authors,omitempty"`
	Subtitle        *string   `json:"subtitle,omitempty"`
	OpenLibraryID   *string   `json:"open_library_id,omitempty"`
	ISBN            []string  `json:"isbn,omitempty"`
	PublishYear     *int      `json:"publish_year,omitempty"`
	Pages           *int      `json:"pages,omitempty"`
	TMDBID          *int      `json:"tmdb_id,omitempty"`
	JikanMalID      *int      `json:"jikan_mal_id,omitempty"`
	Episodes        *int      `json:"episodes,omitempty"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	FavoriteEpisode *string   `json:"favorite_episode,omitempty"`
}

func (i *LibraryItem) MarshalJSON() ([]byte, error) {
	dw, err := encodeDetails(i.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemWire{
		ID:              i.ID,
		MediaType:       i.MediaType(),
		Title:           i.Title,
		Status:          i.Status,
		Rating:          i.Rating,
		Notes:           i.Notes,
		Description:     i.Description,
		CoverURL:        i.CoverURL,
		DisplayCoverURL: i.DisplayCoverURL(),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
		detailsWire:     dw,
	})
}

func (i *LibraryItem) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.WithStack(err)
	}
	details, err := decodeDetails(w.MediaType, w.detailsWire)
	if err != nil {
		return err
	}
	*i = LibraryItem{
		ID:          w.ID,
		Title:       w.Title,
		Status:      w.Status,
		Rating:      w.Rating,
		Notes:       w.Notes,
		Description: w.Description,
		CoverURL:    w.CoverURL,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Details:     details,
	}
	return nil
}

func encodeDetails(d Details) (detailsWire, error) {
	switch v := d.(type) {
	case *BookDetails:
		authors := v.Authors
		if authors == nil {
			authors = []string{}
		}
		return detailsWire{
			Authors:       &authors,
			Subtitle:      v.Subtitle,
			OpenLibraryID: v.OpenLibraryID,
			ISBN:          v.ISBN,
			PublishYear:   v.PublishYear,
			Pages:         v.Pages,
		}, nil
	case *MovieDetails:
		return detailsWire{TMDBID: v.TMDBID, ReleaseYear: v.ReleaseYear}, nil
	case *AnimeDetails:
		return detailsWire{JikanMalID: v.JikanMalID, Episodes: v.Episodes, FavoriteEpisode: v.FavoriteEpisode}, nil
	case *KDramaDetails:
		return detailsWire{
			TMDBID:          v.TMDBID,
			Episodes:        v.Episodes,
			ReleaseYear:     v.ReleaseYear,
			FavoriteEpisode: v.FavoriteEpisode,
		}, nil
	case nil:
		return detailsWire{}, errors.New("library item has no media details")
	default:
		return detailsWire{}, errors.Errorf("unknown media details type %T", d)
	}
}

func decodeDetails(mt MediaType, w detailsWire) (Details, error) {
	switch mt {
	case MediaTypeBook:
		authors := []string{}
		if w.Authors != nil && *w.Authors != nil {
			authors = *w.Authors
		}
		var isbn []string
		if len(w.ISBN) > 0 {
			isbn = w.ISBN
		}
		return &BookDetails{
			Authors:       authors,
			Subtitle:      w.Subtitle,
			OpenLibraryID: w.OpenLibraryID,
			ISBN:          isbn,
			PublishYear:   w.PublishYear,
			Pages:         w.Pages,
		}, nil
	case MediaTypeMovie:
		return &MovieDetails{TMDBID: w.TMDBID, ReleaseYear: w.ReleaseYear}, nil
	case MediaTypeAnime:
		return &AnimeDetails{JikanMalID: w.JikanMalID, Episodes: w.Episodes, FavoriteEpisode: w.FavoriteEpisode}, nil
	case MediaTypeKDrama:
		return &KDramaDetails{
			TMDBID:          w.TMDBID,
			Episodes:        w.Episodes,
			ReleaseYear:     w.ReleaseYear,
			FavoriteEpisode: w.FavoriteEpisode,
		}, nil
	}
	return nil, errors.Errorf("unknown media type %q", mt)
}
