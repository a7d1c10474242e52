package search

import (
	"github.com/bookverse/bookverse/pkg/config"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers/jikan"
	"github.com/bookverse/bookverse/pkg/providers/openlibrary"
	"github.com/bookverse/bookverse/pkg/providers/tmdb"
)

// NewProviders builds the catalog clients named in cfg. The Open Library
// client doubles as the book describer.
func NewProviders(cfg *config.Config) (Searchers, Describer) {
	books := openlibrary.NewClient(cfg.OpenLibraryBaseURL)
	movies := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, tmdb.WithPreferredCountries(cfg.PreferredOriginCountries))
	anime := jikan.NewClient(cfg.JikanBaseURL, cfg.JikanRequestsPerSecond)

	return Searchers{
		models.MediaTypeBook:   books,
		models.MediaTypeMovie:  movies.Movies(),
		models.MediaTypeAnime:  anime,
		models.MediaTypeKDrama: movies.TV(),
	}, books
}
