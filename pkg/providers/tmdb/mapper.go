package tmdb

import (
	"sort"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
)

const posterSize = "w500"

// Mapper turns raw search results into SearchResults. It only needs the image
// host to build poster URLs.
type Mapper struct {
	ImageBaseURL string
}

func (m Mapper) posterURL(path *string) *string {
	if path == nil || strings.TrimSpace(*path) == "" {
		return nil
	}
	p := *path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := strings.TrimRight(m.ImageBaseURL, "/") + "/" + posterSize + p
	return &u
}

// MapMovie reports false for movies without any title.
func (m Mapper) MapMovie(r MovieResult) (*models.SearchResult, bool) {
	title := providers.FirstNonEmpty(r.Title, r.OriginalTitle)
	if title == "" {
		return nil, false
	}
	return &models.SearchResult{
		Title:    title,
		CoverURL: m.posterURL(r.PosterPath),
		Overview: providers.OptionalText(r.Overview),
		Details: &models.MovieDetails{
			TMDBID:      positiveID(r.ID),
			ReleaseYear: providers.YearFromDate(r.ReleaseDate),
		},
	}, true
}

// MapTV maps a TV series to a K-Drama record. Episode counts aren't part of
// search results and stay empty.
func (m Mapper) MapTV(r TVResult) (*models.SearchResult, bool) {
	title := providers.FirstNonEmpty(r.Name, r.OriginalName)
	if title == "" {
		return nil, false
	}
	return &models.SearchResult{
		Title:    title,
		CoverURL: m.posterURL(r.PosterPath),
		Overview: providers.OptionalText(r.Overview),
		Details: &models.KDramaDetails{
			TMDBID:      positiveID(r.ID),
			ReleaseYear: providers.YearFromDate(r.FirstAirDate),
		},
	}, true
}

// RankByOrigin stable-sorts results so series from one of the preferred
// countries come first. With no preferred countries the order is unchanged.
func RankByOrigin(results []TVResult, preferred []string) []TVResult {
	if len(preferred) == 0 {
		return results
	}
	want := make(map[string]bool, len(preferred))
	for _, c := range preferred {
		want[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	matches := func(r TVResult) bool {
		for _, c := range r.OriginCountry {
			if want[strings.ToUpper(c)] {
				return true
			}
		}
		return false
	}

	ranked := append([]TVResult{}, results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return matches(ranked[i]) && !matches(ranked[j])
	})
	return ranked
}

func positiveID(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}

func dedupeByID[T any](items []T, id func(T) int) []T {
	return providers.DedupeBy(items, func(item T) (int, bool) {
		v := id(item)
		return v, v > 0
	})
}
