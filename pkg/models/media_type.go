package models

//tygo:emit export type MediaType = typeof MediaTypeBook | typeof MediaTypeMovie | typeof MediaTypeAnime | typeof MediaTypeKDrama;
type MediaType string

const (
	MediaTypeBook   MediaType = "Book"
	MediaTypeMovie  MediaType = "Movie"
	MediaTypeAnime  MediaType = "Anime"
	MediaTypeKDrama MediaType = "KDrama"
)

const (
	StatusOwned       = "Owned"
	StatusWishlist    = "Wishlist"
	StatusLoaned      = "Loaned"
	StatusCompleted   = "Completed"
	StatusWatched     = "Watched"
	StatusWatching    = "Watching"
	StatusOnHold      = "On-Hold"
	StatusDropped     = "Dropped"
	StatusPlanToWatch = "Plan to Watch"
)

// Status vocabularies in filter menu display order.
var (
	bookStatuses   = []string{StatusOwned, StatusWishlist, StatusLoaned, StatusCompleted}
	movieStatuses  = []string{StatusOwned, StatusWishlist, StatusWatched}
	animeStatuses  = []string{StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToWatch}
	kdramaStatuses = []string{StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToWatch}
)

// MediaTypes returns the closed set of media types in display order.
func MediaTypes() []MediaType {
	return []MediaType{MediaTypeBook, MediaTypeMovie, MediaTypeAnime, MediaTypeKDrama}
}

// IsValid reports whether mt is one of the known media types.
func (mt MediaType) IsValid() bool {
	switch mt {
	case MediaTypeBook, MediaTypeMovie, MediaTypeAnime, MediaTypeKDrama:
		return true
	}
	return false
}

// Statuses returns a copy of the status vocabulary for the media type, or nil
// for an unknown media type.
func Statuses(mt MediaType) []string {
	var src []string
	switch mt {
	case MediaTypeBook:
		src = bookStatuses
	case MediaTypeMovie:
		src = movieStatuses
	case MediaTypeAnime:
		src = animeStatuses
	case MediaTypeKDrama:
		src = kdramaStatuses
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsValidStatus reports whether status belongs to the vocabulary of mt.
func IsValidStatus(mt MediaType, status string) bool {
	for _, s := range Statuses(mt) {
		if s == status {
			return true
		}
	}
	return false
}

// DefaultStatus is the status given to an item accepted from a search result
// when the caller doesn't pick one.
func DefaultStatus(mt MediaType) string {
	switch mt {
	case MediaTypeBook, MediaTypeMovie:
		return StatusOwned
	case MediaTypeAnime, MediaTypeKDrama:
		return StatusPlanToWatch
	}
	return ""
}

// AllStatuses returns the union of every vocabulary, deduplicated, keeping the
// first-seen display order.
func AllStatuses() []string {
	seen := map[string]bool{}
	all := []string{}
	for _, mt := range MediaTypes() {
		for _, s := range Statuses(mt) {
			if seen[s] {
				continue
			}
			seen[s] = true
			all = append(all, s)
		}
	}
	return all
}

// DefaultCoverURL is the placeholder shown when an item has no cover of its
// own.
func DefaultCoverURL(mt MediaType) string {
	switch mt {
	case MediaTypeBook:
		return "/static/placeholders/book.svg"
	case MediaTypeMovie:
		return "/static/placeholders/movie.svg"
	case MediaTypeAnime:
		return "/static/placeholders/anime.svg"
	case MediaTypeKDrama:
		return "/static/placeholders/kdrama.svg"
	}
	return "/static/placeholders/unknown.svg"
}
