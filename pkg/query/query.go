package query

import (
	"cmp"
	"sort"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterAll disables the status filter.
const FilterAll = "All"

type Options struct {
	// Status keeps items whose status text matches exactly. Empty or
	// FilterAll keeps everything.
	Status    string
	Sort      Sort
	MediaType *models.MediaType
	// Text keeps items whose title, or for books any author, fuzzily
	// contains it, ignoring case and diacritics.
	Text string
}

// Apply returns the filtered and sorted view of items. The input slice and the
// items it points to are never modified.
func Apply(items []*models.LibraryItem, opts Options) []*models.LibraryItem {
	text := strings.TrimSpace(opts.Text)

	out := make([]*models.LibraryItem, 0, len(items))
	for _, item := range items {
		if opts.Status != "" && opts.Status != FilterAll && item.Status != opts.Status {
			continue
		}
		if opts.MediaType != nil && item.MediaType() != *opts.MediaType {
			continue
		}
		if text != "" && !matchesText(item, text) {
			continue
		}
		out = append(out, item)
	}

	s := opts.Sort
	if !s.IsValid() {
		s = DefaultSort
	}
	bookView := opts.MediaType != nil && *opts.MediaType == models.MediaTypeBook

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], s)
		if c == 0 && bookView {
			c = directed(strings.Compare(firstAuthorKey(out[i]), firstAuthorKey(out[j])), s.Direction)
		}
		return c < 0
	})

	return out
}

func matchesText(item *models.LibraryItem, text string) bool {
	if fuzzy.MatchNormalizedFold(text, item.Title) {
		return true
	}
	switch d := item.Details.(type) {
	case *models.BookDetails:
		for _, a := range d.Authors {
			if fuzzy.MatchNormalizedFold(text, a) {
				return true
			}
		}
	case *models.MovieDetails, *models.AnimeDetails, *models.KDramaDetails:
	}
	return false
}

// compare orders a before b (-1), after b (1) or neither (0) in the visible
// order. Items missing the key always sort last.
func compare(a, b *models.LibraryItem, s Sort) int {
	switch s.Key {
	case SortKeyTitle:
		return directed(strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)), s.Direction)
	case SortKeyStatus:
		return directed(strings.Compare(strings.ToLower(a.Status), strings.ToLower(b.Status)), s.Direction)
	case SortKeyRating:
		return compareOptional(a.Rating == nil, b.Rating == nil, func() int {
			return cmp.Compare(*a.Rating, *b.Rating)
		}, s.Direction)
	case SortKeyCreatedAt:
		return compareOptional(a.CreatedAt.IsZero(), b.CreatedAt.IsZero(), func() int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}, s.Direction)
	}
	return 0
}

func compareOptional(aMissing, bMissing bool, cmp func() int, dir Direction) int {
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	return directed(cmp(), dir)
}

func directed(c int, dir Direction) int {
	if dir == Desc {
		return -c
	}
	return c
}

func firstAuthorKey(item *models.LibraryItem) string {
	switch d := item.Details.(type) {
	case *models.BookDetails:
		if len(d.Authors) > 0 {
			return strings.ToLower(d.Authors[0])
		}
	case *models.MovieDetails, *models.AnimeDetails, *models.KDramaDetails:
	}
	return ""
}
