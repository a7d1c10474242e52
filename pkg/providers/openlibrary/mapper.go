package openlibrary

import (
	"fmt"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
)

const coverURLFormat = "https://covers.openlibrary.org/b/id/%d-L.jpg"

// WorkID strips the "/works/" prefix from a work key.
func WorkID(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), "/works/")
}

// MapDoc normalizes one search doc. It reports false for docs without a title.
func MapDoc(d Doc) (*models.SearchResult, bool) {
	title := providers.FirstNonEmpty(d.Title)
	if title == "" {
		return nil, false
	}

	details := &models.BookDetails{
		Authors:     []string{},
		Subtitle:    providers.OptionalString(d.Subtitle),
		PublishYear: providers.OptionalPositiveInt(d.FirstPublishYear),
		Pages:       providers.OptionalPositiveInt(d.NumberOfPagesMedian),
	}
	for _, a := range d.AuthorName {
		if a = strings.TrimSpace(a); a != "" {
			details.Authors = append(details.Authors, a)
		}
	}
	if id := WorkID(d.Key); id != "" {
		details.OpenLibraryID = &id
	}
	details.ISBN = cleanISBNs(d.ISBN)

	var cover *string
	if d.CoverI != nil && *d.CoverI > 0 {
		u := fmt.Sprintf(coverURLFormat, *d.CoverI)
		cover = &u
	}

	return &models.SearchResult{
		Title:    title,
		CoverURL: cover,
		Details:  details,
	}, true
}

func mapDocs(docs []Doc) []*models.SearchResult {
	results := make([]*models.SearchResult, 0, len(docs))
	for _, d := range docs {
		if r, ok := MapDoc(d); ok {
			results = append(results, r)
		}
	}
	return providers.DedupeBy(results, func(r *models.SearchResult) (string, bool) {
		id := r.Details.(*models.BookDetails).OpenLibraryID
		if id == nil {
			return "", false
		}
		return *id, true
	})
}
