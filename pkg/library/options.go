package library

import (
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
)

type CreateItemOptions struct {
	Title       string
	Status      string
	Rating      *int
	Notes       *string
	Description *string
	CoverURL    *string
	Details     models.Details
}

// UpdateItemOptions replaces every mutable field of an item. Fields left nil
// are cleared, not kept.
type UpdateItemOptions struct {
	Title       string
	Status      string
	Rating      *int
	Notes       *string
	Description *string
	CoverURL    *string
	Details     models.Details
}

type fields struct {
	title       string
	status      string
	rating      *int
	notes       *string
	description *string
	coverURL    *string
	details     models.Details
}

// normalize validates the input and returns it in stored form: trimmed title,
// default status when empty, rating 0 dropped and blank text fields dropped.
func (f fields) normalize() (fields, error) {
	f.title = strings.TrimSpace(f.title)
	if f.title == "" {
		return f, invalid("title", "is required")
	}

	if f.details == nil {
		return f, invalid("media_type", "is required")
	}
	mt := f.details.MediaType()
	if !mt.IsValid() {
		return f, invalid("media_type", "%q is not a known media type", mt)
	}
	f.details = models.CloneDetails(f.details)
	if b, ok := f.details.(*models.BookDetails); ok && b.Authors == nil {
		b.Authors = []string{}
	}

	if f.status == "" {
		f.status = models.DefaultStatus(mt)
	}
	if !models.IsValidStatus(mt, f.status) {
		return f, invalid("status", "%q is not a valid status for %s", f.status, mt)
	}

	if f.rating != nil {
		r := *f.rating
		switch {
		case r < 0 || r > 5:
			return f, invalid("rating", "must be between 0 and 5")
		case r == 0:
			f.rating = nil
		default:
			f.rating = &r
		}
	}

	f.notes = blankToNil(f.notes)
	f.description = blankToNil(f.description)
	f.coverURL = blankToNil(f.coverURL)

	return f, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
