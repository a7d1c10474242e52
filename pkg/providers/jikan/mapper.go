package jikan

import (
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
)

// MapAnime reports false for entries without a title.
func MapAnime(a Anime) (*models.SearchResult, bool) {
	title := providers.FirstNonEmpty(deref(a.TitleEnglish), a.Title)
	if title == "" {
		return nil, false
	}

	details := &models.AnimeDetails{
		Episodes: providers.OptionalPositiveInt(a.Episodes),
	}
	if a.MalID > 0 {
		id := a.MalID
		details.JikanMalID = &id
	}

	var cover *string
	if c := providers.FirstNonEmpty(deref(a.Images.JPG.LargeImageURL), deref(a.Images.JPG.ImageURL)); c != "" {
		cover = &c
	}

	return &models.SearchResult{
		Title:    title,
		CoverURL: cover,
		Overview: providers.OptionalText(deref(a.Synopsis)),
		Details:  details,
	}, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
