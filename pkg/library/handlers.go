package library

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bookverse/bookverse/pkg/errcodes"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/query"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const persistenceWarning = "Your change was applied but couldn't be saved. It will be lost when the app restarts."

type handler struct {
	store *Store
}

func (h *handler) list(c echo.Context) error {
	params := ListItemsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	sort, err := query.ParseSort(params.Sort)
	if err != nil {
		return errcodes.ValidationError(err.Error())
	}

	opts := query.Options{
		Status: params.Status,
		Sort:   sort,
		Text:   params.Search,
	}
	if params.MediaType != "" {
		mt := models.MediaType(params.MediaType)
		opts.MediaType = &mt
	}

	items := query.Apply(h.store.List(), opts)

	return errors.WithStack(c.JSON(http.StatusOK, ListItemsResponse{
		Items: items,
		Total: len(items),
	}))
}

func (h *handler) stats(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, query.Summarize(h.store.List())))
}

func (h *handler) retrieve(c echo.Context) error {
	item, err := h.store.Retrieve(c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, item))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := ItemPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	details, err := params.details()
	if err != nil {
		return mapError(err)
	}

	item, err := h.store.Create(ctx, CreateItemOptions{
		Title:       params.Title,
		Status:      params.Status,
		Rating:      params.Rating,
		Notes:       params.Notes,
		Description: params.Description,
		CoverURL:    params.CoverURL,
		Details:     details,
	})
	return respond(c, http.StatusCreated, item, err)
}

func (h *handler) accept(c echo.Context) error {
	ctx := c.Request().Context()

	params := AcceptResultPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.store.CreateFromResult(ctx, params.Result, params.Status)
	return respond(c, http.StatusCreated, item, err)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := ItemPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	details, err := params.details()
	if err != nil {
		return mapError(err)
	}

	item, err := h.store.Update(ctx, c.Param("id"), UpdateItemOptions{
		Title:       params.Title,
		Status:      params.Status,
		Rating:      params.Rating,
		Notes:       params.Notes,
		Description: params.Description,
		CoverURL:    params.CoverURL,
		Details:     details,
	})
	return respond(c, http.StatusOK, item, err)
}

func (h *handler) deleteItem(c echo.Context) error {
	err := h.store.Delete(c.Request().Context(), c.Param("id"))

	var perr *PersistenceError
	if errors.As(err, &perr) {
		return errors.WithStack(c.JSON(http.StatusOK, MutationResponse{Warning: persistenceWarning}))
	}
	if err != nil {
		return mapError(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// respond writes a successful mutation, downgrading a persistence failure to
// a warning since the in-memory change has already been applied.
func respond(c echo.Context, status int, item *models.LibraryItem, err error) error {
	resp := MutationResponse{Item: item}

	var perr *PersistenceError
	if errors.As(err, &perr) && item != nil {
		resp.Warning = persistenceWarning
	} else if err != nil {
		return mapError(err)
	}

	return errors.WithStack(c.JSON(status, resp))
}

func mapError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return errcodes.NotFound("Library item")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return errcodes.ValidationError(fmt.Sprintf("%q %s", verr.Field, verr.Message))
	}
	return errors.WithStack(err)
}

// details builds the variant for the payload's media type, rejecting fields
// that belong to another one.
func (p ItemPayload) details() (models.Details, error) {
	mt := models.MediaType(p.MediaType)

	var (
		details models.Details
		allowed map[string]bool
	)
	switch mt {
	case models.MediaTypeBook:
		authors := []string{}
		for _, a := range p.Authors {
			if a = strings.TrimSpace(a); a != "" {
				authors = append(authors, a)
			}
		}
		details = &models.BookDetails{
			Authors:       authors,
			Subtitle:      p.Subtitle,
			OpenLibraryID: p.OpenLibraryID,
			ISBN:          p.ISBN,
			PublishYear:   p.PublishYear,
			Pages:         p.Pages,
		}
		allowed = fieldSet("authors", "subtitle", "open_library_id", "isbn", "publish_year", "pages")
	case models.MediaTypeMovie:
		details = &models.MovieDetails{TMDBID: p.TMDBID, ReleaseYear: p.ReleaseYear}
		allowed = fieldSet("tmdb_id", "release_year")
	case models.MediaTypeAnime:
		details = &models.AnimeDetails{JikanMalID: p.JikanMalID, Episodes: p.Episodes, FavoriteEpisode: p.FavoriteEpisode}
		allowed = fieldSet("jikan_mal_id", "episodes", "favorite_episode")
	case models.MediaTypeKDrama:
		details = &models.KDramaDetails{
			TMDBID:          p.TMDBID,
			Episodes:        p.Episodes,
			ReleaseYear:     p.ReleaseYear,
			FavoriteEpisode: p.FavoriteEpisode,
		}
		allowed = fieldSet("tmdb_id", "episodes", "release_year", "favorite_episode")
	default:
		return nil, invalid("media_type", "%q is not a known media type", mt)
	}

	present := []struct {
		name string
		set  bool
	}{
		{"authors", p.Authors != nil},
		{"subtitle", p.Subtitle != nil},
		{"open_library_id", p.OpenLibraryID != nil},
		{"isbn", p.ISBN != nil},
		{"publish_year", p.PublishYear != nil},
		{"pages", p.Pages != nil},
		{"tmdb_id", p.TMDBID != nil},
		{"jikan_mal_id", p.JikanMalID != nil},
		{"episodes", p.Episodes != nil},
		{"release_year", p.ReleaseYear != nil},
		{"favorite_episode", p.FavoriteEpisode != nil},
	}
	for _, f := range present {
		if f.set && !allowed[f.name] {
			return nil, invalid(f.name, "doesn't apply to %s", mt)
		}
	}

	return details, nil
}

func fieldSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
