package search

import (
	"net/http"
	"regexp"

	"github.com/bookverse/bookverse/pkg/errcodes"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
	"github.com/bookverse/bookverse/pkg/settings"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var workIDRE = regexp.MustCompile(`^OL[0-9]+W$`)

type handler struct {
	searchService *Service
	gate          *settings.Gate
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	mt := models.MediaType(c.Param("media_type"))
	if !mt.IsValid() {
		return errcodes.NotFound("Media type")
	}

	params := SearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	session := c.Request().Header.Get(SessionHeader)
	results, err := h.searchService.SearchLatest(ctx, session, h.gate.Current(), mt, params.Query, params.Limit)
	if err != nil {
		return mapError(mt, err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, SearchResponse{
		MediaType: mt,
		Query:     params.Query,
		Results:   results,
	}))
}

func (h *handler) describe(c echo.Context) error {
	ctx := c.Request().Context()

	workID := c.Param("work_id")
	if !workIDRE.MatchString(workID) {
		return errcodes.ValidationError(`"work_id" must look like OL123W.`)
	}

	desc, err := h.searchService.Describe(ctx, workID)
	if err != nil {
		return mapError(models.MediaTypeBook, err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, DescriptionResponse{
		WorkID:      workID,
		Description: desc,
	}))
}

func mapError(mt models.MediaType, err error) error {
	switch {
	case errors.Is(err, ErrCapabilityDisabled):
		return errcodes.CapabilityDisabled(pluralize(mt))
	case errors.Is(err, ErrSuperseded):
		return errcodes.Superseded()
	case errors.Is(err, ErrUnsupportedMediaType):
		return errcodes.NotFound("Media type")
	}

	var perr *providers.Error
	if errors.As(err, &perr) {
		if perr.IsCredentialError() {
			return errcodes.ProviderCredentials(perr.Provider)
		}
		return errcodes.ProviderUnavailable(perr.Provider, perr.StatusCode)
	}
	return errors.WithStack(err)
}

func pluralize(mt models.MediaType) string {
	switch mt {
	case models.MediaTypeBook:
		return "books"
	case models.MediaTypeMovie:
		return "movies"
	case models.MediaTypeKDrama:
		return "K-Dramas"
	}
	return string(mt)
}
