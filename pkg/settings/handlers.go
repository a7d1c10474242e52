package settings

import (
	"net/http"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	gate *Gate
}

func (h *handler) retrieve(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, newSettingsResponse(h.gate.Current())))
}

func (h *handler) updateCapability(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateCapabilityPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	s, err := h.gate.SetCapability(ctx, *params.Enabled)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newSettingsResponse(s)))
}

func (h *handler) updateAPIKey(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateAPIKeyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	s, err := h.gate.SetAPIKey(ctx, params.APIKey)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newSettingsResponse(s)))
}

func newSettingsResponse(s Settings) SettingsResponse {
	enabled := []string{}
	for _, mt := range models.MediaTypes() {
		if s.Allows(mt) {
			enabled = append(enabled, string(mt))
		}
	}
	return SettingsResponse{
		CapabilityEnabled: s.CapabilityEnabled,
		APIKeyMasked:      s.MaskedAPIKey(),
		APIKeySource:      s.APIKeySource,
		EnabledMediaTypes: enabled,
	}
}
