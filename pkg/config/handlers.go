package config

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PublicConfig is the subset of the configuration the UI is allowed to see.
type PublicConfig struct {
	StorageDriver            string   `json:"storage_driver"`
	SearchLimit              int      `json:"search_limit"`
	SearchDebounceMillis     int64    `json:"search_debounce_ms"`
	PreferredOriginCountries []string `json:"preferred_origin_countries"`
	TMDBKeyConfigured        bool     `json:"tmdb_key_configured"`
}

type handler struct {
	config *Config
}

func (h *handler) retrieve(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, h.config.Public()))
}

// Public returns the values safe to expose over HTTP. Credentials are reduced
// to whether they are set.
func (cfg *Config) Public() PublicConfig {
	countries := append([]string{}, cfg.PreferredOriginCountries...)
	return PublicConfig{
		StorageDriver:            cfg.StorageDriver,
		SearchLimit:              cfg.SearchLimit,
		SearchDebounceMillis:     cfg.SearchDebounce.Milliseconds(),
		PreferredOriginCountries: countries,
		TMDBKeyConfigured:        cfg.TMDBAPIKey != "",
	}
}
