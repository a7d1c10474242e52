package binder

import (
	neturl "net/url"
	"strings"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/query"
	"github.com/go-playground/validator/v10"
)

// urlValidator accepts the empty string, an absolute http(s) URL, or a
// root-relative path such as the bundled placeholder covers.
func urlValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		return true
	}
	u, err := neturl.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func mediaTypeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.MediaType(value).IsValid()
}

// statusFilterValidator accepts any status from any vocabulary, "All", or the
// empty string.
func statusFilterValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == query.FilterAll {
		return true
	}
	for _, s := range models.AllStatuses() {
		if s == value {
			return true
		}
	}
	return false
}

func sortValidator(fl validator.FieldLevel) bool {
	_, err := query.ParseSort(fl.Field().String())
	return err == nil
}
